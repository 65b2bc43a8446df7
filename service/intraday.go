package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"finance-analysis/logger"
)

const alphaVantageTimestamp = "2006-01-02 15:04:05"

var supportedIntervals = map[string]bool{
	"1min":  true,
	"5min":  true,
	"15min": true,
	"30min": true,
	"60min": true,
}

// IntradayConfig Alpha Vantage 接口配置
type IntradayConfig struct {
	BaseURL     string
	APIKey      string
	OutputSize  string
	ReadTimeout time.Duration
}

// IntradayCandle 单根 K 线
type IntradayCandle struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`

	at time.Time
}

// IntradaySeries 分时行情
type IntradaySeries struct {
	Symbol        string           `json:"symbol"`
	Interval      string           `json:"interval"`
	LastRefreshed string           `json:"lastRefreshed,omitempty"`
	Timezone      string           `json:"timezone,omitempty"`
	Candles       []IntradayCandle `json:"candles"`
}

// IntradayService 分时行情查询，只做字段映射，不持久化
type IntradayService struct {
	cfg        IntradayConfig
	httpClient *http.Client
}

// NewIntradayService 创建行情服务
func NewIntradayService(cfg IntradayConfig, connectTimeout time.Duration) *IntradayService {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout}).DialContext
	return &IntradayService{
		cfg:        cfg,
		httpClient: &http.Client{Transport: transport, Timeout: cfg.ReadTimeout},
	}
}

// FetchSeries 查询 symbol 在 interval 粒度下的分时数据，K 线按时间升序
func (s *IntradayService) FetchSeries(ctx context.Context, symbol, interval string) (*IntradaySeries, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, newError(KindBadRequest, "stock symbol is required", nil)
	}
	interval = strings.ToLower(strings.TrimSpace(interval))
	if !supportedIntervals[interval] {
		return nil, newError(KindBadRequest, "unsupported interval: "+interval, nil)
	}

	target, err := s.buildURL(symbol, interval)
	if err != nil {
		return nil, err
	}
	logger.Log.WithField("symbol", symbol).Infof("查询分时行情, 粒度 %s", interval)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Log.WithError(err).Warn("Alpha Vantage 请求失败")
		return nil, newError(KindUpstreamUnreachable, "failed to call Alpha Vantage API", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindUpstreamUnreachable, "failed to read Alpha Vantage response", err)
	}
	if !isSuccess(resp.StatusCode) {
		return nil, statusError(resp.StatusCode, fmt.Sprintf("Alpha Vantage responded with status %d", resp.StatusCode))
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, newError(KindUpstreamEmpty, "Alpha Vantage returned empty response", nil)
	}
	return mapIntradayBody(body, symbol, interval, resp.StatusCode)
}

func (s *IntradayService) buildURL(symbol, interval string) (string, error) {
	if s.cfg.BaseURL == "" {
		return "", newError(KindNotConfigured, "Alpha Vantage base URL is not configured", nil)
	}
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return "", newError(KindNotConfigured, "Alpha Vantage API key is not configured", nil)
	}
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", newError(KindNotConfigured, "invalid Alpha Vantage base URL", err)
	}
	q := u.Query()
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("apikey", s.cfg.APIKey)
	if s.cfg.OutputSize != "" {
		q.Set("outputsize", s.cfg.OutputSize)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// mapIntradayBody 将 Alpha Vantage 的响应映射为 IntradaySeries
func mapIntradayBody(body []byte, symbol, interval string, status int) (*IntradaySeries, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, statusError(status, "unable to parse Alpha Vantage response")
	}
	// 限流提示与错误信息都以 200 返回
	for _, key := range []string{"Note", "Error Message"} {
		if msg := rawString(root[key]); msg != "" {
			return nil, statusError(status, msg)
		}
	}

	var meta map[string]string
	_ = json.Unmarshal(root["Meta Data"], &meta)

	var series map[string]map[string]string
	if raw, ok := root["Time Series ("+interval+")"]; ok {
		if err := json.Unmarshal(raw, &series); err != nil {
			return nil, statusError(status, "unable to parse Alpha Vantage series data")
		}
	}
	if len(series) == 0 {
		return nil, newError(KindUpstreamEmpty, "Alpha Vantage did not return intraday series data", nil)
	}

	out := &IntradaySeries{
		Symbol:        symbol,
		Interval:      interval,
		LastRefreshed: meta["3. Last Refreshed"],
		Timezone:      meta["6. Time Zone"],
		Candles:       make([]IntradayCandle, 0, len(series)),
	}
	for ts, values := range series {
		at, iso := isoTimestamp(ts, out.Timezone)
		out.Candles = append(out.Candles, IntradayCandle{
			Timestamp: iso,
			Open:      parseDecimal(values["1. open"]),
			High:      parseDecimal(values["2. high"]),
			Low:       parseDecimal(values["3. low"]),
			Close:     parseDecimal(values["4. close"]),
			Volume:    parseVolume(values["5. volume"]),
			at:        at,
		})
	}
	sort.Slice(out.Candles, func(i, j int) bool {
		a, b := out.Candles[i], out.Candles[j]
		if !a.at.IsZero() && !b.at.IsZero() {
			return a.at.Before(b.at)
		}
		return a.Timestamp < b.Timestamp
	})
	return out, nil
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}

// isoTimestamp 将 "2006-01-02 15:04:05" 按时区转为 RFC3339；无法解析时原样返回
func isoTimestamp(ts, timezone string) (time.Time, string) {
	if timezone == "" {
		t, err := time.Parse(alphaVantageTimestamp, ts)
		if err != nil {
			return time.Time{}, ts
		}
		return t, t.Format("2006-01-02T15:04:05")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Log.Debugf("无法识别时区 %q: %v", timezone, err)
		t, _ := time.Parse(alphaVantageTimestamp, ts)
		return t, ts
	}
	t, err := time.ParseInLocation(alphaVantageTimestamp, ts, loc)
	if err != nil {
		return time.Time{}, ts
	}
	return t, t.Format(time.RFC3339)
}

func parseDecimal(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseVolume(text string) int64 {
	return int64(parseDecimal(text))
}
