package service

import (
	"fmt"
	"net/url"
	"time"
)

// 上游 webhook 宿主可能绑定不同的字段名，主体在请求体和查询串中以所有别名同时出现
var (
	stockPayloadAliases = []string{"stockCode", "code", "ticker", "symbol", "stock_code", "tickerSymbol", "stock_name", "value"}
	stockQueryAliases   = []string{"stockCode", "code", "ticker", "symbol", "stock_code", "tickerSymbol", "stock_name"}
	newsAliases         = []string{"keyword"}
)

// EndpointBinding 一种分析类型对应的上游地址，按值传递
type EndpointBinding struct {
	Name           string
	URL            string
	PayloadAliases []string
	QueryAliases   []string
	ReadTimeout    time.Duration
}

// NewStockBinding 股票类分析（综合/结构化）的绑定
func NewStockBinding(name, endpoint string, readTimeout time.Duration) EndpointBinding {
	return EndpointBinding{
		Name:           name,
		URL:            endpoint,
		PayloadAliases: stockPayloadAliases,
		QueryAliases:   stockQueryAliases,
		ReadTimeout:    readTimeout,
	}
}

// NewNewsBinding 新闻关键词分析的绑定
func NewNewsBinding(endpoint string, readTimeout time.Duration) EndpointBinding {
	return EndpointBinding{
		Name:           "news",
		URL:            endpoint,
		PayloadAliases: newsAliases,
		QueryAliases:   newsAliases,
		ReadTimeout:    readTimeout,
	}
}

// Configured 是否配置了上游地址
func (b EndpointBinding) Configured() bool {
	return b.URL != ""
}

// Payload 构建 POST 请求体，每个别名都映射到主体
func (b EndpointBinding) Payload(subject string) map[string]string {
	payload := make(map[string]string, len(b.PayloadAliases))
	for _, alias := range b.PayloadAliases {
		payload[alias] = subject
	}
	return payload
}

// QueryURL 构建 GET 地址，保留原有查询参数并追加所有查询别名
func (b EndpointBinding) QueryURL(subject string) (string, error) {
	u, err := url.Parse(b.URL)
	if err != nil {
		return "", fmt.Errorf("invalid %s webhook URL: %w", b.Name, err)
	}
	q := u.Query()
	for _, alias := range b.QueryAliases {
		q.Set(alias, subject)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
