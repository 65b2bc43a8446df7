package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"finance-analysis/models"
	"finance-analysis/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockRouter(svc *service.StockAnalysisService, intraday *service.IntradayService) *gin.Engine {
	r := gin.New()
	h := NewStockAnalysisHandler(svc, intraday)
	r.POST("/api/stocks/analysis", h.Analyze)
	r.GET("/api/stocks/history", h.History)
	r.GET("/api/stocks/analyze", h.AnalyzeRaw)
	r.GET("/api/stocks/intraday", h.Intraday)
	return r
}

func decodeError(t *testing.T, body []byte) ErrorBody {
	t.Helper()
	var eb ErrorBody
	require.NoError(t, json.Unmarshal(body, &eb))
	_, err := time.Parse(time.RFC3339, eb.Timestamp)
	require.NoError(t, err)
	return eb
}

func TestStockAnalysisHandler_Analyze(t *testing.T) {
	db := setupTestDB(t)
	up := newFakeWebhook(t)
	up.on(http.MethodPost, http.StatusOK, `{"score":0.9}`)
	r := stockRouter(newStockService(db, up.URL, up.URL), nil)

	w := performJSON(r, "POST", "/api/stocks/analysis", `{"stockCode":"NVDA"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":0.9}`, mustField(t, w.Body.Bytes(), "analysis"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NVDA", resp["stockCode"])
	assert.Equal(t, "COMPREHENSIVE", resp["analysisType"])
	assert.NotZero(t, resp["id"])
	assert.NotEmpty(t, resp["requestedAt"])

	var count int64
	db.Model(&models.StockAnalysisRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestStockAnalysisHandler_LowercaseCodeAccepted(t *testing.T) {
	db := setupTestDB(t)
	up := newFakeWebhook(t)
	up.on(http.MethodPost, http.StatusOK, `{"ok":true}`)
	r := stockRouter(newStockService(db, up.URL, "http://unused.invalid"), nil)

	w := performJSON(r, "POST", "/api/stocks/analysis", `{"stockCode":"aapl","analysisType":"weird"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stockCode":"AAPL"`)
	assert.Contains(t, w.Body.String(), `"analysisType":"COMPREHENSIVE"`)
	assert.Equal(t, 1, up.count(http.MethodPost))
}

func TestStockAnalysisHandler_Validation(t *testing.T) {
	db := setupTestDB(t)
	up := newFakeWebhook(t)
	r := stockRouter(newStockService(db, up.URL, up.URL), nil)

	tests := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"缺少代码", `{}`, "stockCode", "Stock code is required"},
		{"空白代码", `{"stockCode":"   "}`, "stockCode", "Stock code is required"},
		{"长度不对", `{"stockCode":"NVDAX"}`, "stockCode", "Stock code must be four uppercase characters (e.g. AAPL)"},
		{"含数字", `{"stockCode":"AB1C"}`, "stockCode", "Stock code must be four uppercase characters (e.g. AAPL)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(r, "POST", "/api/stocks/analysis", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			eb := decodeError(t, w.Body.Bytes())
			assert.Equal(t, "Validation failed", eb.Message)
			assert.Equal(t, tt.msg, eb.Errors[tt.field])
		})
	}

	w := performJSON(r, "POST", "/api/stocks/analysis", `{"stockCode":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Malformed request body", decodeError(t, w.Body.Bytes()).Message)

	assert.Equal(t, 0, up.count(http.MethodPost))
}

func TestStockAnalysisHandler_UpstreamErrors(t *testing.T) {
	db := setupTestDB(t)

	// 未配置
	r := stockRouter(newStockService(db, "", ""), nil)
	w := performJSON(r, "POST", "/api/stocks/analysis", `{"stockCode":"NVDA"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "comprehensive webhook URL is not configured", decodeError(t, w.Body.Bytes()).Message)

	// 上游非 2xx
	up := newFakeWebhook(t)
	up.on(http.MethodPost, http.StatusInternalServerError, "boom")
	r = stockRouter(newStockService(db, up.URL, up.URL), nil)
	w = performJSON(r, "POST", "/api/stocks/analysis", `{"stockCode":"NVDA"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decodeError(t, w.Body.Bytes()).Message, "status 500")
	assert.Equal(t, 0, up.count(http.MethodGet))

	var count int64
	db.Model(&models.StockAnalysisRecord{}).Count(&count)
	assert.Zero(t, count)
}

func TestStockAnalysisHandler_EmptyBodyRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	up := newFakeWebhook(t)
	up.on(http.MethodPost, http.StatusOK, "")
	r := stockRouter(newStockService(db, up.URL, up.URL), nil)

	w := performJSON(r, "POST", "/api/stocks/analysis", `{"stockCode":"NVDA"}`)
	require.Equal(t, http.StatusOK, w.Code)
	expected := `{"error":"upstream did not return an analysis result; please retry"}`
	assert.JSONEq(t, expected, mustField(t, w.Body.Bytes(), "analysis"))

	w = performJSON(r, "GET", "/api/stocks/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.JSONEq(t, expected, mustField(t, list[0], "analysis"))
}

func TestStockAnalysisHandler_History(t *testing.T) {
	db := setupTestDB(t)
	store := service.NewGormHistoryStore[models.StockAnalysisRecord](db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		rec := models.StockAnalysisRecord{Subject: "NVDA", Kind: "COMPREHENSIVE", RawBody: `{"i":1}`, RequestedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, store.Insert(t.Context(), &rec))
	}
	r := stockRouter(newStockService(db, "", ""), nil)

	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"?limit=2", 2},
		{"?limit=0", 10},
		{"?limit=50", 10},
	}
	for _, tt := range tests {
		w := performJSON(r, "GET", "/api/stocks/history"+tt.query, "")
		require.Equal(t, http.StatusOK, w.Code, tt.query)
		var list []service.StockAnalysisResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, tt.want, tt.query)
		assert.Equal(t, uint(12), list[0].ID)
	}

	w := performJSON(r, "GET", "/api/stocks/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockAnalysisHandler_HistoryStorageFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT .* FROM `stock_analysis_records`").WillReturnError(errors.New("connection refused"))
	r := stockRouter(newStockService(db, "", ""), nil)

	w := performJSON(r, "GET", "/api/stocks/history", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeError(t, w.Body.Bytes()).Message, "failed to load analysis history")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockAnalysisHandler_AnalyzeRaw(t *testing.T) {
	db := setupTestDB(t)
	up := newFakeWebhook(t)
	up.on(http.MethodGet, http.StatusOK, `{"raw": [1, 2]}`)
	r := stockRouter(newStockService(db, "http://unused.invalid", up.URL), nil)

	w := performJSON(r, "GET", "/api/stocks/analyze?code=nvda", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"raw": [1, 2]}`, w.Body.String())
	assert.Contains(t, up.path(), "ticker=NVDA")
	assert.Equal(t, 0, up.count(http.MethodPost))

	var count int64
	db.Model(&models.StockAnalysisRecord{}).Count(&count)
	assert.Zero(t, count)

	w = performJSON(r, "GET", "/api/stocks/analyze", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, "GET", "/api/stocks/analyze?code=%20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "stock code is required", decodeError(t, w.Body.Bytes()).Message)
}

func TestStockAnalysisHandler_Intraday(t *testing.T) {
	db := setupTestDB(t)
	av := newFakeWebhook(t)
	av.on(http.MethodGet, http.StatusOK, `{
	  "Meta Data": {"2. Symbol": "IBM", "3. Last Refreshed": "2024-01-05 19:55:00", "6. Time Zone": "US/Eastern"},
	  "Time Series (5min)": {"2024-01-05 19:55:00": {"1. open": "1", "2. high": "2", "3. low": "0.5", "4. close": "1.5", "5. volume": "10"}}
	}`)
	intraday := service.NewIntradayService(service.IntradayConfig{BaseURL: av.URL, APIKey: "demo"}, time.Second)
	r := stockRouter(newStockService(db, "", ""), intraday)

	w := performJSON(r, "GET", "/api/stocks/intraday?symbol=ibm", "")
	require.Equal(t, http.StatusOK, w.Code)
	var series service.IntradaySeries
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &series))
	assert.Equal(t, "IBM", series.Symbol)
	assert.Equal(t, "5min", series.Interval)
	require.Len(t, series.Candles, 1)
	assert.Equal(t, 1.5, series.Candles[0].Close)

	w = performJSON(r, "GET", "/api/stocks/intraday?symbol=IBM&interval=2min", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	av.on(http.MethodGet, http.StatusOK, `{"Note":"API call frequency exceeded"}`)
	w = performJSON(r, "GET", "/api/stocks/intraday?symbol=IBM", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decodeError(t, w.Body.Bytes()).Message, "frequency")
}

// mustField 取出 JSON 对象中某个字段的原始内容
func mustField(t *testing.T, body []byte, field string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	raw, ok := m[field]
	require.True(t, ok, "missing field %s", field)
	return string(raw)
}
