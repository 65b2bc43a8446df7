package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"finance-analysis/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试独立的内存 sqlite 库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StockAnalysisRecord{}, &models.NewsAnalysisRecord{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// upstreamCall 假上游记录的一次请求
type upstreamCall struct {
	Method string
	Query  map[string][]string
	Header http.Header
	Body   map[string]string
}

// fakeUpstream 按请求方法返回预设响应，并记录收到的请求
type fakeUpstream struct {
	*httptest.Server

	mu      sync.Mutex
	calls   []upstreamCall
	handler map[string]func(w http.ResponseWriter)
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{handler: map[string]func(w http.ResponseWriter){}}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := upstreamCall{Method: r.Method, Query: r.URL.Query(), Header: r.Header.Clone()}
		if r.Body != nil {
			data, _ := io.ReadAll(r.Body)
			if len(data) > 0 {
				_ = json.Unmarshal(data, &call.Body)
			}
		}
		f.mu.Lock()
		f.calls = append(f.calls, call)
		h := f.handler[r.Method]
		f.mu.Unlock()

		if h == nil {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeUpstream) on(method string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler[method] = func(w http.ResponseWriter) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeUpstream) Calls() []upstreamCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]upstreamCall(nil), f.calls...)
}

func (f *fakeUpstream) count(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}
