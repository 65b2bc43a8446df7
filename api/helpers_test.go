package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"finance-analysis/config"
	"finance-analysis/database"
	"finance-analysis/models"
	"finance-analysis/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

// setupTestDB 内存 sqlite，替换全局 database.DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	oldDB := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = oldDB
		sqlDB.Close()
	})
	return db
}

// setupMockDB sqlmock + mysql 方言，用于模拟存储失败
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	t.Cleanup(func() {
		database.DB = oldDB
		sqlDB.Close()
	})
	return gormDB, mock
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
}

// fakeWebhook 按方法返回预设响应并统计调用次数
type fakeWebhook struct {
	*httptest.Server

	mu       sync.Mutex
	counts   map[string]int
	status   map[string]int
	body     map[string]string
	lastPath string
}

func newFakeWebhook(t *testing.T) *fakeWebhook {
	t.Helper()
	f := &fakeWebhook{counts: map[string]int{}, status: map[string]int{}, body: map[string]string{}}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.counts[r.Method]++
		f.lastPath = r.URL.RequestURI()
		status, ok := f.status[r.Method]
		body := f.body[r.Method]
		f.mu.Unlock()
		if !ok {
			status = http.StatusMethodNotAllowed
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeWebhook) on(method string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[method] = status
	f.body[method] = body
}

func (f *fakeWebhook) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[method]
}

func (f *fakeWebhook) path() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPath
}

func newStockService(db *gorm.DB, comprehensiveURL, structuredURL string) *service.StockAnalysisService {
	return service.NewStockAnalysisService(
		service.NewGormHistoryStore[models.StockAnalysisRecord](db),
		service.NewWebhookClient(time.Second),
		service.NewStockBinding("comprehensive", comprehensiveURL, 2*time.Second),
		service.NewStockBinding("structured", structuredURL, 2*time.Second),
	)
}

func newNewsService(db *gorm.DB, url string) *service.NewsAnalysisService {
	return service.NewNewsAnalysisService(
		service.NewGormHistoryStore[models.NewsAnalysisRecord](db),
		service.NewWebhookClient(time.Second),
		service.NewNewsBinding(url, 2*time.Second),
	)
}

func performJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// withUser 模拟已登录用户
func withUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Next()
	}
}
