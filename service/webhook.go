package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"finance-analysis/logger"

	"github.com/sirupsen/logrus"
)

// DefaultConnectTimeout 建连超时
const DefaultConnectTimeout = 5 * time.Second

// WebhookClient 调用上游 webhook：先 POST，特定失败时回退一次 GET
// 内部 http.Client 连接池可并发复用
type WebhookClient struct {
	httpClient *http.Client
}

// NewWebhookClient 创建客户端，connectTimeout 只约束建连，读超时由 EndpointBinding 决定
func NewWebhookClient(connectTimeout time.Duration) *WebhookClient {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	return &WebhookClient{httpClient: &http.Client{Transport: transport}}
}

// Invoke POST payload 到 binding.URL；404/405 或响应体包含 "not registered for post" 时
// 以查询参数形式回退一次 GET。成功时返回原始响应体（可能为空字符串）
func (c *WebhookClient) Invoke(ctx context.Context, b EndpointBinding, payload any, subject string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("构建请求失败: %w", err)
	}

	status, respBody, err := c.do(ctx, b, http.MethodPost, b.URL, body)
	if err != nil {
		logger.Log.WithError(err).WithField("webhook", b.Name).Warn("调用上游 webhook 失败")
		return "", newError(KindUpstreamUnreachable, fmt.Sprintf("failed to call %s webhook", b.Name), err)
	}
	if isSuccess(status) {
		return respBody, nil
	}

	logger.Log.WithFields(logrus.Fields{
		"webhook": b.Name,
		"status":  status,
		"body":    respBody,
	}).Warn("上游 POST 请求失败")

	if !shouldFallbackToGet(status, respBody) {
		return "", statusError(status, fmt.Sprintf("%s webhook responded with status %d", b.Name, status))
	}
	return c.Get(ctx, b, subject)
}

// Get 以所有查询别名携带主体发起 GET，只接受 2xx
func (c *WebhookClient) Get(ctx context.Context, b EndpointBinding, subject string) (string, error) {
	target, err := b.QueryURL(subject)
	if err != nil {
		return "", newError(KindNotConfigured, err.Error(), err)
	}
	logger.Log.WithField("webhook", b.Name).Infof("通过 GET 调用上游: %s", target)

	status, respBody, err := c.do(ctx, b, http.MethodGet, target, nil)
	if err != nil {
		logger.Log.WithError(err).WithField("webhook", b.Name).Warn("上游 GET 请求失败")
		return "", newError(KindUpstreamUnreachable, fmt.Sprintf("%s webhook GET request failed", b.Name), err)
	}
	if !isSuccess(status) {
		return "", statusError(status, fmt.Sprintf("%s webhook GET responded with status %d", b.Name, status))
	}
	return respBody, nil
}

// do 发送请求并读完响应体；读超时覆盖从发送到读完整个响应体
func (c *WebhookClient) do(ctx context.Context, b EndpointBinding, method, target string, body []byte) (int, string, error) {
	if b.ReadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.ReadTimeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, "", fmt.Errorf("创建请求失败: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("读取响应失败: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"webhook": b.Name,
		"method":  method,
		"status":  resp.StatusCode,
		"bytes":   len(data),
	}).Info("上游响应")
	return resp.StatusCode, string(data), nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func shouldFallbackToGet(status int, body string) bool {
	if status == http.StatusNotFound || status == http.StatusMethodNotAllowed {
		return true
	}
	return strings.Contains(strings.ToLower(body), "not registered for post")
}
