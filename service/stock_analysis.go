package service

import (
	"context"
	"strings"
	"time"

	"finance-analysis/logger"
	"finance-analysis/models"

	"github.com/sirupsen/logrus"
)

// StockAnalysisService 股票分析：转发到综合/结构化 webhook，持久化并返回解析结果
type StockAnalysisService struct {
	store         HistoryStore[models.StockAnalysisRecord]
	client        *WebhookClient
	comprehensive EndpointBinding
	structured    EndpointBinding
	now           func() time.Time
}

// NewStockAnalysisService 创建股票分析服务
func NewStockAnalysisService(store HistoryStore[models.StockAnalysisRecord], client *WebhookClient, comprehensive, structured EndpointBinding) *StockAnalysisService {
	return &StockAnalysisService{
		store:         store,
		client:        client,
		comprehensive: comprehensive,
		structured:    structured,
		now:           time.Now,
	}
}

// NormalizeKind 空值默认 COMPREHENSIVE；除 STRUCTURED（不区分大小写）外一律视为 COMPREHENSIVE
func NormalizeKind(analysisType string) models.AnalysisKind {
	if strings.EqualFold(strings.TrimSpace(analysisType), string(models.AnalysisStructured)) {
		return models.AnalysisStructured
	}
	return models.AnalysisComprehensive
}

// NormalizeStockCode 去除首尾空白并转大写，为空时返回 KindBadRequest
func NormalizeStockCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", newError(KindBadRequest, "stock code is required", nil)
	}
	return normalized, nil
}

func (s *StockAnalysisService) bindingFor(kind models.AnalysisKind) (EndpointBinding, error) {
	b := s.comprehensive
	if kind == models.AnalysisStructured {
		b = s.structured
	}
	if !b.Configured() {
		return b, newError(KindNotConfigured, b.Name+" webhook URL is not configured", nil)
	}
	return b, nil
}

// Analyze 执行一次股票分析
func (s *StockAnalysisService) Analyze(ctx context.Context, stockCode, analysisType string) (*StockAnalysisResponse, error) {
	kind := NormalizeKind(analysisType)
	binding, err := s.bindingFor(kind)
	if err != nil {
		return nil, err
	}
	code, err := NormalizeStockCode(stockCode)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"stockCode": code,
		"kind":      kind,
		"webhook":   binding.URL,
	}).Info("转发股票分析请求")

	raw, err := s.client.Invoke(ctx, binding, binding.Payload(code), code)
	if err != nil {
		return nil, err
	}
	requestedAt := s.now().UTC()

	tree, persisted, empty, err := materialize(raw)
	if err != nil {
		return nil, err
	}
	if empty {
		logger.Log.WithField("stockCode", code).Warn("上游返回空分析结果")
	}

	record := models.StockAnalysisRecord{
		Subject:     code,
		Kind:        string(kind),
		RawBody:     persisted,
		RequestedAt: requestedAt,
	}
	if err := s.store.Insert(ctx, &record); err != nil {
		return nil, err
	}

	return &StockAnalysisResponse{
		ID:           record.ID,
		StockCode:    code,
		AnalysisType: string(kind),
		Analysis:     tree,
		RequestedAt:  record.RequestedAt,
	}, nil
}

// AnalyzeRaw 单只股票透传查询：仅 GET 结构化 webhook，不解析不持久化，原样返回响应体
func (s *StockAnalysisService) AnalyzeRaw(ctx context.Context, stockCode string) (string, error) {
	binding, err := s.bindingFor(models.AnalysisStructured)
	if err != nil {
		return "", err
	}
	code, err := NormalizeStockCode(stockCode)
	if err != nil {
		return "", err
	}
	return s.client.Get(ctx, binding, code)
}

// History 最近的股票分析记录，存储内容无法解析或为空时以错误对象替代
func (s *StockAnalysisService) History(ctx context.Context, limit int) ([]StockAnalysisResponse, error) {
	records, err := s.store.FindRecent(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}

	list := make([]StockAnalysisResponse, 0, len(records))
	for _, r := range records {
		tree, empty := project(r.RawBody)
		if empty {
			logger.Log.WithFields(logrus.Fields{
				"id":        r.ID,
				"stockCode": r.Subject,
			}).Warn("历史记录中的分析结果为空")
		}
		list = append(list, StockAnalysisResponse{
			ID:           r.ID,
			StockCode:    r.Subject,
			AnalysisType: string(NormalizeKind(r.Kind)),
			Analysis:     tree,
			RequestedAt:  r.RequestedAt,
		})
	}
	return list, nil
}

// Records 最近的原始记录，供导出使用
func (s *StockAnalysisService) Records(ctx context.Context, limit int) ([]models.StockAnalysisRecord, error) {
	return s.store.FindRecent(ctx, clampLimit(limit))
}
