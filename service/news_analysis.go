package service

import (
	"context"
	"strings"
	"time"

	"finance-analysis/logger"
	"finance-analysis/models"

	"github.com/sirupsen/logrus"
)

// NewsAnalysisService 新闻关键词分析
type NewsAnalysisService struct {
	store   HistoryStore[models.NewsAnalysisRecord]
	client  *WebhookClient
	binding EndpointBinding
	now     func() time.Time
}

// NewNewsAnalysisService 创建新闻分析服务
func NewNewsAnalysisService(store HistoryStore[models.NewsAnalysisRecord], client *WebhookClient, binding EndpointBinding) *NewsAnalysisService {
	return &NewsAnalysisService{
		store:   store,
		client:  client,
		binding: binding,
		now:     time.Now,
	}
}

// Analyze 执行一次关键词分析
func (s *NewsAnalysisService) Analyze(ctx context.Context, keyword string) (*NewsAnalysisResponse, error) {
	if !s.binding.Configured() {
		return nil, newError(KindNotConfigured, "news analysis webhook URL is not configured", nil)
	}
	normalized := strings.TrimSpace(keyword)
	if normalized == "" {
		return nil, newError(KindBadRequest, "keyword is required", nil)
	}

	logger.Log.WithFields(logrus.Fields{
		"keyword": normalized,
		"webhook": s.binding.URL,
	}).Info("转发新闻分析请求")

	raw, err := s.client.Invoke(ctx, s.binding, s.binding.Payload(normalized), normalized)
	if err != nil {
		return nil, err
	}
	requestedAt := s.now().UTC()

	tree, persisted, empty, err := materialize(raw)
	if err != nil {
		return nil, err
	}
	if empty {
		logger.Log.WithField("keyword", normalized).Warn("上游返回空分析结果")
	}

	record := models.NewsAnalysisRecord{
		Subject:     normalized,
		RawBody:     persisted,
		RequestedAt: requestedAt,
	}
	if err := s.store.Insert(ctx, &record); err != nil {
		return nil, err
	}

	return &NewsAnalysisResponse{
		ID:          record.ID,
		Keyword:     normalized,
		Analysis:    tree,
		RequestedAt: record.RequestedAt,
	}, nil
}

// History 最近的新闻分析记录
func (s *NewsAnalysisService) History(ctx context.Context, limit int) ([]NewsAnalysisResponse, error) {
	records, err := s.store.FindRecent(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}

	list := make([]NewsAnalysisResponse, 0, len(records))
	for _, r := range records {
		tree, empty := project(r.RawBody)
		if empty {
			logger.Log.WithFields(logrus.Fields{
				"id":      r.ID,
				"keyword": r.Subject,
			}).Warn("历史记录中的分析结果为空")
		}
		list = append(list, NewsAnalysisResponse{
			ID:          r.ID,
			Keyword:     r.Subject,
			Analysis:    tree,
			RequestedAt: r.RequestedAt,
		})
	}
	return list, nil
}

// Records 最近的原始记录，供导出使用
func (s *NewsAnalysisService) Records(ctx context.Context, limit int) ([]models.NewsAnalysisRecord, error) {
	return s.store.FindRecent(ctx, clampLimit(limit))
}
