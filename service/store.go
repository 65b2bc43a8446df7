package service

import (
	"context"

	"finance-analysis/models"

	"gorm.io/gorm"
)

// HistoryStore 分析记录的只追加存储
type HistoryStore[T models.AnalysisRecord] interface {
	// Insert 写入记录并回填 ID
	Insert(ctx context.Context, record *T) error
	// FindRecent 按 requested_at DESC, id DESC 返回最多 limit 条
	FindRecent(ctx context.Context, limit int) ([]T, error)
}

// GormHistoryStore 基于 gorm 的实现，表名由记录类型的 TableName 决定
type GormHistoryStore[T models.AnalysisRecord] struct {
	db *gorm.DB
}

// NewGormHistoryStore 创建存储
func NewGormHistoryStore[T models.AnalysisRecord](db *gorm.DB) *GormHistoryStore[T] {
	return &GormHistoryStore[T]{db: db}
}

// Insert 写入记录，ID 由数据库自增分配
func (s *GormHistoryStore[T]) Insert(ctx context.Context, record *T) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return newError(KindStorageFailure, "failed to save analysis record", err)
	}
	return nil
}

// FindRecent 查询最近的记录
func (s *GormHistoryStore[T]) FindRecent(ctx context.Context, limit int) ([]T, error) {
	if limit <= 0 {
		return []T{}, nil
	}
	var list []T
	if err := s.db.WithContext(ctx).
		Order("requested_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, newError(KindStorageFailure, "failed to load analysis history", err)
	}
	return list, nil
}
