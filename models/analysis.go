package models

import (
	"time"

	"gorm.io/gorm"
)

// AnalysisKind 股票分析类型
type AnalysisKind string

const (
	// AnalysisComprehensive 综合分析（默认）
	AnalysisComprehensive AnalysisKind = "COMPREHENSIVE"
	// AnalysisStructured 结构化分析
	AnalysisStructured AnalysisKind = "STRUCTURED"
)

// AnalysisRecord 两类分析记录的类型约束，供泛型历史存储使用
type AnalysisRecord interface {
	StockAnalysisRecord | NewsAnalysisRecord
}

// StockAnalysisRecord 股票分析记录（只追加，不修改）
// RawBody 保存上游原始响应；上游返回空内容时保存合成的 {"error": ...}
type StockAnalysisRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey;index:idx_stock_recent,sort:desc,priority:2"`
	Subject     string    `json:"stockCode" gorm:"size:32;not null"`
	Kind        string    `json:"analysisType" gorm:"size:20;not null"`
	RawBody     string    `json:"rawBody" gorm:"type:longtext;not null"`
	RequestedAt time.Time `json:"requestedAt" gorm:"not null;index:idx_stock_recent,sort:desc,priority:1"`
}

// TableName 设置表名
func (StockAnalysisRecord) TableName() string {
	return "stock_analysis_records"
}

// BeforeCreate 统一以 UTC 存储，保证 requested_at 排序与时间先后一致
func (r *StockAnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	r.RequestedAt = r.RequestedAt.UTC()
	return nil
}

// NewsAnalysisRecord 新闻关键词分析记录
type NewsAnalysisRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey;index:idx_news_recent,sort:desc,priority:2"`
	Subject     string    `json:"keyword" gorm:"size:255;not null"`
	RawBody     string    `json:"rawBody" gorm:"type:longtext;not null"`
	RequestedAt time.Time `json:"requestedAt" gorm:"not null;index:idx_news_recent,sort:desc,priority:1"`
}

// TableName 设置表名
func (NewsAnalysisRecord) TableName() string {
	return "news_analysis_records"
}

// BeforeCreate 统一以 UTC 存储
func (r *NewsAnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	r.RequestedAt = r.RequestedAt.UTC()
	return nil
}
