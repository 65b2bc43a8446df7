package service

import (
	"fmt"
	"time"
)

// DefaultHistoryLimit 历史查询默认条数
const DefaultHistoryLimit = 10

// StockAnalysisResponse 股票分析结果
type StockAnalysisResponse struct {
	ID           uint      `json:"id"`
	StockCode    string    `json:"stockCode"`
	AnalysisType string    `json:"analysisType"`
	Analysis     any       `json:"analysis"`
	RequestedAt  time.Time `json:"requestedAt"`
}

// NewsAnalysisResponse 新闻分析结果
type NewsAnalysisResponse struct {
	ID          uint      `json:"id"`
	Keyword     string    `json:"keyword"`
	Analysis    any       `json:"analysis"`
	RequestedAt time.Time `json:"requestedAt"`
}

// materialize 写入路径：上游内容为空时合成 {"error": ...}，并将其序列化结果作为持久化内容
// empty 为 true 表示发生了替换，由调用方记 WARN 日志
func materialize(raw string) (tree any, persisted string, empty bool, err error) {
	tree, presentErr := EnsurePresent(raw)
	if presentErr == nil {
		return tree, raw, false, nil
	}
	errTree := ErrorTree(EmptyResultMessage)
	persisted, err = encodeTree(errTree)
	if err != nil {
		return nil, "", true, fmt.Errorf("序列化错误对象失败: %w", err)
	}
	return errTree, persisted, true, nil
}

// project 读取路径：解析存储的原文，为空时替换为合成的错误对象，不报错
func project(raw string) (tree any, empty bool) {
	tree, err := EnsurePresent(raw)
	if err != nil {
		return ErrorTree(EmptyResultMessage), true
	}
	return tree, false
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > DefaultHistoryLimit {
		return DefaultHistoryLimit
	}
	return limit
}
