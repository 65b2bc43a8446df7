package service

import (
	"errors"
	"fmt"
)

// ErrorKind 分析流程中的错误分类，由 api 层映射为 HTTP 状态码
type ErrorKind int

const (
	// KindNotConfigured 未配置上游地址
	KindNotConfigured ErrorKind = iota + 1
	// KindBadRequest 请求主体为空或非法
	KindBadRequest
	// KindUpstreamUnreachable 上游网络/传输失败
	KindUpstreamUnreachable
	// KindUpstreamStatus 上游返回非 2xx
	KindUpstreamStatus
	// KindUpstreamEmpty 上游返回 2xx 但内容为空
	KindUpstreamEmpty
	// KindStorageFailure 存储读写失败
	KindStorageFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotConfigured:
		return "NotConfigured"
	case KindBadRequest:
		return "BadRequest"
	case KindUpstreamUnreachable:
		return "UpstreamUnreachable"
	case KindUpstreamStatus:
		return "UpstreamStatus"
	case KindUpstreamEmpty:
		return "UpstreamEmpty"
	case KindStorageFailure:
		return "StorageFailure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// EmptyResultMessage 上游未返回分析结果时的提示
const EmptyResultMessage = "upstream did not return an analysis result; please retry"

// AnalysisError 带分类的分析错误
type AnalysisError struct {
	Kind       ErrorKind
	StatusCode int // 仅 KindUpstreamStatus 有值
	Message    string
	Err        error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, msg string, err error) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: msg, Err: err}
}

func statusError(code int, msg string) *AnalysisError {
	return &AnalysisError{Kind: KindUpstreamStatus, StatusCode: code, Message: msg}
}

// KindOf 返回 err 链上第一个 AnalysisError 的分类，没有则返回 0
func KindOf(err error) ErrorKind {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// IsKind 判断 err 是否属于指定分类
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
