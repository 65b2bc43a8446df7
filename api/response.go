package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"finance-analysis/config"
	"finance-analysis/logger"
	"finance-analysis/middleware"
	"finance-analysis/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ErrorBody 统一错误响应结构
type ErrorBody struct {
	Timestamp string            `json:"timestamp" example:"2024-01-01T12:00:00+08:00"`
	Message   string            `json:"message" example:"Validation failed"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func newErrorBody(message string, fieldErrors map[string]string) ErrorBody {
	return ErrorBody{
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   message,
		Errors:    fieldErrors,
	}
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, newErrorBody(message, nil))
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// StatusFor 错误分类对应的 HTTP 状态码
func StatusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindBadRequest:
		return http.StatusBadRequest
	case service.KindNotConfigured, service.KindUpstreamUnreachable,
		service.KindUpstreamStatus, service.KindUpstreamEmpty:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError 将 service 层错误映射为 HTTP 响应
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)
	entry := logger.Log.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"path":       c.Request.URL.Path,
	})

	var ae *service.AnalysisError
	if !errors.As(err, &ae) {
		entry.WithError(err).Error("未处理的错误")
		InternalError(c, SafeErrorMessage(err, "Unexpected error"))
		return
	}

	status := StatusFor(ae.Kind)
	entry = entry.WithFields(logrus.Fields{"kind": ae.Kind.String(), "status": status})
	if ae.StatusCode != 0 {
		entry = entry.WithField("upstream_status", ae.StatusCode)
	}
	if status == http.StatusBadGateway {
		entry.WithError(err).Warn("分析流程错误")
	} else if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("存储操作失败")
	}

	if ae.Kind == service.KindBadRequest {
		Error(c, status, ae.Message)
		return
	}
	Error(c, status, SafeErrorMessage(ae, ae.Message))
}

// RespondBindError 处理请求体绑定失败：字段校验错误带 errors 明细，其余按请求体格式错误处理
func RespondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, newErrorBody("Validation failed", fields))
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		BadRequest(c, "Malformed request body")
	default:
		BadRequest(c, SafeErrorMessage(err, "Malformed request"))
	}
}

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
