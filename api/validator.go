package api

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	stockCodePattern = regexp.MustCompile(`^[A-Z]{4}$`)
	registerOnce     sync.Once
)

// RegisterValidators 向 gin 的校验引擎注册自定义规则，重复调用无副作用
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// 错误明细使用 json 字段名
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("stockcode", validateStockCode)
		_ = v.RegisterValidation("notblank", validateNotBlank)
	})
}

// validateStockCode 去空白并转大写后必须是 4 位大写字母
func validateStockCode(fl validator.FieldLevel) bool {
	return stockCodePattern.MatchString(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// fieldMessage 字段校验失败时返回给调用方的提示
func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "stockCode":
		if fe.Tag() == "stockcode" {
			return "Stock code must be four uppercase characters (e.g. AAPL)"
		}
		return "Stock code is required"
	case "keyword":
		if fe.Tag() == "max" {
			return "Keyword must be at most " + fe.Param() + " characters"
		}
		return "Keyword is required"
	case "username":
		return "Username is required"
	case "password":
		if fe.Tag() == "min" {
			return "Password must be at least " + fe.Param() + " characters"
		}
		return "Password is required"
	}
	return fe.Field() + " is invalid (" + fe.Tag() + ")"
}
