package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var endpoints = []string{
	"/api/stocks/analysis [POST]",
	"/api/stocks/history [GET]",
	"/api/stocks/analyze?code=NVDA [GET]",
	"/api/stocks/intraday?symbol=IBM&interval=5min [GET]",
	"/api/stocks/history/export [GET]",
	"/api/news/analysis [POST]",
	"/api/news/history [GET]",
	"/api/news/history/export [GET]",
	"/api/auth/register [POST]",
	"/api/auth/login [POST]",
	"/api/auth/me [GET]",
}

// Home 服务首页，列出可用接口
// @Summary 服务首页
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{} "接口列表"
// @Router / [get]
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":       "Finance Analysis API",
		"status":    "ok",
		"endpoints": endpoints,
	})
}

// Health 健康检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{} "ok"
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
