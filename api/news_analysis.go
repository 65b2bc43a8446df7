package api

import (
	"net/http"

	"finance-analysis/service"

	"github.com/gin-gonic/gin"
)

// NewsAnalysisHandler 新闻分析处理器
type NewsAnalysisHandler struct {
	svc *service.NewsAnalysisService
}

// NewNewsAnalysisHandler 创建新闻分析处理器
func NewNewsAnalysisHandler(svc *service.NewsAnalysisService) *NewsAnalysisHandler {
	return &NewsAnalysisHandler{svc: svc}
}

// NewsAnalysisRequest 新闻分析请求
type NewsAnalysisRequest struct {
	Keyword string `json:"keyword" binding:"notblank,max=255" example:"semiconductors"`
}

// Analyze 新闻关键词分析
// @Summary 新闻关键词分析
// @Description 将关键词转发到新闻分析 webhook，保存原始结果并返回解析后的分析内容
// @Tags 新闻分析
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NewsAnalysisRequest true "关键词"
// @Success 200 {object} service.NewsAnalysisResponse "分析结果"
// @Failure 400 {object} ErrorBody "请求参数错误"
// @Failure 401 {object} ErrorBody "未授权"
// @Failure 502 {object} ErrorBody "上游未配置或调用失败"
// @Router /api/news/analysis [post]
func (h *NewsAnalysisHandler) Analyze(c *gin.Context) {
	var req NewsAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	resp, err := h.svc.Analyze(c.Request.Context(), req.Keyword)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History 最近的新闻分析记录
// @Summary 新闻分析历史
// @Description 按请求时间倒序返回最近的新闻分析记录，limit 取值 1-10，默认 10
// @Tags 新闻分析
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回条数 (1-10)"
// @Success 200 {array} service.NewsAnalysisResponse "历史记录"
// @Failure 400 {object} ErrorBody "请求参数错误"
// @Failure 500 {object} ErrorBody "存储错误"
// @Router /api/news/history [get]
func (h *NewsAnalysisHandler) History(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "limit must be an integer")
		return
	}

	list, err := h.svc.History(c.Request.Context(), q.Limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
