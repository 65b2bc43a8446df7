package api

import (
	"net/http"

	"finance-analysis/service"

	"github.com/gin-gonic/gin"
)

// StockAnalysisHandler 股票分析处理器
type StockAnalysisHandler struct {
	svc      *service.StockAnalysisService
	intraday *service.IntradayService
}

// NewStockAnalysisHandler 创建股票分析处理器
func NewStockAnalysisHandler(svc *service.StockAnalysisService, intraday *service.IntradayService) *StockAnalysisHandler {
	return &StockAnalysisHandler{svc: svc, intraday: intraday}
}

// StockAnalysisRequest 股票分析请求
type StockAnalysisRequest struct {
	StockCode    string `json:"stockCode" binding:"notblank,stockcode" example:"NVDA"`
	AnalysisType string `json:"analysisType" example:"COMPREHENSIVE"` // COMPREHENSIVE | STRUCTURED，其他值按 COMPREHENSIVE 处理
}

// HistoryQuery 历史查询参数
type HistoryQuery struct {
	Limit int `form:"limit" example:"10"`
}

// Analyze 股票分析
// @Summary 股票分析
// @Description 将股票代码转发到综合或结构化分析 webhook，保存原始结果并返回解析后的分析内容
// @Tags 股票分析
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StockAnalysisRequest true "股票代码与分析类型"
// @Success 200 {object} service.StockAnalysisResponse "分析结果"
// @Failure 400 {object} ErrorBody "请求参数错误"
// @Failure 401 {object} ErrorBody "未授权"
// @Failure 502 {object} ErrorBody "上游未配置或调用失败"
// @Router /api/stocks/analysis [post]
func (h *StockAnalysisHandler) Analyze(c *gin.Context) {
	var req StockAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	resp, err := h.svc.Analyze(c.Request.Context(), req.StockCode, req.AnalysisType)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History 最近的股票分析记录
// @Summary 股票分析历史
// @Description 按请求时间倒序返回最近的股票分析记录，limit 取值 1-10，默认 10
// @Tags 股票分析
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回条数 (1-10)"
// @Success 200 {array} service.StockAnalysisResponse "历史记录"
// @Failure 400 {object} ErrorBody "请求参数错误"
// @Failure 500 {object} ErrorBody "存储错误"
// @Router /api/stocks/history [get]
func (h *StockAnalysisHandler) History(c *gin.Context) {
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

// AnalyzeRaw 单只股票透传查询
// @Summary 单只股票透传查询
// @Description 以 GET 调用结构化分析 webhook 并原样返回响应体，不保存历史
// @Tags 股票分析
// @Produce json
// @Security BearerAuth
// @Param code query string true "股票代码" example(NVDA)
// @Success 200 {object} object "上游原始响应"
// @Failure 400 {object} ErrorBody "请求参数错误"
// @Failure 502 {object} ErrorBody "上游未配置或调用失败"
// @Router /api/stocks/analyze [get]
func (h *StockAnalysisHandler) AnalyzeRaw(c *gin.Context) {
	code, ok := c.GetQuery("code")
	if !ok {
		BadRequest(c, "Required request parameter 'code' is not present")
		return
	}

	body, err := h.svc.AnalyzeRaw(c.Request.Context(), code)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(body))
}

// Intraday 分时行情
// @Summary 分时行情
// @Description 查询 Alpha Vantage 分时 K 线，按时间升序返回
// @Tags 股票分析
// @Produce json
// @Security BearerAuth
// @Param symbol query string true "股票代码" example(IBM)
// @Param interval query string false "粒度 1min/5min/15min/30min/60min，默认 5min"
// @Success 200 {object} service.IntradaySeries "分时数据"
// @Failure 400 {object} ErrorBody "请求参数错误"
// @Failure 502 {object} ErrorBody "行情接口未配置或调用失败"
// @Router /api/stocks/intraday [get]
func (h *StockAnalysisHandler) Intraday(c *gin.Context) {
	series, err := h.intraday.FetchSeries(c.Request.Context(), c.Query("symbol"), c.DefaultQuery("interval", "5min"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}
