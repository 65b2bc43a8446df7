package api

import (
	"fmt"
	"time"

	"finance-analysis/logger"
	"finance-analysis/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 历史记录导出
type ExportHandler struct {
	stock *service.StockAnalysisService
	news  *service.NewsAnalysisService
}

// NewExportHandler 创建导出处理器
func NewExportHandler(stock *service.StockAnalysisService, news *service.NewsAnalysisService) *ExportHandler {
	return &ExportHandler{stock: stock, news: news}
}

// ExportStockHistory 导出股票分析历史
// @Summary 导出股票分析历史
// @Description 将最近的股票分析记录导出为 Excel，limit 取值 1-10，默认 10
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param limit query int false "导出条数 (1-10)"
// @Success 200 {file} file "Excel文件"
// @Failure 500 {object} ErrorBody "存储错误"
// @Router /api/stocks/history/export [get]
func (h *ExportHandler) ExportStockHistory(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "limit must be an integer")
		return
	}
	records, err := h.stock.Records(c.Request.Context(), q.Limit)
	if err != nil {
		RespondError(c, err)
		return
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{r.ID, r.Subject, r.Kind, r.RequestedAt.Format("2006-01-02 15:04:05"), r.RawBody})
	}
	writeWorkbook(c, "股票分析", []string{"ID", "股票代码", "分析类型", "请求时间", "原始结果"}, rows, "stock_history")
}

// ExportNewsHistory 导出新闻分析历史
// @Summary 导出新闻分析历史
// @Description 将最近的新闻分析记录导出为 Excel，limit 取值 1-10，默认 10
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param limit query int false "导出条数 (1-10)"
// @Success 200 {file} file "Excel文件"
// @Failure 500 {object} ErrorBody "存储错误"
// @Router /api/news/history/export [get]
func (h *ExportHandler) ExportNewsHistory(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "limit must be an integer")
		return
	}
	records, err := h.news.Records(c.Request.Context(), q.Limit)
	if err != nil {
		RespondError(c, err)
		return
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{r.ID, r.Subject, r.RequestedAt.Format("2006-01-02 15:04:05"), r.RawBody})
	}
	writeWorkbook(c, "新闻分析", []string{"ID", "关键词", "请求时间", "原始结果"}, rows, "news_history")
}

// writeWorkbook 生成单 sheet 工作簿并写入响应
func writeWorkbook(c *gin.Context, sheetName string, headers []string, rows [][]any, filePrefix string) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    border,
	})

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetColWidth(sheetName, "A", lastCol, 20)
	// 原始结果列加宽
	f.SetColWidth(sheetName, lastCol, lastCol, 80)

	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheetName, cell, v)
		}
		first, _ := excelize.CoordinatesToCellName(1, i+2)
		last, _ := excelize.CoordinatesToCellName(len(headers), i+2)
		f.SetCellStyle(sheetName, first, last, dataStyle)
	}

	filename := fmt.Sprintf("%s_%s.xlsx", filePrefix, time.Now().Format("20060102150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	if err := f.Write(c.Writer); err != nil {
		logger.Log.WithError(err).Error("生成 Excel 失败")
		InternalError(c, "Failed to generate Excel file")
	}
}
