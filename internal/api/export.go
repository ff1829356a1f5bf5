package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rkonno1123-creator/bougu-check-app/internal/export"
)

// ExportPrint 印刷用の単体HTMLを返す
// GET /api/export/print
func (h *Handler) ExportPrint(c *gin.Context) {
	ref := h.session.Reference()
	if ref == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "基準データがありません"})
		return
	}
	snap := h.session.Snapshot()

	html, err := export.PrintHTML(ref, snap.Inputs, h.session.Vendors())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// ExportWorkbook 照合結果をExcelでダウンロードする
// GET /api/export/xlsx
func (h *Handler) ExportWorkbook(c *gin.Context) {
	ref := h.session.Reference()
	if ref == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "基準データがありません"})
		return
	}
	snap := h.session.Snapshot()

	f, err := export.SummaryWorkbook(ref, snap.Inputs, h.session.Vendors())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("照合結果_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
