package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rkonno1123-creator/bougu-check-app/internal/service/weekgrid"
)

// ListWeeks 入力フォーム用の週リスト（毎回基準データから導出する）
// GET /api/weeks
func (h *Handler) ListWeeks(c *gin.Context) {
	ref := h.session.Reference()
	if ref == nil {
		c.JSON(http.StatusOK, gin.H{"weeks": []weekgrid.Week{}})
		return
	}

	weeks := weekgrid.Weeks(ref.Dates)
	if weeks == nil {
		weeks = []weekgrid.Week{}
	}
	c.JSON(http.StatusOK, gin.H{"weeks": weeks})
}
