package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rkonno1123-creator/bougu-check-app/internal/service/reconcile"
)

// GetSummary 照合結果（日付×項目のステータスと統計）
// GET /api/summary
func (h *Handler) GetSummary(c *gin.Context) {
	ref := h.session.Reference()
	vendors := h.session.Vendors()
	snap := h.session.Snapshot()

	rows := reconcile.Report(ref, snap.Inputs, vendors)
	if rows == nil {
		rows = []reconcile.DateReport{}
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":   reconcile.Summarize(ref, snap.Inputs, vendors),
		"rows":    rows,
		"vendors": vendors,
	})
}
