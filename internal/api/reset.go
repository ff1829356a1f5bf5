package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Reset セッションを初期状態に戻し、保存データも消す
// POST /api/reset
func (h *Handler) Reset(c *gin.Context) {
	h.session.Reset()
	if err := h.store.DeleteSnapshot(); err != nil {
		// 消せなくてもメモリ上はリセット済みなので続行
		log.Printf("保存データの削除に失敗: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
