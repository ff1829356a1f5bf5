// Package api は照合アプリの REST API ハンドラー群。
package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rkonno1123-creator/bougu-check-app/internal/service/excel"
	"github.com/rkonno1123-creator/bougu-check-app/internal/session"
	"github.com/rkonno1123-creator/bougu-check-app/internal/store"
)

// Handler API ハンドラー
type Handler struct {
	session *session.Session
	store   *store.Store
	layout  excel.Layout
}

// NewHandler ハンドラーを作成
func NewHandler(sess *session.Session, st *store.Store, layout excel.Layout) *Handler {
	return &Handler{
		session: sess,
		store:   st,
		layout:  layout,
	}
}

// RegisterRoutes API ルートを登録
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 状態
	router.GET("/status", h.GetStatus)

	// 業者管理
	router.GET("/vendors", h.ListVendors)
	router.POST("/vendors", h.AddVendor)
	router.PATCH("/vendors/:id", h.RenameVendor)
	router.DELETE("/vendors/:id", h.RemoveVendor)

	// Excel集計表インポート
	router.POST("/import", h.Import)

	// 入力フォーム
	router.GET("/weeks", h.ListWeeks)
	router.GET("/inputs", h.GetInputs)
	router.PUT("/inputs", h.SetInput)

	// 集計・出力
	router.GET("/summary", h.GetSummary)
	router.GET("/export/print", h.ExportPrint)
	router.GET("/export/xlsx", h.ExportWorkbook)

	// 全消去
	router.POST("/reset", h.Reset)
}

// persist 現在のセッションを丸ごと保存する。
// 保存失敗はログのみで、メモリ上の状態が正として継続する。
func (h *Handler) persist() {
	now := time.Now().Format("2006/01/02 15:04:05")
	snap := h.session.Snapshot()
	snap.SavedAt = now
	if err := h.store.SaveSnapshot(snap); err != nil {
		log.Printf("セッション保存に失敗（継続します）: %v", err)
		return
	}
	h.session.MarkSaved(now)
}
