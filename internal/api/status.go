package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse アプリ状態
type StatusResponse struct {
	Initialized bool   `json:"initialized"` // 基準データがインポート済みか
	Ready       bool   `json:"ready"`       // 入力・集計画面に進めるか
	VendorCount int    `json:"vendorCount"` // 登録業者数
	DateCount   int    `json:"dateCount"`   // 基準データの日数
	SavedAt     string `json:"savedAt"`     // 最終保存時刻（表示用）
}

// GetStatus アプリ状態を取得
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ref := h.session.Reference()
	vendors := h.session.Vendors()

	resp := StatusResponse{
		Initialized: ref != nil,
		VendorCount: len(vendors),
		SavedAt:     h.session.SavedAt(),
	}
	if ref != nil {
		resp.DateCount = len(ref.Dates)
	}
	resp.Ready = resp.Initialized && resp.VendorCount >= 1

	c.JSON(http.StatusOK, resp)
}
