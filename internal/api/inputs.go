package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rkonno1123-creator/bougu-check-app/internal/model"
)

// SetInputRequest 入力値の更新リクエスト（1セル単位）
// Value は文字列で受け、空文字は「未入力に戻す」を意味する
type SetInputRequest struct {
	Date     string `json:"date"`
	VendorID string `json:"vendorId"`
	Item     string `json:"item"`
	Value    string `json:"value"`
}

// GetInputs 指定日・業者の3項目の入力値を返す（未入力は null）
// GET /api/inputs?date=&vendorId=
func (h *Handler) GetInputs(c *gin.Context) {
	date := c.Query("date")
	vendorID := c.Query("vendorId")
	if date == "" || vendorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date と vendorId が必要です"})
		return
	}

	values := model.ItemValues{}
	for _, item := range model.Items() {
		values[item] = h.session.Input(date, vendorID, item)
	}
	c.JSON(http.StatusOK, gin.H{"values": values})
}

// SetInput 入力値を1セル更新する。
// 数値に解釈できない入力は0に丸める（原典アプリと同じ挙動。
// 入力ミスが黙って0になる点は把握済みの仕様）。
// PUT /api/inputs
func (h *Handler) SetInput(c *gin.Context) {
	var req SetInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストが不正です"})
		return
	}
	if req.Date == "" || req.VendorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date と vendorId が必要です"})
		return
	}
	item := model.Item(req.Item)
	if !item.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不明な項目です"})
		return
	}

	value := coerceValue(req.Value)
	h.session.SetInput(req.Date, req.VendorID, item, value)
	h.persist()

	c.JSON(http.StatusOK, gin.H{"value": value})
}

// coerceValue 空文字は未入力(nil)、数値以外と負数は0に丸める
func coerceValue(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		n = 0
	}
	return &n
}
