package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rkonno1123-creator/bougu-check-app/internal/session"
)

// VendorRequest 業者の追加・改名リクエスト
type VendorRequest struct {
	Name string `json:"name"`
}

// ListVendors 業者一覧（登録順）
// GET /api/vendors
func (h *Handler) ListVendors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vendors": h.session.Vendors()})
}

// AddVendor 業者を追加
// POST /api/vendors
func (h *Handler) AddVendor(c *gin.Context) {
	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストが不正です"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "業者名を入力してください"})
		return
	}

	v := h.session.AddVendor(req.Name)
	h.persist()

	c.JSON(http.StatusOK, gin.H{"vendor": v})
}

// RenameVendor 業者名を変更
// PATCH /api/vendors/:id
func (h *Handler) RenameVendor(c *gin.Context) {
	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストが不正です"})
		return
	}

	if err := h.session.RenameVendor(c.Param("id"), req.Name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.persist()

	c.JSON(http.StatusOK, gin.H{"vendors": h.session.Vendors()})
}

// RemoveVendor 業者を削除（最後の1社は削除できない）
// DELETE /api/vendors/:id
func (h *Handler) RemoveVendor(c *gin.Context) {
	err := h.session.RemoveVendor(c.Param("id"))
	if errors.Is(err, session.ErrLastVendor) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.persist()

	c.JSON(http.StatusOK, gin.H{"vendors": h.session.Vendors()})
}
