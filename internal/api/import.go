package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rkonno1123-creator/bougu-check-app/internal/service/excel"
	"github.com/rkonno1123-creator/bougu-check-app/internal/service/weekgrid"
)

// ImportResponse インポート結果
type ImportResponse struct {
	Dates         int      `json:"dates"`         // 取り込んだ日数
	Weeks         int      `json:"weeks"`         // 入力フォームの週数
	MissingSheets []string `json:"missingSheets"` // 見つからなかったシート（警告）
}

// Import Excel集計表を取り込む。
// 成功時は基準データを丸ごと差し替えて入力値をクリアする。
// 失敗時は何も変更しない（途中状態は作らない）。
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Excelファイルが選択されていません"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "アップロードファイルを開けません"})
		return
	}
	defer f.Close()

	result, err := excel.NewImporter(h.layout).Parse(f)
	if err != nil {
		// セッションは変更しない
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Excelの読み込みに失敗: %v", err)})
		return
	}

	h.session.SetReference(result.Dataset)
	h.persist()

	missing := result.MissingSheets
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, ImportResponse{
		Dates:         len(result.Dataset.Dates),
		Weeks:         len(weekgrid.Weeks(result.Dataset.Dates)),
		MissingSheets: missing,
	})
}
