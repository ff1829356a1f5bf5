package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rkonno1123-creator/bougu-check-app/internal/model"
	"github.com/rkonno1123-creator/bougu-check-app/internal/service/reconcile"
)

const summarySheet = "照合結果"

// SummaryWorkbook 照合結果をExcelブックにまとめる。
// 呼び出し側が WriteToBuffer / SaveAs し、Close する。
func SummaryWorkbook(ref *model.ReferenceDataset, inputs model.Inputs, vendors []model.Vendor) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, err
	}

	stats := reconcile.Summarize(ref, inputs, vendors)
	rows := reconcile.Report(ref, inputs, vendors)
	items := model.Items()

	set := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(summarySheet, cell, value)
	}

	// 統計サマリー
	if err := set(1, 1, "防護具照合結果"); err != nil {
		f.Close()
		return nil, err
	}
	statLine := fmt.Sprintf("日数: %d / OK: %d / 要確認: %d / 未入力: %d",
		stats.Dates, stats.OK, stats.Warning, stats.Unchecked)
	if err := set(1, 2, statLine); err != nil {
		f.Close()
		return nil, err
	}

	// ヘッダー（日付 + 項目ごとに 入力/Excel/結果 の3列）
	const headerRow = 4
	_ = set(1, headerRow, "日付")
	for i, item := range items {
		base := 2 + i*3
		_ = set(base, headerRow, item.Label()+" 入力")
		_ = set(base+1, headerRow, item.Label()+" Excel")
		_ = set(base+2, headerRow, item.Label()+" 結果")
	}

	// データ行
	for r, report := range rows {
		rowNum := headerRow + 1 + r
		_ = set(1, rowNum, DisplayDate(report.Date))
		for i, cell := range report.Cells {
			base := 2 + i*3
			if cell.HasInput {
				_ = set(base, rowNum, cell.Total)
			} else {
				_ = set(base, rowNum, "-")
			}
			_ = set(base+1, rowNum, cell.Reference)
			glyphText := statusGlyph(cell.Status)
			if cell.Status == reconcile.StatusWarning {
				glyphText = glyphText + " " + breakdownText(cell)
			}
			_ = set(base+2, rowNum, glyphText)
		}
	}

	return f, nil
}
