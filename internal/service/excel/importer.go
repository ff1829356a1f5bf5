// Package excel は Excel 集計表から基準データを読み込む。
package excel

import (
	"fmt"
	"io"
	"log"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rkonno1123-creator/bougu-check-app/internal/model"
)

// Layout 集計表のレイアウト設定
type Layout struct {
	HeaderRows int // 先頭のヘッダー行数（この行数分を読み飛ばす）
	DateCol    int // 日付の列番号（0始まり）
	UsageCol   int // 使用数の列番号（0始まり）
}

// DefaultLayout 現場の集計表の標準レイアウト
func DefaultLayout() Layout {
	return Layout{HeaderRows: 6, DateCol: 0, UsageCol: 3}
}

// Result インポート結果
type Result struct {
	Dataset *model.ReferenceDataset
	// MissingSheets 見つからなかったシート名（警告扱い、インポート自体は成功）
	MissingSheets []string
}

// Importer 集計表インポーター
type Importer struct {
	layout Layout
}

// NewImporter インポーターを作成
func NewImporter(layout Layout) *Importer {
	return &Importer{layout: layout}
}

// 文字列日付 "2025/10/06" "2025-10-6" など（月日は1〜2桁）
var textDateRe = regexp.MustCompile(`(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})`)

// Parse 集計表を読み込んで基準データを作る。
// 項目ごとに固定名のシートを読み、日付か使用数が解釈できない行は黙って読み飛ばす。
// シートが丸ごと無い場合も警告のみで続行する。失敗になるのはファイル自体が
// 開けないときだけ。
func (im *Importer) Parse(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("Excelファイルを開けません: %w", err)
	}
	defer f.Close()

	dataset := &model.ReferenceDataset{
		Values: map[string]map[model.Item]int{},
	}
	var missing []string

	for _, item := range model.Items() {
		sheet := item.SheetName()
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			log.Printf("シート %q が見つかりません（%s はスキップ）", sheet, item.Label())
			missing = append(missing, sheet)
			continue
		}

		// RawCellValue で日付セルはシリアル値のまま受け取る
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			log.Printf("シート %q を読み込めません: %v", sheet, err)
			missing = append(missing, sheet)
			continue
		}

		for i := im.layout.HeaderRows; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 {
				continue
			}

			date, ok := parseDateCell(cellAt(row, im.layout.DateCol))
			if !ok {
				continue
			}
			// 使用数の欄が数値でない行（搬入のみの日など）は読み飛ばす
			usage, ok := parseUsageCell(cellAt(row, im.layout.UsageCol))
			if !ok {
				continue
			}

			if _, seen := dataset.Values[date]; !seen {
				dataset.Dates = append(dataset.Dates, date)
				dataset.Values[date] = map[model.Item]int{}
			}
			dataset.Values[date][item] = usage
		}
	}

	sort.Strings(dataset.Dates)

	return &Result{Dataset: dataset, MissingSheets: missing}, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDateCell 日付セルを ISO 形式 YYYY-MM-DD に正規化する。
// 文字列日付（YYYY/MM/DD, YYYY-MM-DD）と Excel シリアル値の両方を受け付ける。
func parseDateCell(cell string) (string, bool) {
	if cell == "" {
		return "", false
	}

	if m := textDateRe.FindStringSubmatch(cell); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}

	// Excel のシリアル値（日付書式のセルは RawCellValue だと数値で来る）
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// parseUsageCell 使用数セル。有限の数値のみ有効。
func parseUsageCell(cell string) (int, bool) {
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(v), true
}
