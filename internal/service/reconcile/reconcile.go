// Package reconcile は業者入力の合計と Excel 基準値の照合を行う。
// 読み取り専用の純関数のみで、状態は持たない。
package reconcile

import (
	"github.com/rkonno1123-creator/bougu-check-app/internal/model"
)

// Status 日付×項目セルの照合結果
type Status string

const (
	// StatusUnchecked どの業者も未入力
	StatusUnchecked Status = "unchecked"
	// StatusOK 入力合計が基準値と一致
	StatusOK Status = "ok"
	// StatusWarning 入力合計が基準値と不一致
	StatusWarning Status = "warning"
)

// Share 業者ごとの内訳（ラベルは業者名の頭文字）
type Share struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Stats 全期間の照合集計
type Stats struct {
	Dates     int `json:"dates"`
	Total     int `json:"total"`
	OK        int `json:"ok"`
	Warning   int `json:"warning"`
	Unchecked int `json:"unchecked"`
}

// Total 全業者の入力合計（未入力は0として扱う）
func Total(inputs model.Inputs, vendors []model.Vendor, date string, item model.Item) int {
	total := 0
	for _, v := range vendors {
		if val := lookup(inputs, date, v.ID, item); val != nil {
			total += *val
		}
	}
	return total
}

// HasAnyInput 1業者でも入力済み（0含む）のセルか
func HasAnyInput(inputs model.Inputs, vendors []model.Vendor, date string, item model.Item) bool {
	for _, v := range vendors {
		if lookup(inputs, date, v.ID, item) != nil {
			return true
		}
	}
	return false
}

// StatusOf セルの照合結果を判定する。
// 未入力なら unchecked、入力合計が基準値（未登録は0）と一致すれば ok、
// それ以外は warning。
func StatusOf(ref *model.ReferenceDataset, inputs model.Inputs, vendors []model.Vendor, date string, item model.Item) Status {
	if !HasAnyInput(inputs, vendors, date, item) {
		return StatusUnchecked
	}
	if Total(inputs, vendors, date, item) == ref.Value(date, item) {
		return StatusOK
	}
	return StatusWarning
}

// Breakdown 業者ごとの内訳を登録順で返す（未入力は0）。
// ラベルは業者名の1文字目のみ。頭文字が同じ業者は区別されない（既知の仕様）。
func Breakdown(inputs model.Inputs, vendors []model.Vendor, date string, item model.Item) []Share {
	shares := make([]Share, 0, len(vendors))
	for _, v := range vendors {
		value := 0
		if val := lookup(inputs, date, v.ID, item); val != nil {
			value = *val
		}
		shares = append(shares, Share{Label: shortLabel(v.Name), Value: value})
	}
	return shares
}

// Summarize 基準データ全期間の日付×項目セルをステータス別に集計する
func Summarize(ref *model.ReferenceDataset, inputs model.Inputs, vendors []model.Vendor) Stats {
	stats := Stats{}
	if ref == nil {
		return stats
	}
	stats.Dates = len(ref.Dates)
	stats.Total = len(ref.Dates) * len(model.Items())
	for _, date := range ref.Dates {
		for _, item := range model.Items() {
			switch StatusOf(ref, inputs, vendors, date, item) {
			case StatusOK:
				stats.OK++
			case StatusWarning:
				stats.Warning++
			default:
				stats.Unchecked++
			}
		}
	}
	return stats
}

// CellReport 1セル分の照合結果
type CellReport struct {
	Item      model.Item `json:"item"`
	Total     int        `json:"total"`
	HasInput  bool       `json:"hasInput"`
	Reference int        `json:"reference"`
	Status    Status     `json:"status"`
	Breakdown []Share    `json:"breakdown"`
}

// DateReport 1日分の照合結果（項目は表示順）
type DateReport struct {
	Date  string       `json:"date"`
	Cells []CellReport `json:"cells"`
}

// Report 基準データの全日付について照合結果を組み立てる。
// 集計ページと印刷・Excel出力の共通ビュー。
func Report(ref *model.ReferenceDataset, inputs model.Inputs, vendors []model.Vendor) []DateReport {
	if ref == nil {
		return nil
	}
	reports := make([]DateReport, 0, len(ref.Dates))
	for _, date := range ref.Dates {
		cells := make([]CellReport, 0, len(model.Items()))
		for _, item := range model.Items() {
			cells = append(cells, CellReport{
				Item:      item,
				Total:     Total(inputs, vendors, date, item),
				HasInput:  HasAnyInput(inputs, vendors, date, item),
				Reference: ref.Value(date, item),
				Status:    StatusOf(ref, inputs, vendors, date, item),
				Breakdown: Breakdown(inputs, vendors, date, item),
			})
		}
		reports = append(reports, DateReport{Date: date, Cells: cells})
	}
	return reports
}

func lookup(inputs model.Inputs, date, vendorID string, item model.Item) *int {
	if byVendor, ok := inputs[date]; ok {
		if values, ok := byVendor[vendorID]; ok {
			return values[item]
		}
	}
	return nil
}

func shortLabel(name string) string {
	for _, r := range name {
		return string(r)
	}
	return ""
}
