package model

import "github.com/google/uuid"

// Vendor 防護具の使用数を報告する業者
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewVendor 業者を作成（IDは自動採番）
func NewVendor(name string) Vendor {
	return Vendor{
		ID:   uuid.New().String(),
		Name: name,
	}
}

// DefaultVendors 初期業者リスト
func DefaultVendors() []Vendor {
	return []Vendor{
		NewVendor("さくら塗装"),
		NewVendor("竹内塗装"),
		NewVendor("リバーランズ"),
	}
}

// Item 照合対象の消耗品（3種固定、追加不可）
type Item string

const (
	ItemBogoufuku  Item = "bogoufuku"  // 防護服
	ItemTebukuro   Item = "tebukuro"   // 手袋
	ItemKyuushukan Item = "kyuushukan" // 吸収缶
)

// Items 表示順の項目一覧
func Items() []Item {
	return []Item{ItemBogoufuku, ItemTebukuro, ItemKyuushukan}
}

// Valid 既知の項目キーかどうか
func (i Item) Valid() bool {
	switch i {
	case ItemBogoufuku, ItemTebukuro, ItemKyuushukan:
		return true
	}
	return false
}

// Label 画面表示用の項目名
func (i Item) Label() string {
	switch i {
	case ItemBogoufuku:
		return "防護服"
	case ItemTebukuro:
		return "手袋"
	case ItemKyuushukan:
		return "吸収缶"
	}
	return string(i)
}

// SheetName Excel集計表のシート名
// 吸収缶のシート名は「フィルター」（現場の集計表に合わせる）
func (i Item) SheetName() string {
	switch i {
	case ItemBogoufuku:
		return "防護服"
	case ItemTebukuro:
		return "防護手袋"
	case ItemKyuushukan:
		return "フィルター"
	}
	return string(i)
}

// ReferenceDataset Excelから読み込んだ基準データ
// Dates は昇順・重複なし。インポート後は変更しない。
type ReferenceDataset struct {
	Dates  []string                `json:"dates"`
	Values map[string]map[Item]int `json:"values"`
}

// Value 指定日・項目の基準値（未登録は0）
func (d *ReferenceDataset) Value(date string, item Item) int {
	if d == nil {
		return 0
	}
	if byItem, ok := d.Values[date]; ok {
		return byItem[item]
	}
	return 0
}

// ItemValues 1業者・1日分の入力値
// nil は「未入力」を表し、0（入力済みのゼロ）と区別する
type ItemValues map[Item]*int

// DailyInput 業者ID → その日の入力値
type DailyInput map[string]ItemValues

// Inputs 日付 → 業者ID → 項目 → 入力値
type Inputs map[string]DailyInput

// Snapshot セッション全体の保存形式
// 丸ごと保存・丸ごと復元する（部分更新はしない）
type Snapshot struct {
	Vendors          []Vendor          `json:"vendors"`
	ReferenceDataset *ReferenceDataset `json:"referenceDataset"`
	Inputs           Inputs            `json:"inputs"`
	SavedAt          string            `json:"savedAt"`
}
