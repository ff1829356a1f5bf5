// Package session はセッション状態（業者・基準データ・入力値）を
// ひとつのオブジェクトとして保持する。グローバル変数は持たず、
// 起動時に1つ生成してハンドラへ渡す。
package session

import (
	"errors"
	"sync"

	"github.com/rkonno1123-creator/bougu-check-app/internal/model"
)

var (
	// ErrVendorNotFound 指定IDの業者が存在しない
	ErrVendorNotFound = errors.New("業者が見つかりません")
	// ErrLastVendor 業者は最低1社必要なので削除できない
	ErrLastVendor = errors.New("業者は最低1社必要です")
)

// Session セッション状態
type Session struct {
	mu        sync.RWMutex
	vendors   []model.Vendor
	reference *model.ReferenceDataset
	inputs    model.Inputs
	savedAt   string
}

// New 初期業者リストでセッションを作成
func New() *Session {
	return &Session{
		vendors: model.DefaultVendors(),
		inputs:  model.Inputs{},
	}
}

// Vendors 業者一覧（登録順のコピー）
func (s *Session) Vendors() []model.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Vendor, len(s.vendors))
	copy(out, s.vendors)
	return out
}

// AddVendor 業者を末尾に追加
func (s *Session) AddVendor(name string) model.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := model.NewVendor(name)
	s.vendors = append(s.vendors, v)
	return v
}

// RenameVendor 業者名を変更
func (s *Session) RenameVendor(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vendors {
		if s.vendors[i].ID == id {
			s.vendors[i].Name = name
			return nil
		}
	}
	return ErrVendorNotFound
}

// RemoveVendor 業者を削除（最後の1社は削除不可）
func (s *Session) RemoveVendor(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.vendors) <= 1 {
		return ErrLastVendor
	}
	for i := range s.vendors {
		if s.vendors[i].ID == id {
			s.vendors = append(s.vendors[:i], s.vendors[i+1:]...)
			return nil
		}
	}
	return ErrVendorNotFound
}

// Reference 現在の基準データ（未インポートなら nil）
func (s *Session) Reference() *model.ReferenceDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reference
}

// SetReference 基準データを差し替え、入力値を全クリアする。
// インポートは全置換のみで、部分的な取り込み状態は作らない。
func (s *Session) SetReference(ds *model.ReferenceDataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reference = ds
	s.inputs = model.Inputs{}
}

// Input 入力値を取得。どの階層にも記録がなければ nil（未入力）
func (s *Session) Input(date, vendorID string, item model.Item) *int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if byVendor, ok := s.inputs[date]; ok {
		if values, ok := byVendor[vendorID]; ok {
			return values[item]
		}
	}
	return nil
}

// SetInput 入力値を1セルだけ更新する。value が nil なら未入力に戻す。
// 日付・業者の中間レコードは初回書き込み時に生成し、他項目は nil で初期化する。
func (s *Session) SetInput(date, vendorID string, item model.Item, value *int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byVendor, ok := s.inputs[date]
	if !ok {
		byVendor = model.DailyInput{}
		s.inputs[date] = byVendor
	}
	values, ok := byVendor[vendorID]
	if !ok {
		values = model.ItemValues{
			model.ItemBogoufuku:  nil,
			model.ItemTebukuro:   nil,
			model.ItemKyuushukan: nil,
		}
		byVendor[vendorID] = values
	}
	values[item] = value
}

// Reset 初期状態に戻す（初期業者・基準データなし・入力なし）
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vendors = model.DefaultVendors()
	s.reference = nil
	s.inputs = model.Inputs{}
	s.savedAt = ""
}

// SavedAt 最後に保存した時刻（表示用文字列）
func (s *Session) SavedAt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savedAt
}

// MarkSaved 保存時刻を記録
func (s *Session) MarkSaved(at string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savedAt = at
}

// Snapshot 保存用に全状態のディープコピーを返す
func (s *Session) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.Snapshot{
		Vendors: make([]model.Vendor, len(s.vendors)),
		Inputs:  model.Inputs{},
		SavedAt: s.savedAt,
	}
	copy(snap.Vendors, s.vendors)

	if s.reference != nil {
		ds := &model.ReferenceDataset{
			Dates:  make([]string, len(s.reference.Dates)),
			Values: make(map[string]map[model.Item]int, len(s.reference.Values)),
		}
		copy(ds.Dates, s.reference.Dates)
		for date, byItem := range s.reference.Values {
			m := make(map[model.Item]int, len(byItem))
			for item, v := range byItem {
				m[item] = v
			}
			ds.Values[date] = m
		}
		snap.ReferenceDataset = ds
	}

	for date, byVendor := range s.inputs {
		daily := model.DailyInput{}
		for vendorID, values := range byVendor {
			iv := model.ItemValues{}
			for item, v := range values {
				if v == nil {
					iv[item] = nil
					continue
				}
				n := *v
				iv[item] = &n
			}
			daily[vendorID] = iv
		}
		snap.Inputs[date] = daily
	}

	return snap
}

// Restore 保存済みスナップショットから全状態を復元する
func (s *Session) Restore(snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(snap.Vendors) > 0 {
		s.vendors = snap.Vendors
	} else {
		s.vendors = model.DefaultVendors()
	}
	s.reference = snap.ReferenceDataset
	if snap.Inputs != nil {
		s.inputs = snap.Inputs
	} else {
		s.inputs = model.Inputs{}
	}
	s.savedAt = snap.SavedAt
}
