// Package store はセッションスナップショットの永続化を担う。
// SQLite に固定キー1行の JSON として保存し、毎回丸ごと上書きする。
package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rkonno1123-creator/bougu-check-app/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// SessionKey スナップショットの固定キー
const SessionKey = "bougu-check-data"

// Store SQLite ストア
type Store struct {
	db *sql.DB
}

// New データベースを開いてスキーマを初期化する
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("データディレクトリを作成できません: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("データベースを開けません: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("データベースに接続できません: %w", err)
	}

	// SQLite は単一接続で使う
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}

	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.db.Exec(string(schemaSQL))
	return err
}

// Close データベースを閉じる
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot スナップショットを丸ごと上書き保存する
func (s *Store) SaveSnapshot(snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("スナップショットを変換できません: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO session_snapshot (key, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`, SessionKey, string(payload), snap.SavedAt)
	if err != nil {
		return fmt.Errorf("スナップショット保存に失敗: %w", err)
	}
	return nil
}

// LoadSnapshot 保存済みスナップショットを読み込む。
// 保存が無ければ ok=false。壊れた値はエラーを返す（呼び出し側で
// ログして「保存なし」として扱う）。
func (s *Store) LoadSnapshot() (model.Snapshot, bool, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM session_snapshot WHERE key = ?`, SessionKey,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return model.Snapshot{}, false, nil
	}
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("スナップショット読み込みに失敗: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return model.Snapshot{}, false, fmt.Errorf("スナップショットが壊れています: %w", err)
	}
	return snap, true, nil
}

// DeleteSnapshot 保存済みスナップショットを削除する（全リセット時）
func (s *Store) DeleteSnapshot() error {
	_, err := s.db.Exec(`DELETE FROM session_snapshot WHERE key = ?`, SessionKey)
	if err != nil {
		return fmt.Errorf("スナップショット削除に失敗: %w", err)
	}
	return nil
}
