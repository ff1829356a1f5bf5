package server

import (
	"embed"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rkonno1123-creator/bougu-check-app/internal/api"
	"github.com/rkonno1123-creator/bougu-check-app/internal/config"
	"github.com/rkonno1123-creator/bougu-check-app/internal/service/excel"
	"github.com/rkonno1123-creator/bougu-check-app/internal/session"
	"github.com/rkonno1123-creator/bougu-check-app/internal/store"
)

//go:embed static
var staticFiles embed.FS

// Server HTTPサーバー
type Server struct {
	router  *gin.Engine
	session *session.Session
	store   *store.Store
	api     *api.Handler
}

// NewServer サーバーを作成。保存済みセッションがあれば復元する。
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "bougucheck.db")

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("データベースの初期化に失敗: %v", err)
	}

	sess := session.New()
	restoreSession(sess, st)

	layout := excel.Layout{
		HeaderRows: cfg.Import.HeaderRows,
		DateCol:    cfg.Import.DateColumn,
		UsageCol:   cfg.Import.UsageColumn,
	}
	apiHandler := api.NewHandler(sess, st, layout)

	s := &Server{
		router:  gin.Default(),
		session: sess,
		store:   st,
		api:     apiHandler,
	}

	s.setupRoutes(devMode)

	return s
}

// restoreSession 保存済みスナップショットを読み込む。
// 壊れた保存データはログして「保存なし」として扱う。
func restoreSession(sess *session.Session, st *store.Store) {
	snap, ok, err := st.LoadSnapshot()
	if err != nil {
		log.Printf("保存データの復元に失敗（初期状態で開始）: %v", err)
		return
	}
	if !ok {
		return
	}
	sess.Restore(snap)
	log.Printf("保存データを復元しました: %s", snap.SavedAt)
}

// setupRoutes ルートを設定
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API ルート
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	if devMode {
		// 開発モード: フロント開発サーバーへリダイレクト
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	// 本番モード: embed した静的ページを配信
	index := func(c *gin.Context) {
		data, err := staticFiles.ReadFile("static/index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(index)
}

// Run サーバーを起動
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// SaveNow 終了前にセッションを即時保存する
func (s *Server) SaveNow() error {
	snap := s.session.Snapshot()
	snap.SavedAt = time.Now().Format("2006/01/02 15:04:05")
	return s.store.SaveSnapshot(snap)
}

// Close リソースを解放
func (s *Server) Close() error {
	return s.store.Close()
}

// GetSession セッションを取得（テスト用）
func (s *Server) GetSession() *session.Session {
	return s.session
}
