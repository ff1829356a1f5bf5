package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rkonno1123-creator/bougu-check-app/internal/config"
	"github.com/rkonno1123-creator/bougu-check-app/internal/server"
	"github.com/rkonno1123-creator/bougu-check-app/internal/util"
)

var (
	port    = flag.Int("port", 0, "サーバーのポート (config.toml 優先。port が明示設定されていない場合のみ有効)")
	devMode = flag.Bool("dev", false, "開発モード")
	dataDir = flag.String("dataDir", "", "データ保存ディレクトリ (設定ファイルを上書き)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  防護具照合チェック")
	fmt.Println("==========================================")

	// 設定を読み込む
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("設定の読み込みに失敗したため既定値を使用します: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// コマンドライン引数で設定を上書き
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	// データディレクトリを用意
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("データディレクトリの作成に失敗: %v", err)
	} else {
		fmt.Printf("データディレクトリ: %s\n", dataDir)
	}

	// サーバーを作成
	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	// サーバーを起動
	go func() {
		fmt.Printf("サーバー起動中（ポート %d）...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("サーバーの起動に失敗: %v", err)
		}
	}()

	// ブラウザを開く
	if !cfg.Server.DevMode {
		fmt.Printf("ブラウザを開いています: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("ブラウザを自動で開けませんでした。手動でアクセスしてください: %s\n", url)
		}
	} else {
		fmt.Printf("開発モード: %s にアクセスしてください\n", url)
	}

	fmt.Println("\n終了するには Ctrl+C を押してください...")

	// シグナル待ち
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nサーバーを終了しています...")
	if err := srv.SaveNow(); err != nil {
		log.Printf("終了前の保存に失敗: %v", err)
	}
	if err := srv.Close(); err != nil {
		log.Printf("終了処理でエラー: %v", err)
	}
}
