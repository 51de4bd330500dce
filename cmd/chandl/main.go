package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GoChanDownloader/internal/config"
	"GoChanDownloader/internal/core"
)

// ログファイル管理用
var logFile *os.File

func main() {
	configFile := flag.String("config", "", "設定ファイルのパス (省略時は既定値を使用)")
	outDir := flag.String("out", "", "保存先のルートディレクトリ (設定ファイルの値を上書き)")
	workers := flag.Int("workers", 0, "1スレッドあたりの同時ダウンロード数 (設定ファイルの値を上書き)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "使い方: %s [オプション] <スレッドURL>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetOutput(os.Stdout)

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.LoadAndResolve(*configFile)
		if err != nil {
			log.Fatalf("設定ファイルの読み込みに失敗しました: %v", err)
		}
		cfg = loaded
	}
	if *outDir != "" {
		cfg.SaveRootDirectory = *outDir
	}
	if *workers > 0 {
		cfg.MaxConcurrentDownloads = *workers
	}
	setupLogger(cfg)
	defer closeLogFile()

	threads := flag.Args()
	if len(threads) == 0 {
		threads = cfg.Threads
	}
	if len(threads) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("スレッド数: %d, 同時ダウンロード数: %d, 保存先: %s", len(threads), cfg.MaxConcurrentDownloads, cfg.SaveRootDirectory)
	failed := core.ExecuteThreads(ctx, cfg, threads)
	if failed > 0 {
		log.Printf("%d 件のスレッドの処理に失敗しました。", failed)
		closeLogFile()
		os.Exit(1)
	}
	log.Println("全てのスレッドの処理が完了しました。")
}

// setupLogger はログ出力先を設定します。
// EnableLogFile が true の場合、標準出力とファイルの両方に出力します。
func setupLogger(cfg *config.Config) {
	if !cfg.EnableLogFile {
		return
	}

	path := cfg.LogFilePath
	if path == "" {
		today := time.Now().Format("2006-01-02")
		path = fmt.Sprintf("chandl_%s.log", today)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("WARNING: ログファイルを開けませんでした: %v", err)
		return
	}
	logFile = f
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	log.Printf("ログ出力をファイル '%s' に開始しました", path)
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
