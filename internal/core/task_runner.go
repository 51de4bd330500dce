package core

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"GoChanDownloader/internal/adapter"
	"GoChanDownloader/internal/config"
	"GoChanDownloader/internal/model"
	"GoChanDownloader/internal/network"
)

// ExecuteThreads は、与えられたスレッドを順に処理し、失敗したスレッド数を返します。
// クライアントとサイトアダプタは全スレッドで共有します。
func ExecuteThreads(ctx context.Context, cfg *config.Config, threadURLs []string, opts ...network.Option) int {
	client, err := network.NewClient(cfg.Network, opts...)
	if err != nil {
		log.Printf("FATAL: ネットワーククライアントの初期化に失敗しました: %v", err)
		return len(threadURLs)
	}

	siteAdapter, err := adapter.GetAdapter(cfg.SiteAdapter)
	if err != nil {
		log.Printf("FATAL: サイトアダプタの取得に失敗しました: %v", err)
		return len(threadURLs)
	}

	failed := 0
	for _, threadURL := range threadURLs {
		select {
		case <-ctx.Done():
			log.Println("シャットダウンシグナルにより、残りのスレッドの処理を中止します。")
			return failed
		default:
		}

		if _, err := ExecuteThread(ctx, cfg, client, siteAdapter, threadURL); err != nil {
			log.Printf("ERROR: スレッドの処理に失敗しました (%s): %v", ErrorKind(err), err)
			failed++
		}
	}
	return failed
}

// ExecuteThread は、スレッドの保存先ディレクトリを作成し、パイプラインを実行して結果を集計します。
// 返されるエラーはスレッド全体の失敗のみで、個々のリンクの失敗は RunStats に含まれます。
func ExecuteThread(ctx context.Context, cfg *config.Config, fetcher Fetcher, siteAdapter adapter.SiteAdapter, threadURL string) (RunStats, error) {
	start := time.Now()

	ref, err := siteAdapter.LocateThread(threadURL)
	if err != nil {
		return RunStats{StartTime: start}, err
	}

	logger := log.New(log.Writer(), fmt.Sprintf("[%s/%s] ", ref.Board, ref.ThreadID), log.LstdFlags)

	outputDir := generateDirectoryPath(cfg.SaveRootDirectory, cfg.DirectoryFormat, ref)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return RunStats{StartTime: start}, &IOError{Path: outputDir, Err: err}
	}

	pipeline := NewPipeline(fetcher, siteAdapter, cfg.MaxConcurrentDownloads, logger)
	outcomes, err := pipeline.Run(ctx, threadURL, outputDir)
	if err != nil {
		return RunStats{StartTime: start}, err
	}

	stats := NewRunStats(start, outcomes)
	logger.Printf("完了: %s", stats.FormatSummary())
	for _, o := range outcomes {
		if o.Failed() {
			logger.Printf("  失敗 [%s]: %s", ErrorKind(o.Err), o.URL)
		}
	}
	return stats, nil
}

// generateDirectoryPath は、フォーマット中の {board} と {thread_id} を置換して保存先を返します。
func generateDirectoryPath(rootDir, format string, ref model.ThreadRef) string {
	if format == "" {
		format = config.DefaultDirectoryFormat
	}

	r := strings.NewReplacer(
		"{board}", SanitizeFilename(ref.Board),
		"{thread_id}", SanitizeFilename(ref.ThreadID),
	)

	result := r.Replace(format)
	if result == "" {
		result = ref.ThreadID
	}
	return filepath.Join(rootDir, result)
}

// SanitizeFilename は、ファイル名に使えない文字を全角文字に置き換えます。
func SanitizeFilename(name string) string {
	r := strings.NewReplacer(
		"/", "／",
		"\\", "＼",
		":", "：",
		"*", "＊",
		"?", "？",
		"\"", "”",
		"<", "＜",
		">", "＞",
		"|", "｜",
	)
	return r.Replace(name)
}
