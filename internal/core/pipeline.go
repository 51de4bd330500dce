// Package core は、スレッドからのメディア取得処理の中核となるロジックを実装します。
package core

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"slices"

	"GoChanDownloader/internal/adapter"
	"GoChanDownloader/internal/model"

	"golang.org/x/sync/errgroup"
)

// Fetcher は、スレッドHTMLとメディアのバイト列を取得します。
// *network.Client がこれを満たします。
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Pipeline は、スレッドURLからメディアを抽出し、出力ディレクトリに保存します。
type Pipeline struct {
	fetcher       Fetcher
	site          adapter.SiteAdapter
	maxConcurrent int
	logger        *log.Logger
}

// NewPipeline は Pipeline を生成します。maxConcurrent が1未満なら逐次実行します。
func NewPipeline(fetcher Fetcher, site adapter.SiteAdapter, maxConcurrent int, logger *log.Logger) *Pipeline {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Pipeline{
		fetcher:       fetcher,
		site:          site,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

// Run は、スレッドを読み込み、重複を除いた各メディアリンクを outputDir/ファイル名 に保存します。
// URLの解釈とスレッドHTMLの取得に失敗した場合は実行全体を中止してエラーを返します。
// 個々のリンクの失敗はそのリンクの DownloadOutcome に記録され、残りの処理は継続します。
// 戻り値の順序はリンクの抽出順です。
func (p *Pipeline) Run(ctx context.Context, threadURL string, outputDir string) ([]model.DownloadOutcome, error) {
	ref, err := p.site.LocateThread(threadURL)
	if err != nil {
		return nil, err
	}

	p.logger.Printf("INFO: スレッドを読み込みます: /%s/%s (%s)", ref.Board, ref.ThreadID, threadURL)
	page, err := p.fetcher.FetchText(ctx, threadURL)
	if err != nil {
		return nil, fmt.Errorf("スレッドHTMLの取得に失敗しました (thread_id=%s, url=%s): %w", ref.ThreadID, threadURL, err)
	}
	if subject := p.site.ThreadSubject(page); subject != "" {
		p.logger.Printf("INFO: スレッド題名: %s", subject)
	}

	seq, count := p.site.ExtractLinks(page)
	p.logger.Printf("INFO: %d 件のメディアリンクを検出しました (thread_id=%s)", count, ref.ThreadID)

	links := slices.Collect(seq.Unique())
	outcomes := make([]model.DownloadOutcome, len(links))

	var g errgroup.Group
	g.SetLimit(p.maxConcurrent)
	for i, link := range links {
		g.Go(func() error {
			outcomes[i] = p.download(ctx, link, outputDir, i+1, len(links))
			return nil
		})
	}
	// 各goroutineは常に nil を返す
	_ = g.Wait()

	return outcomes, nil
}

// download は、1リンク分の取得と保存を行い、結果を返します。
func (p *Pipeline) download(ctx context.Context, link model.MediaLink, outputDir string, n, total int) model.DownloadOutcome {
	mediaURL := p.site.MediaURL(link)
	destPath := filepath.Join(outputDir, link.Filename)
	outcome := model.DownloadOutcome{URL: mediaURL, DestinationPath: destPath}

	p.logger.Printf("Downloading (%d/%d): %s -> %s", n, total, mediaURL, link.Filename)
	data, err := p.fetcher.FetchBytes(ctx, mediaURL)
	if err != nil {
		p.logger.Printf("WARNING: ファイルの取得に失敗しました: %s - %v. スキップします。", mediaURL, err)
		outcome.Err = err
		return outcome
	}

	if _, err := SaveImage(data, destPath); err != nil {
		p.logger.Printf("WARNING: ファイルの保存に失敗しました: %s - %v. スキップします。", destPath, err)
		outcome.Err = err
		return outcome
	}

	outcome.Bytes = int64(len(data))
	p.logger.Printf("SUCCESS: ダウンロード完了: %s", link.Filename)
	return outcome
}
