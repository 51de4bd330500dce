// Package adapter は、サイト固有の処理を抽象化するインターフェースと、
// その具体的な実装を提供します。スレッドURLの解釈とメディアリンクの抽出は
// サイトごとにここで実装します。
package adapter

import (
	"bytes"

	"GoChanDownloader/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// SiteAdapter は、サイト固有の処理を抽象化するインターフェースです。
type SiteAdapter interface {
	// LocateThread は、スレッドURLから板名とスレッドIDを取り出します。
	LocateThread(threadURL string) (model.ThreadRef, error)
	// ExtractLinks は、スレッドHTMLからメディアリンクの列と重複を除いた件数を返します。
	ExtractLinks(page string) (*LinkSequence, int)
	// MediaURL は、抽出したリンクから取得に使う絶対URLを組み立てます。
	MediaURL(link model.MediaLink) string
	// ThreadSubject は、ログ表示用のスレッド題名を返します。見つからなければ空文字です。
	ThreadSubject(page string) string
}

// NewDocumentFromBytes は、[]byteからgoquery.Documentを生成するヘルパー関数です。
func NewDocumentFromBytes(htmlBody []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
}
