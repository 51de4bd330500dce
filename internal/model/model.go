package model

// ThreadRef は、スレッドURLから取り出した板名とスレッドIDを保持します。
// 保存先ディレクトリ名の生成にのみ使用します。
type ThreadRef struct {
	Board    string
	ThreadID string
}

// MediaLink は、スレッドHTML内の単一メディアへのリンクを表します。
type MediaLink struct {
	RawURL   string // プロトコル相対URL (//i.4cdn.org/wg/123.jpg)
	Filename string // 拡張子付きのファイル名 (123.jpg)
}

// DownloadOutcome は、1リンク分のダウンロード結果です。
// Err が nil でなければ失敗を表します。
type DownloadOutcome struct {
	URL             string
	DestinationPath string
	Bytes           int64
	Err             error
}

// Failed は、このリンクの取得または保存が失敗したかどうかを返します。
func (o DownloadOutcome) Failed() bool {
	return o.Err != nil
}
