package adapter

import (
	"strings"
)

// ThreadSubject は、スレッドHTMLからOPの題名を取り出します。
// 題名がなければ <title> を使い、どちらもなければ空文字を返します。
// ログ表示専用で、リンク抽出には使用しません。
func ThreadSubject(page string) string {
	doc, err := NewDocumentFromBytes([]byte(page))
	if err != nil {
		return ""
	}

	subject := strings.TrimSpace(doc.Find(".opContainer .postInfo .subject").First().Text())
	if subject != "" {
		return subject
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
