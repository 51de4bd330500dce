package adapter

import (
	"iter"
	"regexp"
	"sync"

	"GoChanDownloader/internal/model"
)

// mediaLinkPattern は、4chanのメディアURL (//i[s][数字].4cdn.org/板/数字.拡張子) を検出します。
// 1番目のグループがプロトコル相対URL全体、2番目がファイル名です。
var mediaLinkPattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`(//i(?:s)?\d*\.(?:4cdn|4chan)\.org/\w+/(\d+\.(?:jpg|png|gif|webm)))`)
})

// LinkSequence は、スレッドHTML内のメディアリンクの一致を順に返す列です。
// スレッドHTMLは同じURLをサムネイルとフルサイズの2つのアンカーに持つため、
// All はすべての一致を重複込みで返し、Unique は2件ごとに1件を返します。
// 列はリソースを保持せず、何度でも最初から走査できます。
type LinkSequence struct {
	text string
}

// ExtractLinks は、ページ本文からメディアリンクの列と、生の一致数を2で割ったリンク数を返します。
// 一致がなくてもエラーではなく、空の列と0を返します。
func ExtractLinks(page string) (*LinkSequence, int) {
	seq := &LinkSequence{text: page}
	return seq, seq.RawCount() / 2
}

// All は、すべての一致を出現順に遅延評価で返します。
func (s *LinkSequence) All() iter.Seq[model.MediaLink] {
	return func(yield func(model.MediaLink) bool) {
		re := mediaLinkPattern()
		rest := s.text
		for {
			loc := re.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			link := model.MediaLink{
				RawURL:   rest[loc[2]:loc[3]],
				Filename: rest[loc[4]:loc[5]],
			}
			if !yield(link) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

// Unique は、一致を2件ごとに (0, 2, 4, ...) 返します。
func (s *LinkSequence) Unique() iter.Seq[model.MediaLink] {
	return func(yield func(model.MediaLink) bool) {
		i := 0
		for link := range s.All() {
			if i%2 == 0 && !yield(link) {
				return
			}
			i++
		}
	}
}

// RawCount は、重複を含む一致の総数を数えます。
func (s *LinkSequence) RawCount() int {
	return len(mediaLinkPattern().FindAllStringIndex(s.text, -1))
}
