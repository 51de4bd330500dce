package adapter

import (
	"errors"
	"fmt"
	"strings"

	"GoChanDownloader/internal/model"
)

// ErrMalformedURL は、スレッドURLが想定した構造を持たないことを表します。
var ErrMalformedURL = errors.New("スレッドURLの形式が不正です")

// MalformedURLError は、解釈できなかったスレッドURLを保持します。
type MalformedURLError struct {
	URL    string
	Reason string
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("%v: %s (URL: %s)", ErrMalformedURL, e.Reason, e.URL)
}

func (e *MalformedURLError) Is(target error) bool {
	return target == ErrMalformedURL
}

// LocateThread は、scheme://host/board/thread/id[#anchor] 形式のURLを '/' で分割し、
// 4番目の要素を板名、6番目の要素の '#' より前をスレッドIDとして返します。
// ネットワークには一切アクセスしません。
func LocateThread(threadURL string) (model.ThreadRef, error) {
	segments := strings.Split(threadURL, "/")
	if len(segments) < 6 {
		return model.ThreadRef{}, &MalformedURLError{
			URL:    threadURL,
			Reason: fmt.Sprintf("パス要素が不足しています (必要: 6, 実際: %d)", len(segments)),
		}
	}

	board := segments[3]
	threadID, _, _ := strings.Cut(segments[5], "#")
	if board == "" || threadID == "" {
		return model.ThreadRef{}, &MalformedURLError{URL: threadURL, Reason: "板名またはスレッドIDが空です"}
	}

	return model.ThreadRef{Board: board, ThreadID: threadID}, nil
}
