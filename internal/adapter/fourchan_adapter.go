package adapter

import (
	"GoChanDownloader/internal/model"
)

// FourChanAdapter は、4chan固有の処理を実装します。
type FourChanAdapter struct{}

// NewFourChanAdapter は、FourChanAdapterの新しいインスタンスを返します。
func NewFourChanAdapter() SiteAdapter {
	return &FourChanAdapter{}
}

func (a *FourChanAdapter) LocateThread(threadURL string) (model.ThreadRef, error) {
	return LocateThread(threadURL)
}

func (a *FourChanAdapter) ExtractLinks(page string) (*LinkSequence, int) {
	return ExtractLinks(page)
}

// MediaURL は、プロトコル相対URLに https: を付けます。
func (a *FourChanAdapter) MediaURL(link model.MediaLink) string {
	return "https:" + link.RawURL
}

func (a *FourChanAdapter) ThreadSubject(page string) string {
	return ThreadSubject(page)
}
