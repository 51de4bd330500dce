package core

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"GoChanDownloader/internal/config"
	"GoChanDownloader/internal/network"
)

// rewriteTransport は、すべてのリクエストをテストサーバーに転送します。
// ホスト名は4chanのままなので、抽出パターンとURL組み立てを実際の形で検証できます。
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	r.Host = ""
	return http.DefaultTransport.RoundTrip(r)
}

// threadPage は、各ファイル名をサムネイルとフルサイズの2回ずつ含むスレッドHTMLを返します。
func threadPage(board string, filenames ...string) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>test thread</title></head><body>`)
	for _, name := range filenames {
		fmt.Fprintf(&b, `<div class="fileText"><a href="//i.4cdn.org/%s/%s" target="_blank">%s</a></div>`, board, name, name)
		fmt.Fprintf(&b, `<a class="fileThumb" href="//i.4cdn.org/%s/%s" target="_blank"><img src="x"></a>`, board, name)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

// newFakeBoard は、スレッドHTMLとメディアを返すテストサーバーを起動します。
// media にないパスは404を返します。
func newFakeBoard(t *testing.T, threadPath, page string, media map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == threadPath {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			io.WriteString(w, page)
			return
		}
		body, ok := media[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newRewritingClient(t *testing.T, server *httptest.Server) *network.Client {
	t.Helper()
	target, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("テストサーバーURLの解析に失敗しました: %v", err)
	}
	client, err := network.NewClient(config.NetworkSettings{}, network.WithTransport(rewriteTransport{target: target}))
	if err != nil {
		t.Fatalf("NewClientの作成に失敗しました: %v", err)
	}
	return client
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("URLの解析に失敗しました: %v", err)
	}
	return u
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
