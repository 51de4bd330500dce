package core

import (
	"errors"
	"fmt"

	"GoChanDownloader/internal/adapter"
	"GoChanDownloader/internal/network"
)

// IOError は、ローカルファイルへの書き込み失敗を表します。
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("ファイルの書き込みに失敗しました (path=%s): %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ErrorKind は、ログと集計のためにエラーの種類名を返します。
func ErrorKind(err error) string {
	var (
		malformed *adapter.MalformedURLError
		httpErr   *network.HTTPError
		transport *network.TransportError
		ioErr     *IOError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &malformed):
		return "MalformedUrl"
	case errors.As(err, &httpErr):
		return "HttpStatusError"
	case errors.As(err, &transport):
		return "TransportError"
	case errors.As(err, &ioErr):
		return "IoError"
	default:
		return "Unknown"
	}
}
