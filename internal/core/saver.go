package core

import (
	"bytes"
	"io"
	"os"
)

// SaveImage は、destPath のファイルを作成（既存なら切り詰め）し、data をすべて書き込みます。
// 一時ファイルを経由しないため、書き込み途中で中断すると不完全なファイルが残ります。
// 親ディレクトリが存在しない、または書き込めない場合は *IOError を返します。
func SaveImage(data []byte, destPath string) (string, error) {
	out, err := os.Create(destPath)
	if err != nil {
		return "", &IOError{Path: destPath, Err: err}
	}

	if _, err := io.Copy(out, bytes.NewReader(data)); err != nil {
		out.Close()
		return "", &IOError{Path: destPath, Err: err}
	}
	if err := out.Close(); err != nil {
		return "", &IOError{Path: destPath, Err: err}
	}
	return destPath, nil
}
