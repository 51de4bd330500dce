package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const compatibleVersion = "1.0"

// LoadAndResolve は、指定されたパスから設定ファイルを読み込み、解析と既定値の適用を行います。
func LoadAndResolve(path string) (*Config, error) {
	absPath, _ := filepath.Abs(path)
	cwd, _ := os.Getwd()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイル '%s' の読み込みに失敗しました (Abs: '%s', Cwd: '%s'): %w", path, absPath, cwd, err)
	}
	return ParseAndResolve(data)
}

// ParseAndResolve は、設定データのバイトスライスを解析し、既定値を補った最終的な設定を返します。
// この関数はテストのために分離されています。
func ParseAndResolve(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError

		if errors.As(err, &syntaxErr) {
			line, col := computeLineAndColumn(data, syntaxErr.Offset)
			return nil, fmt.Errorf("設定ファイルのJSON構文エラー (行 %d, 列 %d): %w", line, col, err)
		}
		if errors.As(err, &typeErr) {
			line, col := computeLineAndColumn(data, typeErr.Offset)
			return nil, fmt.Errorf("設定ファイルの型エラー (行 %d, 列 %d, フィールド '%s'): 期待値 %v, 実際 %v - %w",
				line, col, typeErr.Field, typeErr.Type, typeErr.Value, err)
		}
		return nil, fmt.Errorf("設定ファイルの解析に失敗しました: %w", err)
	}

	if cfg.ConfigVersion != compatibleVersion {
		return nil, fmt.Errorf("サポートされていない設定バージョン '%s' です。'%s' が必要です。", cfg.ConfigVersion, compatibleVersion)
	}
	if cfg.MaxConcurrentDownloads < 0 {
		return nil, fmt.Errorf("max_concurrent_downloads は0以上である必要があります (値: %d)", cfg.MaxConcurrentDownloads)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults は、未設定の項目に既定値を埋めます。
func applyDefaults(cfg *Config) {
	if cfg.Network.UserAgent == "" {
		cfg.Network.UserAgent = DefaultUserAgent
	}
	if cfg.Network.RequestTimeoutMillis <= 0 {
		cfg.Network.RequestTimeoutMillis = DefaultRequestTimeoutMillis
	}
	if cfg.SiteAdapter == "" {
		cfg.SiteAdapter = DefaultSiteAdapter
	}
	if cfg.SaveRootDirectory == "" {
		cfg.SaveRootDirectory = "."
	}
	if cfg.DirectoryFormat == "" {
		cfg.DirectoryFormat = DefaultDirectoryFormat
	}
	if cfg.MaxConcurrentDownloads == 0 {
		cfg.MaxConcurrentDownloads = DefaultMaxConcurrentDownloads
	}
}

// computeLineAndColumn は、バイトオフセットから行番号と列番号（1始まり）を計算します。
func computeLineAndColumn(data []byte, offset int64) (int, int) {
	if offset < 0 || int(offset) > len(data) {
		return 0, 0
	}
	line := 1
	lastLineStart := 0
	for i, b := range data {
		if int64(i) == offset {
			return line, i - lastLineStart + 1
		}
		if b == '\n' {
			line++
			lastLineStart = i + 1
		}
	}
	return line, int(offset) - lastLineStart + 1
}
