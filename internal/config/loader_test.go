package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAndResolve_FullConfig(t *testing.T) {
	// 1. Arrange (準備)
	testConfigPath := filepath.Join("testdata", "test_config.json")
	data, err := os.ReadFile(testConfigPath)
	if err != nil {
		t.Fatalf("テスト設定ファイル '%s' の読み込みに失敗しました: %v", testConfigPath, err)
	}

	// 2. Act (実行)
	cfg, err := ParseAndResolve(data)
	if err != nil {
		t.Fatalf("ParseAndResolveで予期せぬエラーが発生しました: %v", err)
	}

	// 3. Assert (検証)
	if cfg.Network.UserAgent != "TestAgent/2.0" {
		t.Errorf("UserAgentが期待値と異なります。期待値: TestAgent/2.0, 実際値: %s", cfg.Network.UserAgent)
	}
	if got := cfg.Network.PerDomainIntervalMillis["i.4cdn.org"]; got != 250 {
		t.Errorf("i.4cdn.org の間隔が期待値と異なります。期待値: 250, 実際値: %d", got)
	}
	if cfg.Network.RequestTimeoutMillis != 5000 {
		t.Errorf("RequestTimeoutMillisが期待値と異なります。実際値: %d", cfg.Network.RequestTimeoutMillis)
	}
	if cfg.SaveRootDirectory != "archive" {
		t.Errorf("SaveRootDirectoryが期待値と異なります。実際値: %s", cfg.SaveRootDirectory)
	}
	if cfg.DirectoryFormat != "{board}_{thread_id}" {
		t.Errorf("DirectoryFormatが期待値と異なります。実際値: %s", cfg.DirectoryFormat)
	}
	if cfg.MaxConcurrentDownloads != 2 {
		t.Errorf("MaxConcurrentDownloadsが期待値と異なります。実際値: %d", cfg.MaxConcurrentDownloads)
	}
	// site_adapter は省略されているので既定値になる
	if cfg.SiteAdapter != DefaultSiteAdapter {
		t.Errorf("SiteAdapterが既定値になっていません。実際値: %s", cfg.SiteAdapter)
	}
	if len(cfg.Threads) != 2 {
		t.Fatalf("スレッド数が期待値と異なります。期待値: 2, 実際値: %d", len(cfg.Threads))
	}
}

func TestParseAndResolve_Defaults(t *testing.T) {
	cfg, err := ParseAndResolve([]byte(`{"config_version": "1.0"}`))
	if err != nil {
		t.Fatalf("ParseAndResolveで予期せぬエラーが発生しました: %v", err)
	}

	want := Default()
	if cfg.Network.UserAgent != want.Network.UserAgent {
		t.Errorf("UserAgentの既定値が不正です: %s", cfg.Network.UserAgent)
	}
	if cfg.Network.RequestTimeoutMillis != DefaultRequestTimeoutMillis {
		t.Errorf("RequestTimeoutMillisの既定値が不正です: %d", cfg.Network.RequestTimeoutMillis)
	}
	if cfg.DirectoryFormat != DefaultDirectoryFormat {
		t.Errorf("DirectoryFormatの既定値が不正です: %s", cfg.DirectoryFormat)
	}
	if cfg.MaxConcurrentDownloads != DefaultMaxConcurrentDownloads {
		t.Errorf("MaxConcurrentDownloadsの既定値が不正です: %d", cfg.MaxConcurrentDownloads)
	}
	if cfg.SaveRootDirectory != "." {
		t.Errorf("SaveRootDirectoryの既定値が不正です: %s", cfg.SaveRootDirectory)
	}
}

func TestParseAndResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantSub string
	}{
		{
			name:    "unsupported version",
			data:    `{"config_version": "0.9"}`,
			wantSub: "サポートされていない設定バージョン",
		},
		{
			name:    "syntax error reports line",
			data:    "{\n  \"config_version\": \"1.0\",\n  \"threads\": [}\n}",
			wantSub: "行 3",
		},
		{
			name:    "type error",
			data:    `{"config_version": "1.0", "max_concurrent_downloads": "many"}`,
			wantSub: "型エラー",
		},
		{
			name:    "negative workers",
			data:    `{"config_version": "1.0", "max_concurrent_downloads": -1}`,
			wantSub: "max_concurrent_downloads",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndResolve([]byte(tt.data))
			if err == nil {
				t.Fatal("エラーが返されるべきですが、nilでした")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("エラーメッセージに '%s' が含まれていません: %v", tt.wantSub, err)
			}
		})
	}
}

func TestLoadAndResolve_MissingFile(t *testing.T) {
	_, err := LoadAndResolve(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("存在しないファイルでエラーが返されませんでした")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("os.ErrNotExist をラップしているべきです: %v", err)
	}
}
