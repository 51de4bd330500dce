// Package config は、アプリケーションの設定ファイル(config.json)の構造定義と、
// その読み込み、既定値の適用に関する機能を提供します。
package config

const (
	// DefaultUserAgent は、上流サイトが要求する固定のUser-Agentです。
	DefaultUserAgent = "GoChanDownloader/1.0 (+https://github.com/mariot/chan-downloader)"
	// DefaultDirectoryFormat は、保存先ディレクトリの既定フォーマットです。
	DefaultDirectoryFormat = "{board}/{thread_id}"
	// DefaultSiteAdapter は、既定のサイトアダプタ名です。
	DefaultSiteAdapter = "4chan"
	// DefaultMaxConcurrentDownloads は、1スレッドあたりの既定の同時ダウンロード数です。
	DefaultMaxConcurrentDownloads = 4
	// DefaultRequestTimeoutMillis は、1リクエストあたりの既定タイムアウトです。
	DefaultRequestTimeoutMillis = 30000
)

// Config は config.json ファイル全体を表すルート構造体です。
type Config struct {
	ConfigVersion          string          `json:"config_version"`
	Network                NetworkSettings `json:"network"`
	SiteAdapter            string          `json:"site_adapter,omitempty"`
	SaveRootDirectory      string          `json:"save_root_directory,omitempty"`
	DirectoryFormat        string          `json:"directory_format,omitempty"`
	MaxConcurrentDownloads int             `json:"max_concurrent_downloads,omitempty"`
	EnableLogFile          bool            `json:"enable_log_file"`
	LogFilePath            string          `json:"log_file_path,omitempty"`
	Threads                []string        `json:"threads,omitempty"`
}

// NetworkSettings は、HTTPリクエストに関するグローバルな設定を保持します。
type NetworkSettings struct {
	UserAgent      string            `json:"user_agent"`
	DefaultHeaders map[string]string `json:"default_headers"`
	// PerDomainIntervalMillis に記載されたホストにだけリクエスト間隔を適用します。
	PerDomainIntervalMillis map[string]int `json:"per_domain_interval_ms"`
	RequestTimeoutMillis    int            `json:"request_timeout_ms"`
}

// Default は、設定ファイルを使わない場合の設定を返します。
func Default() *Config {
	cfg := &Config{ConfigVersion: compatibleVersion}
	applyDefaults(cfg)
	return cfg
}
