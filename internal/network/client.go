// Package network は、HTTP通信に関する機能を提供します。
// User-Agentや既定ヘッダー、Cookie Jarを内包した共有クライアントで、
// スレッドHTMLの取得とメディアのバイト列取得を行います。
package network

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"GoChanDownloader/internal/config"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"
)

// HTTPError は、接続には成功したが成功以外のステータスが返されたことを表します。
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsRetryable は、このエラーがリトライ可能かどうかを判定します。
// 4xxエラー（クライアントエラー）はリトライ不可、5xxエラー（サーバーエラー）はリトライ可能とします。
// リトライ自体は呼び出し側の責務です。
func (e *HTTPError) IsRetryable() bool {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return false
	}
	return true
}

// TransportError は、リクエストの送信、接続、レスポンスの読み込みの失敗を表します。
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("通信エラー (URL: %s): %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Option は、Client の生成時設定を変更します。
type Option func(*Client)

// WithTransport は、内部の http.Client が使う RoundTripper を差し替えます。
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// Client は、Cookie Jarと既定ヘッダーを内包した共有HTTPクライアントです。
// 設定は生成後に変更されないため、複数のgoroutineから同時に使用できます。
type Client struct {
	httpClient     *http.Client
	jar            *cookiejar.Jar
	userAgent      string
	defaultHeaders map[string]string

	rateLimiters      map[string]*rate.Limiter // ホスト名ごとのレートリミッター
	rateLimitersMutex sync.Mutex
}

// NewClient は NetworkSettings に基づいて HTTP クライアントを初期化します。
// per_domain_interval_ms に記載されたホストにだけレートリミッターを設定します。
func NewClient(settings config.NetworkSettings, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jarの作成に失敗しました: %w", err)
	}

	timeout := time.Duration(settings.RequestTimeoutMillis) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	userAgent := settings.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	rateLimiters := make(map[string]*rate.Limiter)
	for domain, intervalMillis := range settings.PerDomainIntervalMillis {
		if intervalMillis <= 0 {
			continue
		}
		rateLimiters[domain] = rate.NewLimiter(rate.Every(time.Duration(intervalMillis)*time.Millisecond), 1)
	}

	c := &Client{
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		jar:            jar,
		userAgent:      userAgent,
		defaultHeaders: settings.DefaultHeaders,
		rateLimiters:   rateLimiters,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetCookie は、指定されたURLのドメインに対して、任意のCookieを設定します。
func (c *Client) SetCookie(domainURL string, cookie *http.Cookie) error {
	if !strings.HasPrefix(domainURL, "http") {
		domainURL = "https://" + domainURL
	}

	parsedURL, err := url.Parse(domainURL)
	if err != nil {
		return fmt.Errorf("Cookie設定のためのURL解析に失敗しました: %w", err)
	}

	c.jar.SetCookies(parsedURL, []*http.Cookie{cookie})
	return nil
}

// FetchText は、GETリクエストを送信しレスポンスボディを文字列として返します。
// エラーページの本文を確認したい呼び出し側のため、成功以外のステータスでもボディを返します。
// Content-Type の charset が UTF-8 以外であれば UTF-8 に変換します。
func (c *Client) FetchText(ctx context.Context, reqURL string) (string, error) {
	resp, err := c.do(ctx, reqURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &TransportError{URL: reqURL, Err: fmt.Errorf("レスポンスボディの読み込みに失敗しました: %w", err)}
	}
	return body, nil
}

// FetchBytes は、GETリクエストを送信しレスポンスボディをバイト列として返します。
// 成功以外のステータスの場合はボディを読まずに *HTTPError を返します。
func (c *Client) FetchBytes(ctx context.Context, reqURL string) ([]byte, error) {
	resp, err := c.do(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        reqURL,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("レスポンスボディの読み込みに失敗しました: %w", err)}
	}
	return body, nil
}

// do は、レートリミッターの待機とヘッダー設定を行ってGETリクエストを送信します。
func (c *Client) do(ctx context.Context, reqURL string) (*http.Response, error) {
	parsedURL, err := url.Parse(reqURL)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("リクエストURLの解析に失敗しました: %w", err)}
	}

	if limiter := c.limiterForHost(parsedURL.Hostname()); limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("レートリミッター待機中にエラーが発生しました: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("GETリクエストの作成に失敗しました: %w", err)}
	}
	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("GETリクエストの送信に失敗しました: %w", err)}
	}
	return resp, nil
}

// limiterForHost は、設定されたホストのレートリミッターを返します。未設定なら nil です。
func (c *Client) limiterForHost(host string) *rate.Limiter {
	c.rateLimitersMutex.Lock()
	defer c.rateLimitersMutex.Unlock()
	return c.rateLimiters[host]
}

// decodeBody は、Content-Type の charset に従ってボディを UTF-8 文字列に変換します。
func decodeBody(r io.Reader, contentType string) (string, error) {
	charset := ""
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			charset = params["charset"]
		}
	}

	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err == nil && enc != unicode.UTF8 {
			r = transform.NewReader(r, enc.NewDecoder())
		}
	}

	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
