package azsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jinford/docqa/internal/core/search"
)

const (
	// APIVersion は Azure AI Search REST API のバージョン
	APIVersion = "2023-11-01"

	// DefaultTimeout はAPI呼び出しのデフォルトタイムアウト
	DefaultTimeout = 30 * time.Second
)

var (
	// ErrEndpointNotSet はエンドポイントが設定されていない場合のエラー
	ErrEndpointNotSet = errors.New("search endpoint not set")

	// ErrAPIKeyNotSet はAPIキーが設定されていない場合のエラー
	ErrAPIKeyNotSet = errors.New("search API key not set")
)

// Client は Azure AI Search のドキュメント検索REST APIを呼び出す薄いクライアント。
// リトライは行わず、失敗はそのまま呼び出し元へ返す。
type Client struct {
	endpoint   string
	indexName  string
	apiKey     string
	httpClient *http.Client
}

// Option は Client のオプション設定
type Option func(*Client)

// WithHTTPClient はHTTPクライアントを差し替える（テスト用）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient は新しい Client を作成する
func NewClient(endpoint, indexName, apiKey string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrEndpointNotSet
	}
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	if indexName == "" {
		return nil, errors.New("search index name not set")
	}

	c := &Client{
		endpoint:  endpoint,
		indexName: indexName,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// searchRequest は docs/search API のリクエストボディ
type searchRequest struct {
	Search string `json:"search"`
	Top    int    `json:"top"`
}

// searchResponse は docs/search API のレスポンスボディ
type searchResponse struct {
	Value []search.Document `json:"value"`
}

// errorResponse は検索サービスのエラーレスポンス
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search はクエリをそのまま検索サービスへ転送し、関連度順の文書を返す。
func (c *Client) Search(ctx context.Context, query string, top int) ([]search.Document, error) {
	if query == "" {
		return nil, errors.New("query is required")
	}
	if top <= 0 {
		top = 5
	}

	body, err := json.Marshal(searchRequest{
		Search: query,
		Top:    top,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s",
		c.endpoint, url.PathEscape(c.indexName), APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return result.Value, nil
}

// errorFromResponse は非2xxレスポンスをエラーへ変換する。
// サービス側のエラーメッセージが読めればそれを含める。
func (c *Client) errorFromResponse(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("search service returned status %d", resp.StatusCode)
	}

	var svcErr errorResponse
	if err := json.Unmarshal(data, &svcErr); err == nil && svcErr.Error.Message != "" {
		return fmt.Errorf("search service returned status %d: %s", resp.StatusCode, svcErr.Error.Message)
	}

	return fmt.Errorf("search service returned status %d", resp.StatusCode)
}

// インターフェース実装の確認
var _ search.Searcher = (*Client)(nil)
