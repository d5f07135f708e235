package azopenai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/shared"

	"github.com/jinford/docqa/internal/core/ask"
)

const (
	// APIVersion は Azure OpenAI API のバージョン
	APIVersion = "2024-02-15-preview"

	// DefaultTimeout はAPI呼び出しのデフォルトタイムアウト
	DefaultTimeout = 60 * time.Second

	// DefaultTemperature は回答生成のデフォルト温度。
	// 事実ベースで再現性のある回答を優先するため低めに固定する。
	DefaultTemperature = 0.2
)

var (
	// ErrEndpointNotSet はエンドポイントが設定されていない場合のエラー
	ErrEndpointNotSet = errors.New("Azure OpenAI endpoint not set")

	// ErrAPIKeyNotSet はAPIキーが設定されていない場合のエラー
	ErrAPIKeyNotSet = errors.New("Azure OpenAI API key not set")

	// ErrDeploymentNotSet はデプロイメント名が設定されていない場合のエラー
	ErrDeploymentNotSet = errors.New("Azure OpenAI deployment not set")
)

// Client は Azure OpenAI のチャット補完APIを使用した回答生成クライアント。
// リトライもフォールバック回答も行わず、失敗はそのまま呼び出し元へ返す。
type Client struct {
	client      openai.Client
	deployment  string
	temperature float64
	timeout     time.Duration
}

// Option は Client のオプション設定
type Option func(*Client)

// WithTemperature は生成温度を上書きする
func WithTemperature(temperature float64) Option {
	return func(c *Client) {
		c.temperature = temperature
	}
}

// WithTimeout はAPIコールのタイムアウトを上書きする
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient は新しい Client を作成する。
// deployment は Azure 側で作成済みのチャットモデルのデプロイメント名。
func NewClient(endpoint, apiKey, deployment string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrEndpointNotSet
	}
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	if deployment == "" {
		return nil, ErrDeploymentNotSet
	}

	client := openai.NewClient(
		azure.WithEndpoint(endpoint, APIVersion),
		azure.WithAPIKey(apiKey),
	)

	c := &Client{
		client:      client,
		deployment:  deployment,
		temperature: DefaultTemperature,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Deployment はデプロイメント名を返す
func (c *Client) Deployment() string {
	return c.deployment
}

// Generate は固定のシステム指示・質問文・コンテキストからチャット補完を実行し、
// 生成された回答テキストを返す。
func (c *Client) Generate(ctx context.Context, question, sourcesContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(ask.SystemInstruction),
			openai.UserMessage(ask.BuildUserContent(question, sourcesContext)),
		},
		Temperature: openai.Float(c.temperature),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Azure OpenAI API call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return completion.Choices[0].Message.Content, nil
}

// インターフェース実装の確認
var _ ask.Generator = (*Client)(nil)
