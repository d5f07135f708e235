package container

import (
	"fmt"
	"log/slog"

	coreask "github.com/jinford/docqa/internal/core/ask"
	coresearch "github.com/jinford/docqa/internal/core/search"
	"github.com/jinford/docqa/internal/infra/azopenai"
	"github.com/jinford/docqa/internal/infra/azsearch"
	"github.com/jinford/docqa/internal/platform/config"
	"github.com/jinford/docqa/internal/platform/tokenizer"
)

// ServiceContainer はアプリケーションの依存関係を保持する。
// 設定から外部サービスクライアントと質問応答サービスを組み立てる。
type ServiceContainer struct {
	AskService *coreask.Service

	logger *slog.Logger
}

type containerOptions struct {
	searcher  coresearch.Searcher
	generator coreask.Generator
}

// ContainerOption は ServiceContainer 構築時のオプション
type ContainerOption func(*containerOptions)

// WithSearcher は検索クライアントを差し替える（テスト用）
func WithSearcher(searcher coresearch.Searcher) ContainerOption {
	return func(opts *containerOptions) {
		opts.searcher = searcher
	}
}

// WithGenerator は回答生成クライアントを差し替える（テスト用）
func WithGenerator(generator coreask.Generator) ContainerOption {
	return func(opts *containerOptions) {
		opts.generator = generator
	}
}

// NewContainer は設定からコンテナを生成する
func NewContainer(cfg *config.Config, logger *slog.Logger, opts ...ContainerOption) (*ServiceContainer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var cOpts containerOptions
	for _, opt := range opts {
		opt(&cOpts)
	}

	if cOpts.searcher == nil {
		searchClient, err := azsearch.NewClient(
			cfg.Search.Endpoint,
			cfg.Search.IndexName,
			cfg.Search.APIKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create search client: %w", err)
		}
		cOpts.searcher = searchClient
	}

	if cOpts.generator == nil {
		generator, err := azopenai.NewClient(
			cfg.AOAI.Endpoint,
			cfg.AOAI.APIKey,
			cfg.AOAI.Deployment,
			azopenai.WithTemperature(cfg.AOAI.Temperature),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
		}
		cOpts.generator = generator
	}

	askOpts := []coreask.ServiceOption{
		coreask.WithLogger(logger),
		coreask.WithSearchTop(cfg.Search.Top),
		coreask.WithPreviewMaxChars(cfg.Search.PreviewMaxChars),
	}

	// トークン見積もりはログ用途のみ。初期化に失敗しても起動は継続する。
	if estimator, err := tokenizer.NewEstimator(); err != nil {
		logger.Warn("token estimator unavailable", "error", err)
	} else {
		askOpts = append(askOpts, coreask.WithTokenEstimator(estimator))
	}

	askService := coreask.NewService(cOpts.searcher, cOpts.generator, askOpts...)

	return &ServiceContainer{
		AskService: askService,
		logger:     logger,
	}, nil
}

// Logger はコンテナのロガーを返す
func (c *ServiceContainer) Logger() *slog.Logger {
	return c.logger
}
