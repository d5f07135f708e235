package ask

import (
	"context"
	"log/slog"

	"github.com/jinford/docqa/internal/core/search"
)

// Generator はLLM通信インターフェース。
// 質問文と組み立て済みコンテキストを渡し、生成された回答テキストを受け取る。
type Generator interface {
	Generate(ctx context.Context, question, sourcesContext string) (string, error)
}

// TokenEstimator はプロンプトのトークン数見積もりインターフェース（ログ用）
type TokenEstimator interface {
	CountTokens(text string) int
}

// Service は質問応答のビジネスロジックを提供する。
// 検索 → コンテキスト構築 → 回答生成を厳密にこの順で実行し、
// リクエスト間で共有する可変状態を持たない。
type Service struct {
	searcher  search.Searcher
	generator Generator

	logger          *slog.Logger
	tokens          TokenEstimator
	searchTop       int
	previewMaxChars int
}

// ServiceOption は Service のオプション設定
type ServiceOption func(*Service)

// WithLogger は Service にロガーを設定する
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTokenEstimator はプロンプトトークン数の見積もり器を設定する
func WithTokenEstimator(estimator TokenEstimator) ServiceOption {
	return func(s *Service) {
		s.tokens = estimator
	}
}

// WithSearchTop は検索結果の取得上限を設定する（デフォルト: 5）
func WithSearchTop(top int) ServiceOption {
	return func(s *Service) {
		if top > 0 {
			s.searchTop = top
		}
	}
}

// WithPreviewMaxChars はソースプレビューの文字数上限を設定する（デフォルト: 300）
func WithPreviewMaxChars(max int) ServiceOption {
	return func(s *Service) {
		if max > 0 {
			s.previewMaxChars = max
		}
	}
}

// NewService は新しいServiceを作成する
func NewService(searcher search.Searcher, generator Generator, opts ...ServiceOption) *Service {
	svc := &Service{
		searcher:        searcher,
		generator:       generator,
		logger:          slog.Default(),
		searchTop:       5,
		previewMaxChars: DefaultPreviewMaxChars,
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

// Ask は質問に対してRAGベースで回答を生成する。
//
// 検索結果が0件でも生成は実行する。システム指示により、ソースが無い場合は
// モデルが「分からない」と回答することを期待する（それは正常系であり、
// 上流障害とは区別される）。
func (s *Service) Ask(ctx context.Context, params AskParams) (*AskResult, error) {
	// 1. バリデーション（リモート呼び出し前に弾く）
	if params.Question == "" {
		return nil, ErrQuestionRequired
	}

	// 2. 検索
	s.logger.Info("executing search",
		"query", params.Question,
		"top", s.searchTop,
	)

	docs, err := s.searcher.Search(ctx, params.Question, s.searchTop)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}

	s.logger.Info("search completed", "hits", len(docs))

	// 3. コンテキスト構築
	sourcesContext, sources := BuildContext(docs, s.previewMaxChars)

	if s.tokens != nil {
		s.logger.Info("context assembled",
			"sources", len(sources),
			"promptTokens", s.tokens.CountTokens(BuildUserContent(params.Question, sourcesContext)),
		)
	}

	// 4. 回答生成
	s.logger.Info("generating answer")
	answer, err := s.generator.Generate(ctx, params.Question, sourcesContext)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	s.logger.Info("ask completed successfully",
		"answerLength", len(answer),
		"sources", len(sources),
	)

	return &AskResult{
		Answer:   answer,
		Question: params.Question,
		Sources:  sources,
	}, nil
}
