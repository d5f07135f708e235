package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jinford/docqa/internal/core/ask"
	"github.com/jinford/docqa/internal/platform/config"
)

// AskService は質問応答サービスのインターフェース（テスト時に差し替え可能）
type AskService interface {
	Ask(ctx context.Context, params ask.AskParams) (*ask.AskResult, error)
}

// Handler はHTTPリクエストを処理するコントローラ
type Handler struct {
	askService AskService
	cfg        *config.Config
	logger     *slog.Logger
}

// NewHandler は新しい Handler を作成する
func NewHandler(askService AskService, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		askService: askService,
		cfg:        cfg,
		logger:     logger,
	}
}

// askRequest は POST /ask のリクエストボディ。
// question は必須の文字列。欠落・型不一致はバインディングで弾かれ、
// リモート呼び出しは一切行われない。
type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask は POST /ask のハンドラ。
// 検索 → コンテキスト構築 → 回答生成を実行し、回答とソース一覧を返す。
func (h *Handler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required and must be a string"})
		return
	}

	result, err := h.askService.Ask(c.Request.Context(), ask.AskParams{Question: req.Question})
	if err != nil {
		h.writeAskError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeAskError はエラー種別をHTTPステータスへ対応付ける。
// 上流障害（検索・生成）は502として返し、成功形のペイロードに
// エラーを埋め込むことはしない。
func (h *Handler) writeAskError(c *gin.Context, err error) {
	var retrievalErr *ask.RetrievalError
	var generationErr *ask.GenerationError

	switch {
	case errors.Is(err, ask.ErrQuestionRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &retrievalErr):
		h.logger.Error("search service call failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "search service unavailable"})
	case errors.As(err, &generationErr):
		h.logger.Error("language model call failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "answer generation unavailable"})
	default:
		h.logger.Error("ask failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Health は GET /health のハンドラ。依存先のチェックは行わない純粋な死活確認。
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DebugEnv は GET /debug/env のハンドラ。
// 秘匿値は設定有無のブール値のみを返す。本番デプロイでは外部到達面から
// 除外する想定（リバースプロキシ側の設定で遮断する）。
func (h *Handler) DebugEnv(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg.DebugView())
}
