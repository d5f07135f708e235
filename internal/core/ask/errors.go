package ask

import (
	"errors"
	"fmt"
)

// ErrQuestionRequired は質問文が指定されていない場合のエラー。
// リモート呼び出しを行う前に返す（クライアント入力エラー）。
var ErrQuestionRequired = errors.New("question is required")

// RetrievalError は検索サービス呼び出しの失敗を表す。
// HTTP層では上流障害（502）として扱う。
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// GenerationError は言語モデル呼び出しの失敗を表す。
// HTTP層では上流障害（502）として扱う。
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
