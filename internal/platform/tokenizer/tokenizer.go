package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Estimator はプロンプトのトークン数を見積もる機能を提供する。
// 回答フローの動作には影響せず、ログ出力のみに使用する。
type Estimator struct {
	encoding *tiktoken.Tiktoken
}

// NewEstimator は新しいEstimatorを作成する
// cl100k_baseエンコーディングを使用する
func NewEstimator() (*Estimator, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}

	return &Estimator{
		encoding: encoding,
	}, nil
}

// CountTokens はテキストのトークン数をカウントする
func (e *Estimator) CountTokens(text string) int {
	if e.encoding == nil {
		return 0
	}
	tokens := e.encoding.Encode(text, nil, nil)
	return len(tokens)
}
