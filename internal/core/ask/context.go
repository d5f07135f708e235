package ask

import (
	"fmt"
	"strings"

	"github.com/jinford/docqa/internal/core/search"
)

// DefaultPreviewMaxChars はソース本文のプレビュー上限（文字数）
const DefaultPreviewMaxChars = 300

// BuildContext は検索結果から引用番号付きコンテキストとソース一覧を構築する。
// 純粋関数であり、同じ入力に対して常に同じ出力を返す。
//
// 不変条件:
//   - len(sources) == len(docs)
//   - 引用番号は位置ベースの1始まりで、コンテキスト中の "[i] " は
//     sources[i-1] のプレビューの直前に置かれる
//   - 検索結果の順序は入れ替えない
func BuildContext(docs []search.Document, previewMaxChars int) (string, []Source) {
	if previewMaxChars <= 0 {
		previewMaxChars = DefaultPreviewMaxChars
	}

	sources := make([]Source, 0, len(docs))
	entries := make([]string, 0, len(docs))

	for i, doc := range docs {
		src := Source{
			ID:             doc.ID,
			SourceURI:      doc.SourceURI,
			ContentPreview: truncate(doc.Content, previewMaxChars),
		}
		sources = append(sources, src)
		entries = append(entries, fmt.Sprintf("[%d] %s", i+1, src.ContentPreview))
	}

	return strings.Join(entries, "\n\n"), sources
}

// truncate は先頭 max 文字を返す。単語境界は考慮しない。
// 文字数はルーン単位で数え、マルチバイト文字を途中で切らない。
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
