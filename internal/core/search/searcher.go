package search

import "context"

// Searcher は外部検索インデックスへの問い合わせインターフェース。
// クエリは正規化せずそのまま転送し、結果はサービス側の関連度順のまま返す。
// 再ランク・重複排除・フィルタリングは行わない。
type Searcher interface {
	Search(ctx context.Context, query string, top int) ([]Document, error)
}
