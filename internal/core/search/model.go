package search

// Document は検索インデックスから返される文書断片を表す。
// インデックス側のスキーマ次第で ID や SourceURI が空になることがある。
type Document struct {
	ID        string  `json:"id"`
	SourceURI string  `json:"source_uri"`
	Content   string  `json:"content"`
	Score     float64 `json:"@search.score,omitempty"`
}
