package ask

// AskParams は質問応答のパラメータを表す
type AskParams struct {
	Question string // ユーザーの質問文
}

// Source は回答の根拠となった検索結果の参照情報を表す。
// 配列内の位置（1始まり）がコンテキスト中の引用番号に対応する。
type Source struct {
	ID             string `json:"id"`
	SourceURI      string `json:"source_uri"`
	ContentPreview string `json:"content_preview"`
}

// AskResult は質問応答の結果を表す
type AskResult struct {
	Answer   string   `json:"answer"`
	Question string   `json:"question"`
	Sources  []Source `json:"sources"`
}
