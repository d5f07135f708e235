package azsearch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/docqa/internal/infra/azsearch"
)

func TestClient_Search_Success(t *testing.T) {
	// Setup: docs/search API を模したサーバ
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/indexes/kb-index/docs/search", r.URL.Path)
		assert.Equal(t, azsearch.APIVersion, r.URL.Query().Get("api-version"))
		assert.Equal(t, "secret-key", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "password policy", body["search"])
		assert.Equal(t, float64(5), body["top"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"value": [
				{"@search.score": 2.5, "id": "doc-1", "source_uri": "https://kb.example.com/1", "content": "Passwords must be at least 12 characters..."},
				{"@search.score": 1.1, "id": "doc-2", "source_uri": "https://kb.example.com/2", "content": "Passwords expire every 90 days..."}
			]
		}`))
	}))
	defer ts.Close()

	client, err := azsearch.NewClient(ts.URL, "kb-index", "secret-key")
	require.NoError(t, err)

	// Execute
	docs, err := client.Search(context.Background(), "password policy", 5)

	// Assert: サービス側の関連度順のまま返す
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, "Passwords must be at least 12 characters...", docs[0].Content)
	assert.Equal(t, 2.5, docs[0].Score)
	assert.Equal(t, "doc-2", docs[1].ID)
}

func TestClient_Search_MissingFields(t *testing.T) {
	// Setup: id や source_uri を持たないスキーマでも動作する
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value": [{"content": "only content"}]}`))
	}))
	defer ts.Close()

	client, err := azsearch.NewClient(ts.URL, "kb-index", "secret-key")
	require.NoError(t, err)

	// Execute
	docs, err := client.Search(context.Background(), "q", 5)

	// Assert
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].ID)
	assert.Empty(t, docs[0].SourceURI)
	assert.Equal(t, "only content", docs[0].Content)
}

func TestClient_Search_EmptyResults(t *testing.T) {
	// Setup
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value": []}`))
	}))
	defer ts.Close()

	client, err := azsearch.NewClient(ts.URL, "kb-index", "secret-key")
	require.NoError(t, err)

	// Execute
	docs, err := client.Search(context.Background(), "no hits", 5)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestClient_Search_ServiceError(t *testing.T) {
	// Setup
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": "Forbidden", "message": "invalid api key"}}`))
	}))
	defer ts.Close()

	client, err := azsearch.NewClient(ts.URL, "kb-index", "bad-key")
	require.NoError(t, err)

	// Execute
	docs, err := client.Search(context.Background(), "q", 5)

	// Assert: サービス側のメッセージをエラーに含める
	require.Error(t, err)
	assert.Nil(t, docs)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestClient_Search_EmptyQuery(t *testing.T) {
	// Setup
	client, err := azsearch.NewClient("https://example.search.windows.net", "kb-index", "key")
	require.NoError(t, err)

	// Execute
	docs, err := client.Search(context.Background(), "", 5)

	// Assert
	require.Error(t, err)
	assert.Nil(t, docs)
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		indexName string
		apiKey    string
		wantErr   error
	}{
		{
			name:      "エンドポイント未設定",
			indexName: "kb-index",
			apiKey:    "key",
			wantErr:   azsearch.ErrEndpointNotSet,
		},
		{
			name:     "APIキー未設定",
			endpoint: "https://example.search.windows.net",
			wantErr:  azsearch.ErrAPIKeyNotSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := azsearch.NewClient(tt.endpoint, tt.indexName, tt.apiKey)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
