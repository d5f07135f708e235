package ask_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/docqa/internal/core/ask"
	"github.com/jinford/docqa/internal/core/search"
)

// mockSearcher は Searcher のモック実装
type mockSearcher struct {
	SearchFunc func(ctx context.Context, query string, top int) ([]search.Document, error)
	calls      int
}

func (m *mockSearcher) Search(ctx context.Context, query string, top int) ([]search.Document, error) {
	m.calls++
	return m.SearchFunc(ctx, query, top)
}

// mockGenerator は Generator のモック実装
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, question, sourcesContext string) (string, error)
	calls        int
}

func (m *mockGenerator) Generate(ctx context.Context, question, sourcesContext string) (string, error) {
	m.calls++
	return m.GenerateFunc(ctx, question, sourcesContext)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService_Ask_Success(t *testing.T) {
	// Setup
	ctx := context.Background()
	question := "What is the password policy?"

	searcher := &mockSearcher{
		SearchFunc: func(ctx context.Context, query string, top int) ([]search.Document, error) {
			assert.Equal(t, question, query)
			assert.Equal(t, 5, top)
			return []search.Document{
				{ID: "doc-1", SourceURI: "https://kb.example.com/1", Content: "Passwords must be at least 12 characters..."},
				{ID: "doc-2", SourceURI: "https://kb.example.com/2", Content: "Passwords expire every 90 days..."},
			}, nil
		},
	}
	generator := &mockGenerator{
		GenerateFunc: func(ctx context.Context, q, sourcesContext string) (string, error) {
			assert.Equal(t, question, q)
			assert.Equal(t, "[1] Passwords must be at least 12 characters...\n\n[2] Passwords expire every 90 days...", sourcesContext)
			return "Passwords must be at least 12 characters [1] and expire every 90 days [2].", nil
		},
	}

	service := ask.NewService(searcher, generator, ask.WithLogger(testLogger()))

	// Execute
	result, err := service.Ask(ctx, ask.AskParams{Question: question})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, question, result.Question)
	assert.Equal(t, "Passwords must be at least 12 characters [1] and expire every 90 days [2].", result.Answer)
	require.Len(t, result.Sources, 2)
	assert.Equal(t, "Passwords must be at least 12 characters...", result.Sources[0].ContentPreview)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 1, generator.calls)
}

func TestService_Ask_EmptyQuestion(t *testing.T) {
	// Setup
	searcher := &mockSearcher{
		SearchFunc: func(ctx context.Context, query string, top int) ([]search.Document, error) {
			t.Fatal("search should not be called")
			return nil, nil
		},
	}
	generator := &mockGenerator{
		GenerateFunc: func(ctx context.Context, q, sourcesContext string) (string, error) {
			t.Fatal("generate should not be called")
			return "", nil
		},
	}

	service := ask.NewService(searcher, generator, ask.WithLogger(testLogger()))

	// Execute
	result, err := service.Ask(context.Background(), ask.AskParams{Question: ""})

	// Assert: リモート呼び出しを行う前に弾かれる
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ask.ErrQuestionRequired)
	assert.Equal(t, 0, searcher.calls)
	assert.Equal(t, 0, generator.calls)
}

func TestService_Ask_SearchError(t *testing.T) {
	// Setup
	upstreamErr := errors.New("search service returned status 503")
	searcher := &mockSearcher{
		SearchFunc: func(ctx context.Context, query string, top int) ([]search.Document, error) {
			return nil, upstreamErr
		},
	}
	generator := &mockGenerator{
		GenerateFunc: func(ctx context.Context, q, sourcesContext string) (string, error) {
			t.Fatal("generate should not be called")
			return "", nil
		},
	}

	service := ask.NewService(searcher, generator, ask.WithLogger(testLogger()))

	// Execute
	result, err := service.Ask(context.Background(), ask.AskParams{Question: "q"})

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	var retrievalErr *ask.RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
	assert.ErrorIs(t, err, upstreamErr)
	assert.Equal(t, 0, generator.calls)
}

func TestService_Ask_GenerationError(t *testing.T) {
	// Setup
	upstreamErr := errors.New("Azure OpenAI API call failed")
	searcher := &mockSearcher{
		SearchFunc: func(ctx context.Context, query string, top int) ([]search.Document, error) {
			return []search.Document{{ID: "doc-1", Content: "content"}}, nil
		},
	}
	generator := &mockGenerator{
		GenerateFunc: func(ctx context.Context, q, sourcesContext string) (string, error) {
			return "", upstreamErr
		},
	}

	service := ask.NewService(searcher, generator, ask.WithLogger(testLogger()))

	// Execute
	result, err := service.Ask(context.Background(), ask.AskParams{Question: "q"})

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	var generationErr *ask.GenerationError
	assert.ErrorAs(t, err, &generationErr)
	assert.ErrorIs(t, err, upstreamErr)
}

func TestService_Ask_EmptyResultsStillGenerates(t *testing.T) {
	// Setup: 検索結果0件でも生成はスキップされない
	searcher := &mockSearcher{
		SearchFunc: func(ctx context.Context, query string, top int) ([]search.Document, error) {
			return nil, nil
		},
	}
	generator := &mockGenerator{
		GenerateFunc: func(ctx context.Context, q, sourcesContext string) (string, error) {
			assert.Empty(t, sourcesContext)
			return "I don't know.", nil
		},
	}

	service := ask.NewService(searcher, generator, ask.WithLogger(testLogger()))

	// Execute
	result, err := service.Ask(context.Background(), ask.AskParams{Question: "unknown topic"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "I don't know.", result.Answer)
	assert.Empty(t, result.Sources)
	assert.Equal(t, 1, generator.calls)
}

func TestService_Ask_SourcesBoundedBySearchTop(t *testing.T) {
	// Setup
	searcher := &mockSearcher{
		SearchFunc: func(ctx context.Context, query string, top int) ([]search.Document, error) {
			assert.Equal(t, 3, top)
			docs := make([]search.Document, top)
			for i := range docs {
				docs[i] = search.Document{Content: "content"}
			}
			return docs, nil
		},
	}
	generator := &mockGenerator{
		GenerateFunc: func(ctx context.Context, q, sourcesContext string) (string, error) {
			return "answer", nil
		},
	}

	service := ask.NewService(searcher, generator,
		ask.WithLogger(testLogger()),
		ask.WithSearchTop(3),
	)

	// Execute
	result, err := service.Ask(context.Background(), ask.AskParams{Question: "q"})

	// Assert: ソース数は検索ゲートウェイが返した件数と一致する
	require.NoError(t, err)
	assert.Len(t, result.Sources, 3)
}
