package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します。
// Load で一度だけ生成し、以降は読み取り専用として各層へ渡します。
type Config struct {
	// Search は検索インデックス（Azure AI Search）接続設定
	Search SearchConfig

	// AOAI は回答生成用 Azure OpenAI 接続設定
	AOAI AOAIConfig

	// HTTP はHTTPサーバ設定
	HTTP HTTPConfig

	// Log はロガー設定
	Log LogConfig
}

// SearchConfig は検索サービス接続設定
type SearchConfig struct {
	Endpoint  string
	IndexName string
	APIKey    string

	// Top は1回の質問で取得する検索結果の上限
	Top int

	// PreviewMaxChars はソース本文プレビューの文字数上限
	PreviewMaxChars int
}

// AOAIConfig は Azure OpenAI 接続設定
type AOAIConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string

	// Temperature は回答生成の温度。事実ベースの回答を安定させるため低めに設定する
	Temperature float64
}

// HTTPConfig はHTTPサーバ設定
type HTTPConfig struct {
	Port int
}

// LogConfig はロガー設定
type LogConfig struct {
	Level  string // "debug" / "info" / "warn" / "error"
	Format string // "json" or "text"
}

// requiredKeys は必須の環境変数。1つでも欠けていれば Load はエラーを返し、
// プロセスはリクエストを受け付ける前に停止する。
var requiredKeys = []string{
	"SEARCH_ENDPOINT",
	"SEARCH_INDEX_NAME",
	"SEARCH_API_KEY",
	"AOAI_ENDPOINT",
	"AOAI_API_KEY",
	"AOAI_DEPLOYMENT",
}

// Load は環境変数または.envファイルから設定を読み込みます。
// 必須項目にデフォルト値はなく、欠落はすべてまとめて1つのエラーで報告します。
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	var missing []string
	for _, key := range requiredKeys {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		Search: SearchConfig{
			Endpoint:        strings.TrimRight(os.Getenv("SEARCH_ENDPOINT"), "/"),
			IndexName:       os.Getenv("SEARCH_INDEX_NAME"),
			APIKey:          os.Getenv("SEARCH_API_KEY"),
			Top:             getEnvAsInt("SEARCH_TOP", 5),
			PreviewMaxChars: getEnvAsInt("PREVIEW_MAX_CHARS", 300),
		},
		AOAI: AOAIConfig{
			Endpoint:    os.Getenv("AOAI_ENDPOINT"),
			APIKey:      os.Getenv("AOAI_API_KEY"),
			Deployment:  os.Getenv("AOAI_DEPLOYMENT"),
			Temperature: getEnvAsFloat("AOAI_TEMPERATURE", 0.2),
		},
		HTTP: HTTPConfig{
			Port: getEnvAsInt("HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// DebugView は /debug/env で公開する設定ビューを返します。
// 秘匿値（APIキー）は設定有無のブール値のみを返し、値そのものは決して含めません。
func (c *Config) DebugView() map[string]any {
	return map[string]any{
		"SEARCH_ENDPOINT":    c.Search.Endpoint,
		"SEARCH_INDEX_NAME":  c.Search.IndexName,
		"SEARCH_API_KEY_set": c.Search.APIKey != "",
		"SEARCH_TOP":         c.Search.Top,
		"AOAI_ENDPOINT":      c.AOAI.Endpoint,
		"AOAI_DEPLOYMENT":    c.AOAI.Deployment,
		"AOAI_API_KEY_set":   c.AOAI.APIKey != "",
	}
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat は環境変数を浮動小数点数として取得します
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
