package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	coreask "github.com/jinford/docqa/internal/core/ask"
)

// AskAction は質問応答コマンドのアクション。
// HTTPサーバと同じ質問応答サービスを1回だけ実行する。
func AskAction(ctx context.Context, cmd *cli.Command) error {
	showSources := cmd.Bool("show-sources")
	envFile := cmd.String("env")

	// 質問文の取得
	question := cmd.Args().First()
	if question == "" {
		return fmt.Errorf("質問文を指定してください")
	}

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(envFile)
	if err != nil {
		return err
	}

	slog.Info("質問応答を開始", "question", question, "showSources", showSources)

	result, err := appCtx.Container.AskService.Ask(ctx, coreask.AskParams{Question: question})
	if err != nil {
		slog.Error("質問応答に失敗しました", "error", err)
		return err
	}

	// 結果出力
	fmt.Println(result.Answer)

	// --show-sourcesフラグが指定されている場合、参照ソースも出力
	if showSources && len(result.Sources) > 0 {
		fmt.Println("\n--- 参照ソース ---")
		for i, source := range result.Sources {
			fmt.Printf("[%d] %s %s\n", i+1, source.ID, source.SourceURI)
		}
	}

	slog.Info("質問応答が完了しました")
	return nil
}
