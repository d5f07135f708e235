package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jinford/docqa/internal/interface/api"
)

// ServerStartAction はHTTPサーバを起動するコマンドのアクション
func ServerStartAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(envFile)
	if err != nil {
		return err
	}

	// --portフラグが指定されている場合は環境変数より優先する
	if port := cmd.Int("port"); port > 0 {
		appCtx.Config.HTTP.Port = int(port)
	}

	server := api.NewServer(appCtx.Container.AskService, appCtx.Config, appCtx.Logger())

	return server.Run(ctx)
}
