package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jinford/docqa/internal/platform/config"
)

// ConfigCheckAction は必須設定の存在を検証して表示するコマンドのアクション。
// 表示内容は /debug/env と同じで、秘匿値は設定有無のみを出力する。
func ConfigCheckAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("設定の検証に失敗: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg.DebugView()); err != nil {
		return err
	}

	fmt.Println("OK: すべての必須設定が揃っています")
	return nil
}
