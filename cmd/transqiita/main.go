// Command transqiita translates the articles you wrote on Qiita and
// publishes the translations back to your account.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/speaktech/transqiita/internal/adapters/driving/cli"
	"github.com/speaktech/transqiita/internal/i18n"
	"github.com/speaktech/transqiita/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	i18n.Init("")
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()

	if cerr := cli.Close(); cerr != nil {
		logger.Warn("closing stores: %v", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}
