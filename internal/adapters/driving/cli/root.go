// Package cli implements the transqiita command line.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
	"github.com/speaktech/transqiita/internal/i18n"
	"github.com/speaktech/transqiita/internal/logger"
)

// version is set at build time.
var version = "dev"

// Runtime holds the services bound to one opened repository.
type Runtime struct {
	Repository driven.ContentRepository
	Worklist   driving.WorklistService
	Publish    driving.PublishService
}

// Services are the collaborators the commands drive.
type Services struct {
	Settings driving.SettingsService
	History  driving.HistoryService
	Runs     driven.RunStore

	// Open connects to the configured repository. A non-empty token
	// overrides the configured credential.
	Open func(ctx context.Context, token string) (*Runtime, error)

	// NewScheduler builds a cron scheduler over rt. report receives the
	// outcome of every pass.
	NewScheduler func(spec string, rt *Runtime, req driving.PublishRequest, report func(domain.RunRecord)) driving.Scheduler

	// Close releases stores. May be nil.
	Close func() error
}

// Bootstrap builds Services for a config directory. An empty dir means
// the default location.
type Bootstrap func(configDir string) (*Services, error)

var (
	bootstrap Bootstrap
	services  *Services
)

var (
	verbose   bool
	configDir string
	uiLang    string
)

var rootCmd = &cobra.Command{
	Use:   "transqiita",
	Short: "Translate your Qiita articles and publish them back",
	Long: `transqiita finds the articles you wrote that have no translation yet,
or whose translation is older than the original, translates them while
keeping code blocks intact, and publishes the result to the same account.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Close releases services opened by the last command. Safe to call twice.
func Close() error {
	return teardown(nil, nil)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.transqiita)")
	rootCmd.PersistentFlags().StringVar(&uiLang, "lang-ui", "", "Language of transqiita's own messages (default from $LANG)")
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if uiLang != "" {
		i18n.Init(uiLang)
	}

	if services != nil || bootstrap == nil {
		return nil
	}
	s, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	services = s
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if services == nil || services.Close == nil {
		return nil
	}
	err := services.Close()
	services = nil
	return err
}

func settingsSvc() (driving.SettingsService, error) {
	if services == nil || services.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return services.Settings, nil
}

func openRuntime(ctx context.Context, token string) (*Runtime, error) {
	if services == nil || services.Open == nil {
		return nil, errors.New("repository not configured")
	}
	return services.Open(ctx, token)
}
