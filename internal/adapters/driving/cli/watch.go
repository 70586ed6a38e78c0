package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/i18n"
	"github.com/speaktech/transqiita/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Translate local articles as they are saved",
	Long: `Watch the local article directory and translate every article that
becomes NEW or UPDATED when its file is written.

Only the local repository supports watching. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	addPublishFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req, err := publishRequest(cmd)
	if err != nil {
		return err
	}
	rt, err := openRuntime(ctx, tokenFlag(cmd))
	if err != nil {
		return err
	}

	repo, ok := rt.Repository.(driven.WatchableRepository)
	if !ok {
		return fmt.Errorf("%w: %s repository cannot be watched", domain.ErrUnsupportedType, rt.Repository.Kind())
	}

	changes, err := repo.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	cmd.Println(i18n.T("Watching for changes. Press Ctrl+C to stop."))

	for id := range changes {
		logger.Debug("article changed: %s", id)

		wl, err := rt.Worklist.Build(ctx)
		if err != nil {
			logger.Error("build worklist: %v", err)
			continue
		}
		due := wl.Filter(func(item domain.WorkItem) bool { return item.Article.ID == id })
		if len(due) == 0 {
			continue
		}

		results, err := rt.Publish.PublishAll(ctx, due, req, printProgress(cmd, due))
		printSummary(cmd, results)
		if err != nil {
			logger.Error("translate %s: %v", id, err)
		}
	}
	return nil
}
