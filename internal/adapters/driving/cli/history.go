package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/i18n"
)

var historyCmd = &cobra.Command{
	Use:   "history [article-id]",
	Short: "Show published translations",
	Long: `Show the translations published by transqiita, newest first.

With an article id, show the last translation published for that article.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show scheduled runs",
	RunE:  runHistoryRuns,
}

const timeLayout = "2006-01-02 15:04:05"

func init() {
	historyCmd.PersistentFlags().IntP("limit", "n", 20, "Maximum number of entries")
	historyCmd.AddCommand(historyRunsCmd)
	rootCmd.AddCommand(historyCmd)
}

func limitFlag(cmd *cobra.Command) int {
	limit, _ := cmd.Flags().GetInt("limit") //nolint:errcheck // registered in init
	return limit
}

func runHistory(cmd *cobra.Command, args []string) error {
	if services == nil || services.History == nil {
		return errors.New("history service not configured")
	}
	ctx := cmd.Context()

	if len(args) == 1 {
		rec, err := services.History.ForArticle(ctx, args[0])
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println(i18n.T("%s has not been translated yet.", args[0]))
			return nil
		}
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		printRecord(cmd, *rec)
		return nil
	}

	records, err := services.History.Recent(ctx, limitFlag(cmd))
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if len(records) == 0 {
		cmd.Println(i18n.T("Nothing has been published yet."))
		return nil
	}
	for _, rec := range records {
		printRecord(cmd, rec)
	}
	return nil
}

func printRecord(cmd *cobra.Command, rec domain.PublishRecord) {
	cmd.Printf("%s  (%s) %s\n", rec.PublishedAt.Local().Format(timeLayout), rec.Disposition.Label(), rec.Title)
	cmd.Printf("    %s -> %s  [%s via %s]\n", rec.SourceID, rec.TranslatedID, rec.Repository, rec.Translator)
	if rec.URL != "" {
		cmd.Printf("    %s\n", rec.URL)
	}
}

func runHistoryRuns(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Runs == nil {
		return errors.New("run log not configured")
	}

	runs, err := services.Runs.ListRuns(cmd.Context(), limitFlag(cmd))
	if err != nil {
		return fmt.Errorf("runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println(i18n.T("No scheduled runs recorded."))
		return nil
	}
	for _, run := range runs {
		status := "ok"
		if !run.Succeeded() {
			status = "failed: " + run.Error
		}
		cmd.Printf("%s  %d/%d published in %s  %s\n",
			run.StartedAt.Local().Format(timeLayout), run.Published, run.Selected,
			run.Duration().Round(time.Second), status)
	}
	return nil
}
