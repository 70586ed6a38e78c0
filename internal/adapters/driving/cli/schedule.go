package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/i18n"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Translate and publish on a cron schedule",
	Long: `Run unattended passes on a cron schedule. Every pass builds the
worklist and publishes all of it without prompting.

The schedule is a standard five-field cron expression. It defaults to the
schedule.cron setting. A pass that is still running when the next one is
due causes that tick to be skipped. Stop with Ctrl+C.

Examples:
  transqiita schedule
  transqiita schedule --cron "*/30 * * * *" --keep-going`,
	RunE: runSchedule,
}

func init() {
	addPublishFlags(scheduleCmd)
	scheduleCmd.Flags().String("cron", "", "Cron expression (default from settings)")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if services == nil || services.NewScheduler == nil {
		return errors.New("scheduler not configured")
	}
	ctx := cmd.Context()

	spec, _ := cmd.Flags().GetString("cron") //nolint:errcheck // registered in init
	req, err := publishRequest(cmd)
	if err != nil {
		return err
	}
	if services.Settings != nil {
		settings, err := services.Settings.Get()
		if err != nil {
			return err
		}
		if spec == "" {
			spec = settings.Schedule.Cron
		}
		if !cmd.Flags().Changed("keep-going") {
			req.KeepGoing = settings.Schedule.KeepGoing
		}
	}
	if spec == "" {
		return errors.New("no schedule: pass --cron or set schedule.cron")
	}

	rt, err := openRuntime(ctx, tokenFlag(cmd))
	if err != nil {
		return err
	}

	scheduler := services.NewScheduler(spec, rt, req, func(run domain.RunRecord) {
		if run.Succeeded() {
			cmd.Printf("%s  %s\n", run.EndedAt.Local().Format(timeLayout),
				i18n.T("published %d of %d", run.Published, run.Selected))
			return
		}
		cmd.Printf("%s  %s\n", run.EndedAt.Local().Format(timeLayout),
			i18n.T("run failed after %s: %s", run.Duration().Round(time.Second), run.Error))
	})

	cmd.Println(i18n.T("Scheduled with %q. Press Ctrl+C to stop.", spec))
	err = scheduler.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
