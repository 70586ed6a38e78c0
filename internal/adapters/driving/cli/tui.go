package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/speaktech/transqiita/internal/adapters/driving/tui"
	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
	"github.com/speaktech/transqiita/internal/i18n"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Pick articles to translate interactively",
	Long: `Open the interactive picker.

Articles are shown ten per page with their NEW or UPDATED label.

Controls:
  ↑/k, ↓/j - Move
  n, b     - Next / previous page
  Enter    - Translate the highlighted article
  a        - Translate every article
  y, n     - Confirm or cancel
  q        - Quit`,
	RunE: runTUI,
}

// runProgram runs a bubbletea model. Replaced in tests.
var runProgram = func(cmd *cobra.Command, model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err := p.Run()
	return err
}

func init() {
	addPublishFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	req, err := publishRequest(cmd)
	if err != nil {
		return err
	}
	rt, err := openRuntime(cmd.Context(), tokenFlag(cmd))
	if err != nil {
		return err
	}
	return runPicker(cmd, rt, req, nil)
}

// runPicker opens the picker. A nil wl is loaded by the picker itself.
func runPicker(cmd *cobra.Command, rt *Runtime, req driving.PublishRequest, wl domain.Worklist) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Worklist: rt.Worklist,
		Publish:  rt.Publish,
		Request:  req,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())
	if wl != nil {
		app.WithWorklist(wl)
	}

	if err := runProgram(cmd, app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	results := app.Results()
	if err := app.Err(); err != nil {
		if errors.Is(err, tui.ErrCancelled) {
			cmd.Println(i18n.T("Cancelled."))
			return nil
		}
		printSummary(cmd, results)
		return err
	}
	printSummary(cmd, results)
	return nil
}
