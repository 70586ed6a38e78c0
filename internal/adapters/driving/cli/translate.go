package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
	"github.com/speaktech/transqiita/internal/i18n"
)

var translateCmd = &cobra.Command{
	Use:   "translate [index...]",
	Short: "Translate articles and publish the translations",
	Long: `Translate articles from the worklist and publish them.

Indexes are the numbers shown by 'transqiita list'. Without indexes the
interactive picker opens when stdin is a terminal.

NEW articles are created as new posts. UPDATED articles overwrite the
existing translation in place.

Examples:
  transqiita translate 1 3
  transqiita translate --all --yes
  transqiita translate --auto --private`,
	RunE: runTranslate,
}

// stdinIsTerminal reports whether prompts and the picker can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	addPublishFlags(translateCmd)
	translateCmd.Flags().Bool("all", false, "Translate every listed article")
	translateCmd.Flags().Bool("auto", false, "Translate every listed article without prompting")
	translateCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(translateCmd)
}

// addPublishFlags registers the flags shared by commands that publish.
func addPublishFlags(c *cobra.Command) {
	c.Flags().Bool("gist", false, "Mirror code blocks of new articles into a gist")
	c.Flags().Bool("tweet", false, "Announce new articles")
	c.Flags().Bool("private", false, "Publish translations as private")
	c.Flags().Bool("dry-run", false, "Translate without publishing")
	c.Flags().Bool("keep-going", false, "Continue past failed articles")
	c.Flags().String("token", "", "Repository access token (overrides config and environment)")
}

// publishRequest merges configured publish defaults with explicit flags.
func publishRequest(cmd *cobra.Command) (driving.PublishRequest, error) {
	var req driving.PublishRequest
	if services != nil && services.Settings != nil {
		settings, err := services.Settings.Get()
		if err != nil {
			return req, fmt.Errorf("load settings: %w", err)
		}
		req.Options = settings.Publish
	}

	flags := cmd.Flags()
	targets := []struct {
		name string
		dst  *bool
	}{
		{"gist", &req.Options.Gist},
		{"tweet", &req.Options.Tweet},
		{"private", &req.Options.Private},
		{"dry-run", &req.DryRun},
		{"keep-going", &req.KeepGoing},
	}
	for _, t := range targets {
		if flags.Lookup(t.name) == nil || !flags.Changed(t.name) {
			continue
		}
		v, err := flags.GetBool(t.name)
		if err != nil {
			return req, err
		}
		*t.dst = v
	}
	return req, nil
}

func tokenFlag(cmd *cobra.Command) string {
	token, _ := cmd.Flags().GetString("token") //nolint:errcheck // registered by addPublishFlags
	return token
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()
	all, _ := flags.GetBool("all")   //nolint:errcheck // registered in init
	auto, _ := flags.GetBool("auto") //nolint:errcheck // registered in init
	yes, _ := flags.GetBool("yes")   //nolint:errcheck // registered in init

	req, err := publishRequest(cmd)
	if err != nil {
		return err
	}

	rt, err := openRuntime(ctx, tokenFlag(cmd))
	if err != nil {
		return err
	}

	wl, err := rt.Worklist.Build(ctx)
	if err != nil {
		return fmt.Errorf("build worklist: %w", err)
	}
	if len(wl) == 0 {
		cmd.Println(i18n.T("Nothing to translate."))
		return nil
	}

	var chosen domain.Worklist
	switch {
	case len(args) > 0:
		chosen, err = selectIndexes(wl, args)
		if err != nil {
			return err
		}
	case all || auto:
		chosen = wl
	case stdinIsTerminal():
		return runPicker(cmd, rt, req, wl)
	default:
		return errors.New(i18n.T("no articles selected: pass indexes, --all or --auto"))
	}

	if !yes && !auto && !req.DryRun {
		if !confirm(cmd, chosen) {
			cmd.Println(i18n.T("Cancelled."))
			return nil
		}
	}

	results, err := rt.Publish.PublishAll(ctx, chosen, req, printProgress(cmd, chosen))
	printSummary(cmd, results)
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}
	return nil
}

// selectIndexes resolves 1-based indexes against wl, dropping duplicates.
func selectIndexes(wl domain.Worklist, args []string) (domain.Worklist, error) {
	seen := make(map[int]bool, len(args))
	chosen := make(domain.Worklist, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 1 || n > len(wl) {
			return nil, fmt.Errorf("%w: index %q (1-%d)", domain.ErrInvalidInput, arg, len(wl))
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		chosen = append(chosen, wl[n-1])
	}
	return chosen, nil
}

// confirm asks y/n on the command's input. EOF counts as no.
func confirm(cmd *cobra.Command, chosen domain.Worklist) bool {
	for i, item := range chosen {
		cmd.Println(domain.ListLine(i, item))
	}
	cmd.Print(i18n.N("Translate %d article? [y/n]", "Translate %d articles? [y/n]", len(chosen), len(chosen)) + " ")

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		cmd.Println()
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printProgress(cmd *cobra.Command, items domain.Worklist) driving.ProgressFunc {
	return func(index, total int, result *domain.PublishResult, err error) {
		if err != nil {
			title := ""
			if index < len(items) {
				title = items[index].Article.Title
			}
			cmd.Printf("[%d/%d] (FAILED) %s: %v\n", index+1, total, title, err)
			return
		}
		cmd.Println(domain.ProgressLine(index, total, *result))
	}
}

func printSummary(cmd *cobra.Command, results []domain.PublishResult) {
	if len(results) == 0 {
		return
	}
	if results[0].DryRun {
		for _, r := range results {
			cmd.Printf("\n# %s\n\n%s\n", r.Draft.Title, r.Draft.Body)
		}
		return
	}
	cmd.Println(i18n.N("%d article published.", "%d articles published.", len(results), len(results)))
	for _, r := range results {
		if r.Published.URL != "" {
			cmd.Printf("  %s\n", r.Published.URL)
		}
	}
}
