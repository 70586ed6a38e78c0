package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/i18n"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles that need translating",
	Long: `List the articles that have no translated sibling (NEW) or whose
translation is older than the original (UPDATED).

The numbers in brackets are the indexes accepted by 'transqiita translate'.`,
	RunE: runList,
}

var (
	listJSON  bool
	listToken string
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the worklist as JSON")
	listCmd.Flags().StringVar(&listToken, "token", "", "Repository access token (overrides config and environment)")
	rootCmd.AddCommand(listCmd)
}

type listEntry struct {
	Index       int    `json:"index"`
	Disposition string `json:"disposition"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	SiblingID   string `json:"sibling_id,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(cmd.Context(), listToken)
	if err != nil {
		return err
	}

	wl, err := rt.Worklist.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build worklist: %w", err)
	}

	if listJSON {
		entries := make([]listEntry, 0, len(wl))
		for i, item := range wl {
			entries = append(entries, listEntry{
				Index:       i + 1,
				Disposition: item.Disposition.Label(),
				ID:          item.Article.ID,
				Title:       item.Article.Title,
				URL:         item.Article.URL,
				SiblingID:   item.SiblingID,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(wl) == 0 {
		cmd.Println(i18n.T("Nothing to translate."))
		return nil
	}
	for i, item := range wl {
		cmd.Println(domain.ListLine(i, item))
	}
	newCount, staleCount := wl.Counts()
	cmd.Println()
	cmd.Println(i18n.T("%d new, %d updated", newCount, staleCount))
	return nil
}
