package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/speaktech/transqiita/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and configure application settings",
	Long: `View and configure transqiita settings.

Without a subcommand, shows current settings.

Credentials may also come from the environment (QIITA_ACCESS_TOKEN,
GITHUB_TOKEN, GOOGLE_TRANSLATE_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY),
which take precedence over the config file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsTranslatorCmd = &cobra.Command{
	Use:   "translator",
	Short: "Configure the translation backend",
	RunE:  runSettingsTranslator,
}

var settingsTargetCmd = &cobra.Command{
	Use:   "target <language>",
	Short: "Set the language translations are produced in",
	Long: `Set the target language, e.g. "en". Region subtags are dropped,
so "en-US" is stored as "en".`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsTarget,
}

var settingsRepositoryCmd = &cobra.Command{
	Use:   "repository",
	Short: "Configure where articles are read from and published to",
	RunE:  runSettingsRepository,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsTranslatorCmd)
	settingsCmd.AddCommand(settingsTargetCmd)
	settingsCmd.AddCommand(settingsRepositoryCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsSvc()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("Translator:")
	cmd.Printf("  Provider: %s\n", settings.Translator.Provider.Description())
	if settings.Translator.Provider.IsLLM() {
		cmd.Printf("  Model: %s\n", settings.Translator.Model)
	}
	if settings.Translator.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Translator.BaseURL)
	}
	if settings.Translator.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Translator.APIKey))
	}
	cmd.Printf("  Target language: %s\n", settings.Translator.TargetLanguage)
	cmd.Printf("  Max chunk size: %d\n", settings.Translator.MaxChunkSize)
	if settings.Translator.RequestsPerSecond > 0 {
		cmd.Printf("  Requests per second: %g\n", settings.Translator.RequestsPerSecond)
	}
	cmd.Println()

	cmd.Println("Repository:")
	cmd.Printf("  Kind: %s\n", settings.Repository.Kind.Description())
	switch {
	case settings.Repository.Kind == domain.RepositoryLocal:
		cmd.Printf("  Directory: %s\n", settings.Repository.Directory)
	case settings.Repository.Kind.RequiresToken():
		cmd.Printf("  Token: %s\n", maskAPIKey(settings.Repository.Token))
		if settings.Repository.BaseURL != "" {
			cmd.Printf("  Base URL: %s\n", settings.Repository.BaseURL)
		}
	}
	cmd.Println()

	cmd.Println("Publishing:")
	cmd.Printf("  Private: %s\n", yesNo(settings.Publish.Private))
	cmd.Printf("  Gist: %s\n", yesNo(settings.Publish.Gist))
	cmd.Printf("  Tweet: %s\n", yesNo(settings.Publish.Tweet))
	cmd.Printf("  Processors: %s\n", strings.Join(settings.Pipeline.Processors, ", "))
	cmd.Println()

	cmd.Println("Schedule:")
	cmd.Printf("  Cron: %s\n", settings.Schedule.Cron)
	cmd.Printf("  Keep going: %s\n", yesNo(settings.Schedule.KeepGoing))
	cmd.Println()

	if err := svc.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'transqiita settings translator' or 'transqiita settings repository' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsTranslator(cmd *cobra.Command, _ []string) error {
	svc, err := settingsSvc()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Translator")
	providers := domain.AllTranslatorProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	var model string
	if provider.IsLLM() {
		defaultModel := domain.DefaultLLMModels()[provider]
		cmd.Printf("Enter model name [%s]: ", defaultModel)
		model = readLine(reader)
		if model == "" {
			model = defaultModel
		}
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key (empty keeps the current one): ")
		apiKey = readPassword(reader)
		cmd.Println()
	}

	cmd.Print("Validating configuration... ")
	if err := svc.SetTranslator(provider, model, apiKey); err != nil {
		cmd.Println("FAILED")
		return fmt.Errorf("failed to configure translator: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Translator configured: %s\n", provider.Description())
	return nil
}

func runSettingsTarget(cmd *cobra.Command, args []string) error {
	svc, err := settingsSvc()
	if err != nil {
		return err
	}

	if err := svc.SetTargetLanguage(args[0]); err != nil {
		return fmt.Errorf("failed to set target language: %w", err)
	}
	cmd.Printf("Target language set to: %s\n", domain.BaseLanguageCode(args[0]))
	return nil
}

func runSettingsRepository(cmd *cobra.Command, _ []string) error {
	svc, err := settingsSvc()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Repository")
	kinds := domain.AllRepositoryKinds()
	for i, k := range kinds {
		cmd.Printf("  %d. %s\n", i+1, k.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(kinds), 1)
	kind := kinds[idx-1]

	if kind == domain.RepositoryLocal {
		cmd.Print("Enter article directory: ")
	} else {
		cmd.Print("Enter API base URL (empty for the default): ")
	}
	location := readLine(reader)

	if err := svc.SetRepository(kind, location); err != nil {
		return fmt.Errorf("failed to configure repository: %w", err)
	}
	cmd.Printf("Repository configured: %s\n", kind.Description())

	if kind.RequiresToken() {
		cmd.Println("Set the access token with the environment variable or --token.")
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when stdin is a terminal, otherwise a
// plain line from reader.
func readPassword(reader *bufio.Reader) string {
	if stdinIsTerminal() {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
