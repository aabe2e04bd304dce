package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

var (
	settingsProvider     string
	settingsModel        string
	settingsBaseURL      string
	settingsAPIKey       string
	settingsAPIKeyPrompt bool
	settingsSkipValidate bool
	settingsTemperature  float64
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the catalog variant, AI providers and chat model.

Settings live in $LAPAK_HOME/config.toml; the chat model and temperature
live in $LAPAK_HOME/model.json.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsVariantCmd = &cobra.Command{
	Use:       "variant " + strings.Join(variantNames(), "|"),
	Short:     "Set the catalog variant",
	Args:      cobra.ExactArgs(1),
	ValidArgs: variantNames(),
	RunE:      runSettingsVariant,
}

var settingsModelCmd = &cobra.Command{
	Use:   "model",
	Short: "Show or set the chat model and temperature",
	Long: `Without flags, prints model.json. With --model and/or --temperature,
updates it. Temperature must be between 0 and 2; 0 is deterministic.`,
	Args: cobra.NoArgs,
	RunE: runSettingsModel,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long: `Configure the embedding provider used to index and retrieve catalog documents.

Without --provider an interactive prompt is shown. Changing the embedding
model invalidates the index; run 'lapak index --rebuild' afterwards.`,
	Args: cobra.NoArgs,
	RunE: runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure chat model provider",
	Long: `Configure the provider that answers questions. The model name itself is
set with 'lapak settings model'.

Without --provider an interactive prompt is shown.`,
	Args: cobra.NoArgs,
	RunE: runSettingsLLM,
}

func init() {
	settingsModelCmd.Flags().StringVar(&settingsModel, "model", "", "chat model name")
	settingsModelCmd.Flags().Float64Var(&settingsTemperature, "temperature", 0, "sampling temperature (0-2)")

	for _, c := range []*cobra.Command{settingsEmbeddingCmd, settingsLLMCmd} {
		c.Flags().StringVar(&settingsProvider, "provider", "", "provider: ollama, openai or anthropic")
		c.Flags().StringVar(&settingsBaseURL, "base-url", "", "API base URL (default per provider)")
		c.Flags().StringVar(&settingsAPIKey, "api-key", "", "API key for cloud providers")
		c.Flags().BoolVar(&settingsAPIKeyPrompt, "api-key-prompt", false, "read the API key from the terminal without echo")
		c.Flags().BoolVar(&settingsSkipValidate, "skip-validate", false, "do not contact the provider")
	}
	settingsEmbeddingCmd.Flags().StringVar(&settingsModel, "model", "", "embedding model name")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsVariantCmd)
	settingsCmd.AddCommand(settingsModelCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := loadSettings()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	model, err := svc.ModelConfig()
	if err != nil {
		return fmt.Errorf("failed to get model config: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Variant: %s\n", settings.Variant.Description())
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	printEndpoint(cmd, settings.Embedding.Provider, settings.Embedding.BaseURL, settings.Embedding.APIKey)
	cmd.Printf("  Status: %s\n", configuredLabel(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[Chat Model]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", model.Model)
	cmd.Printf("  Temperature: %g\n", model.Temperature)
	printEndpoint(cmd, settings.LLM.Provider, settings.LLM.BaseURL, settings.LLM.APIKey)
	cmd.Printf("  Status: %s\n", configuredLabel(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Printf("  Collection: %s\n", settings.Retrieval.Collection)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.AskRate > 0 {
		cmd.Printf("  Ask rate: %g/s\n", settings.Server.AskRate)
	} else {
		cmd.Println("  Ask rate: unlimited")
	}
	cmd.Println()

	cmd.Println("[Sensor]")
	cmd.Printf("  Address: %s\n", settings.Sensor.Addr)
	if settings.Sensor.MongoURI != "" {
		cmd.Println("  MongoDB: (set)")
	} else {
		cmd.Println("  MongoDB: (not set)")
	}
	cmd.Printf("  Collection: %s.%s\n", settings.Sensor.Database, settings.Sensor.Collection)

	return nil
}

func printEndpoint(cmd *cobra.Command, provider domain.AIProvider, baseURL, apiKey string) {
	if provider.IsLocal() || baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func runSettingsVariant(cmd *cobra.Command, args []string) error {
	svc, err := loadSettings()
	if err != nil {
		return err
	}

	variant := domain.Variant(strings.ToLower(args[0]))
	if err := svc.SetVariant(variant); err != nil {
		return fmt.Errorf("failed to set variant (choose %s): %w", strings.Join(variantNames(), " or "), err)
	}
	cmd.Printf("Catalog variant set to: %s\n", variant.Description())
	return nil
}

func variantNames() []string {
	variants := domain.AllVariants()
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.String()
	}
	return names
}

func runSettingsModel(cmd *cobra.Command, _ []string) error {
	svc, err := loadSettings()
	if err != nil {
		return err
	}

	cfg, err := svc.ModelConfig()
	if err != nil {
		return err
	}

	modelChanged := cmd.Flags().Changed("model")
	tempChanged := cmd.Flags().Changed("temperature")
	if !modelChanged && !tempChanged {
		cmd.Printf("Model: %s\n", cfg.Model)
		cmd.Printf("Temperature: %g\n", cfg.Temperature)
		return nil
	}

	if modelChanged {
		cfg.Model = strings.TrimSpace(settingsModel)
	}
	if tempChanged {
		cfg.Temperature = settingsTemperature
	}
	if err := svc.SetModelConfig(cfg); err != nil {
		return fmt.Errorf("failed to update model config: %w", err)
	}
	cmd.Printf("Chat model set to: %s (temperature %g)\n", cfg.Model, cfg.Temperature)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	svc, err := loadSettings()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	provider, err := chooseProvider(cmd, reader, "Select Embedding Provider", domain.AllEmbeddingProviders())
	if err != nil {
		return err
	}
	if !provider.SupportsEmbeddings() {
		return fmt.Errorf("%w: %s does not provide embeddings", domain.ErrInvalidInput, provider)
	}

	model := settingsModel
	if model == "" {
		defaultModel := domain.DefaultEmbeddingModels()[provider]
		if settingsProvider != "" {
			model = defaultModel
		} else {
			cmd.Printf("Enter model name [%s]: ", defaultModel)
			if model = readLine(reader); model == "" {
				model = defaultModel
			}
		}
	}

	apiKey, err := resolveAPIKey(cmd, reader, provider)
	if err != nil {
		return err
	}

	if err := svc.SetEmbeddingProvider(provider, model, settingsBaseURL, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}
	if err := validateProvider(cmd, svc.ValidateEmbeddingConfig); err != nil {
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	cmd.Println("Run 'lapak index --rebuild' if the model changed.")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	svc, err := loadSettings()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	provider, err := chooseProvider(cmd, reader, "Select Chat Model Provider", domain.AllLLMProviders())
	if err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(cmd, reader, provider)
	if err != nil {
		return err
	}

	if err := svc.SetLLMProvider(provider, settingsBaseURL, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}
	if err := validateProvider(cmd, svc.ValidateLLMConfig); err != nil {
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}

	cmd.Printf("Chat model provider configured: %s\n", provider.Description())
	if model, err := svc.ModelConfig(); err == nil && provider != domain.AIProviderOllama &&
		model.Model == domain.DefaultChatModel {
		cmd.Printf("Set a model for this provider, e.g. 'lapak settings model --model %s'\n",
			domain.DefaultLLMModels()[provider])
	}
	return nil
}

// chooseProvider returns --provider when given, otherwise prompts.
func chooseProvider(
	cmd *cobra.Command,
	reader *bufio.Reader,
	title string,
	providers []domain.AIProvider,
) (domain.AIProvider, error) {
	if settingsProvider != "" {
		p := domain.AIProvider(strings.ToLower(settingsProvider))
		if !p.IsValid() {
			return "", fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, settingsProvider)
		}
		return p, nil
	}

	cmd.Println(title)
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	return providers[idx-1], nil
}

// resolveAPIKey returns --api-key or prompts for it. Local providers need none.
func resolveAPIKey(cmd *cobra.Command, reader *bufio.Reader, provider domain.AIProvider) (string, error) {
	if !provider.RequiresAPIKey() {
		return "", nil
	}
	if settingsAPIKey != "" {
		return settingsAPIKey, nil
	}
	if settingsProvider != "" && !settingsAPIKeyPrompt {
		return "", fmt.Errorf("%s needs --api-key or --api-key-prompt", provider)
	}

	cmd.Print("Enter API key: ")
	apiKey := readPassword(cmd.InOrStdin(), reader)
	cmd.Println()
	if apiKey == "" {
		return "", errors.New("API key is required for this provider")
	}
	return apiKey, nil
}

func validateProvider(cmd *cobra.Command, validate func() error) error {
	if settingsSkipValidate {
		return nil
	}
	cmd.Print("Validating configuration... ")
	if err := validate(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return err
	}
	cmd.Println("OK")
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

// readPassword reads without echo from a terminal, otherwise a plain line.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
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
