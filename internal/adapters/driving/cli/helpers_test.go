package cli

import (
	"bytes"
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lapak/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
	"github.com/custodia-labs/lapak/internal/core/ports/driving"
	"github.com/custodia-labs/lapak/internal/core/services"
)

// fakeEmbedder hashes words into a small vector so similar texts share dimensions.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, 16)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		v[h.Sum32()%16]++
	}
	v[0] += 0.01
	return v, nil
}

func (e fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = e.Embed(ctx, t)
	}
	return out, nil
}

func (fakeEmbedder) Dimensions() int              { return 16 }
func (fakeEmbedder) ModelName() string            { return "fake-embed" }
func (fakeEmbedder) Ping(_ context.Context) error { return nil }
func (fakeEmbedder) Close() error                 { return nil }

// fakeLLM returns a fixed reply and records the prompt it received.
type fakeLLM struct {
	reply  string
	err    error
	prompt string
}

func (l *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	l.prompt = prompt
	return l.reply, l.err
}

func (l *fakeLLM) ModelName() string            { return "fake-chat" }
func (l *fakeLLM) Ping(_ context.Context) error { return nil }
func (l *fakeLLM) Close() error                 { return nil }

type fakePrompts struct{}

func (fakePrompts) Load(_ string) (string, error) {
	return "Context:\n{context}\n\nQuestion: {question}", nil
}

func (fakePrompts) Reload() {}

// testEnv wires real services over in-memory adapters.
type testEnv struct {
	llm      *fakeLLM
	vectors  *memory.VectorIndex
	config   *memory.ConfigStore
	models   *memory.ModelConfigStore
	services *Services
	settings *services.SettingsService
}

func newTestEnv(t *testing.T, variant domain.Variant) *testEnv {
	t.Helper()

	seed, err := domain.SeedFor(variant)
	require.NoError(t, err)

	store := memory.NewCatalogStore()
	catalog := services.NewCatalogService(store, variant)
	require.NoError(t, store.Initialize(context.Background(), seed))

	env := &testEnv{
		llm:     &fakeLLM{reply: "Details: Baju Kemeja\nItem stock available."},
		vectors: memory.NewVectorIndex(),
		config:  memory.NewConfigStore(),
		models:  memory.NewModelConfigStore(),
	}
	env.settings = services.NewSettingsService(env.config, env.models, nil)

	assistant := services.NewAssistantService(variant, fakeEmbedder{}, env.vectors, env.llm, fakePrompts{}, env.models)
	env.services = &Services{
		Catalog:   catalog,
		Assistant: assistant,
		Index:     services.NewIndexService(catalog, fakeEmbedder{}, env.vectors),
		Settings:  env.settings,
		Addr:      "127.0.0.1:0",
	}

	origServices, origSettings := loadServices, loadSettings
	loadServices = func(context.Context) (*Services, error) { return env.services, nil }
	loadSettings = func() (driving.SettingsService, error) { return env.settings, nil }
	t.Cleanup(func() {
		loadServices, loadSettings = origServices, origSettings
	})
	return env
}

// executeCommand runs the root command with args and returns its output.
// Flags are reset first so values do not leak between runs.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

var errBoom = errors.New("boom")
