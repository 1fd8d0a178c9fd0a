package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/classpulse/classpulse/internal/model"
	"github.com/classpulse/classpulse/internal/pipeline"
	"github.com/classpulse/classpulse/internal/relevance"
)

var (
	vttPath     string
	chatPath    string
	outputPath  string
	ngramsPath  string
	lessonPath  string
	rosterPath  string
	provider    string
	embedModel  string
	baseURL     string
	timeout     time.Duration
	workers     int
	noCache     bool
	cacheDir    string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Parse a session's transcript and chat log into an enriched timeline CSV",
	Long: `Process parses the caption transcript (VTT) and chat log of one recorded
session, merges both into a single time-ordered timeline, and writes it as CSV.

With an n-gram rule table each utterance is tagged with a topical category.
With a reference document (e.g., a lesson plan) each utterance is scored for
relevance using the configured embedding provider.

Example:
  classpulse process --vtt transcript.vtt --chat chat_log.txt --output timeline.csv
  classpulse process --vtt transcript.vtt --chat chat_log.txt --output timeline.csv \
    --ngrams ngrams.csv --lesson lesson_plan.txt`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Input/output flags
	processCmd.Flags().StringVar(&vttPath, "vtt", "", "path to the VTT caption transcript (required)")
	processCmd.Flags().StringVar(&chatPath, "chat", "", "path to the chat log (required)")
	processCmd.Flags().StringVar(&outputPath, "output", "", "path to the output CSV (required)")
	processCmd.Flags().StringVar(&ngramsPath, "ngrams", "", "optional path to the n-gram rule table CSV")
	processCmd.Flags().StringVar(&lessonPath, "lesson", "", "optional path to a reference document for relevancy scoring")
	processCmd.Flags().StringVar(&rosterPath, "roster", "", "optional path to a participant roster")
	_ = processCmd.MarkFlagRequired("vtt")
	_ = processCmd.MarkFlagRequired("chat")
	_ = processCmd.MarkFlagRequired("output")

	// Embedding provider flags
	processCmd.Flags().StringVar(&provider, "provider", "openai", "embedding provider (openai, ollama)")
	processCmd.Flags().StringVar(&embedModel, "model", "text-embedding-3-small", "embedding model name")
	processCmd.Flags().StringVar(&baseURL, "base-url", "", "custom embedding endpoint (e.g., Ollama)")
	processCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request embedding timeout")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the embedding cache")
	processCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "embedding cache directory (default: $HOME/.classpulse/cache)")

	// Concurrency flags
	processCmd.Flags().IntVar(&workers, "workers", 4, "annotation worker count")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := buildConfig()

	inputs := pipeline.Inputs{}

	vtt, err := os.Open(vttPath)
	if err != nil {
		return fmt.Errorf("open captions: %w", err)
	}
	defer vtt.Close()
	inputs.Captions = vtt

	chat, err := os.Open(chatPath)
	if err != nil {
		return fmt.Errorf("open chat log: %w", err)
	}
	defer chat.Close()
	inputs.Chat = chat

	if ngramsPath != "" {
		ngrams, err := os.Open(ngramsPath)
		if err != nil {
			return fmt.Errorf("open rule table: %w", err)
		}
		defer ngrams.Close()
		inputs.Rules = ngrams
	}

	if rosterPath != "" {
		roster, err := os.Open(rosterPath)
		if err != nil {
			return fmt.Errorf("open roster: %w", err)
		}
		defer roster.Close()
		inputs.Roster = roster
	}

	var embedder relevance.Embedder
	if lessonPath != "" {
		lesson, err := os.Open(lessonPath)
		if err != nil {
			return fmt.Errorf("open reference document: %w", err)
		}
		defer lesson.Close()
		inputs.Reference = lesson

		embedder, err = relevance.NewEmbedder(cfg.Relevance, cfg.Cache)
		if err != nil {
			return fmt.Errorf("configure embedding provider: %w", err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "Embedding provider: %s/%s\n", embedder.Name(), embedder.Model())
		}
	}

	p := pipeline.New(cfg, embedder, newLogger())

	tl, err := p.Run(ctx, inputs)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Merged %d utterances from %d speakers\n", len(tl.Entries), len(tl.Speakers))
		if tl.Categorized {
			fmt.Fprintln(os.Stderr, "Categories assigned from rule table")
		}
		if tl.Scored {
			fmt.Fprintln(os.Stderr, "Relevancy scored against reference document")
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := pipeline.WriteCSV(out, tl); err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}

	fmt.Printf("Timeline written to %s\n", outputPath)
	return nil
}

// buildConfig merges defaults with flags and environment
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	cfg.Relevance.Provider = provider
	cfg.Relevance.Model = embedModel
	cfg.Relevance.BaseURL = baseURL
	cfg.Relevance.Timeout = timeout
	cfg.Concurrency.AnnotationWorkers = workers
	cfg.Output.Verbose = verbose

	switch provider {
	case "openai":
		cfg.Relevance.APIKey = os.Getenv("OPENAI_API_KEY")
	case "ollama":
		if url := os.Getenv("OLLAMA_BASE_URL"); url != "" && baseURL == "" {
			cfg.Relevance.BaseURL = url
		}
	}

	cfg.Cache.Enabled = !noCache
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	} else if home, err := os.UserHomeDir(); err == nil {
		cfg.Cache.Dir = home + "/.classpulse/cache"
	}

	return cfg
}
