package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/classpulse/classpulse/internal/api"
	"github.com/classpulse/classpulse/internal/model"
	"github.com/classpulse/classpulse/internal/pipeline"
	"github.com/classpulse/classpulse/internal/relevance"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the processing pipeline as an HTTP service",
	Long: `Serve starts an HTTP server that accepts session artifacts as multipart
uploads on POST /api/process and returns the enriched timeline as JSON.

The transcript and chat fields are required. The ngrams, lesson and roster
fields are optional and enable categorization, relevancy scoring and roster
attachment respectively.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Server.Port = servePort
	cfg.Output.Verbose = verbose

	if p := viper.GetInt("server.port"); p != 0 {
		cfg.Server.Port = p
	}
	if provider := viper.GetString("relevance.provider"); provider != "" {
		cfg.Relevance.Provider = provider
	}
	if embedModel := viper.GetString("relevance.model"); embedModel != "" {
		cfg.Relevance.Model = embedModel
	}
	if baseURL := viper.GetString("relevance.base_url"); baseURL != "" {
		cfg.Relevance.BaseURL = baseURL
	}
	cfg.Relevance.APIKey = os.Getenv("OPENAI_API_KEY")

	log := newLogger()

	// Scoring stays available for uploads that include a lesson field, as
	// long as a provider could be configured.
	embedder, err := relevance.NewEmbedder(cfg.Relevance, cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("embedding provider unavailable, relevancy scoring disabled")
		embedder = nil
	}

	p := pipeline.New(cfg, embedder, log)
	server := api.NewServer(cfg.Server.Port, p, log)

	fmt.Printf("Listening on :%d\n", cfg.Server.Port)
	return server.Start()
}
