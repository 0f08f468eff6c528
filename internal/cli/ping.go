package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/hearsay-nlp/hearsay/internal/model"
	"github.com/hearsay-nlp/hearsay/internal/pipeline"
	"github.com/spf13/cobra"
)

var pingTimeout time.Duration

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the annotation service is reachable",
	Long: `Ping sends a health check to the configured annotation service.

Example:
  hearsay ping
  hearsay ping --service http://localhost:8090`,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().StringVar(&serviceURL, "service", "", "annotation service base URL (default from config)")
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 10*time.Second, "health check timeout")
}

func runPing(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	if serviceURL != "" {
		cfg.Annotate.BaseURL = serviceURL
	}
	cfg.Cache.Enabled = false

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if err := p.PingAnnotator(ctx); err != nil {
		return fmt.Errorf("annotation service unreachable: %w", err)
	}

	fmt.Printf("✓ Annotation service reachable: %s\n", cfg.Annotate.BaseURL)
	return nil
}
