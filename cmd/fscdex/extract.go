package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanlabs/fscdex/internal/collab"
	"github.com/hanlabs/fscdex/internal/config"
	"github.com/hanlabs/fscdex/internal/logging"
	"github.com/hanlabs/fscdex/internal/pipeline"
)

var (
	extractMode   string
	extractPretty bool
)

// extractCmd runs the full extraction pipeline on one document
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract a structured decision record from a document",
	Long: `Extract a structured decision record from the plain text of an FSC
decision document. The result is printed as JSON.

Examples:
  # Extract from a file (filename metadata is used)
  fscdex extract "금융위 의결서 제2025-123호_과징금 부과.txt"

  # Extract from stdin
  pdftotext decision.pdf - | fscdex extract -

  # Rule-based extraction only, no collaborator calls
  fscdex extract --mode rule_only decision.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractMode, "mode", "", "pipeline mode: rule_only, hybrid or fallback_only (overrides config)")
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "indent the JSON output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, filename, err := readInput(args)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("no document text to extract")
	}

	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return err
	}
	if extractMode != "" {
		cfg.Pipeline.Mode = extractMode
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stdout sync failure is harmless on exit

	var collaborator collab.Collaborator
	if cfg.Pipeline.Mode != string(pipeline.RuleOnly) {
		collaborator, err = collab.NewGemini(cfg.Gemini)
		if err != nil {
			return err
		}
	}

	controller, err := pipeline.NewController(pipeline.Options{
		Mode:         pipeline.Mode(cfg.Pipeline.Mode),
		MaxRetries:   cfg.Pipeline.MaxRetries,
		Collaborator: collaborator,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	result, err := controller.Run(cmd.Context(), pipeline.Document{
		Filename: filename,
		Text:     text,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if extractPretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
