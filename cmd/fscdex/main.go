// Package main implements the fscdex CLI for extracting structured
// records from FSC sanction decision documents.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	// configPath overrides the default config file location
	configPath string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fscdex",
	Short: "Extract structured records from FSC decision documents",
	Long: `fscdex turns Financial Services Commission sanction decision documents
into structured records: decision metadata, sanction targets, fine
amounts, legal citations and violation findings.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/fscdex/config.yaml)")
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(citationsCmd)
	rootCmd.AddCommand(amountCmd)
	rootCmd.AddCommand(lawsCmd)
}

// readInput reads document text from the named file or from stdin when
// the argument is missing or "-". The returned filename is what the
// metadata parser sees, so piping loses filename-derived fields.
func readInput(args []string) (text, filename string, err error) {
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), "", nil
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	return string(content), filepath.Base(args[0]), nil
}
