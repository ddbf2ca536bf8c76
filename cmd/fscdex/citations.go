package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanlabs/fscdex/internal/lawcite"
	"github.com/hanlabs/fscdex/internal/lawreg"
)

var citationsJSON bool

// citationsCmd parses legal citations without running the pipeline
var citationsCmd = &cobra.Command{
	Use:   "citations [file]",
	Short: "Parse legal citations from a document",
	Long: `Parse the legal basis citations of a decision document. By default each
citation is printed on its own line in canonical form.

Examples:
  # List citations from a file
  fscdex citations decision.txt

  # Machine-readable output
  cat decision.txt | fscdex citations --json -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCitations,
}

func init() {
	citationsCmd.Flags().BoolVar(&citationsJSON, "json", false, "print citations as a JSON array")
}

func runCitations(cmd *cobra.Command, args []string) error {
	text, _, err := readInput(args)
	if err != nil {
		return err
	}

	registry, err := lawreg.LoadDefault()
	if err != nil {
		return err
	}
	citations := lawcite.NewParser(registry).ParseDocument(text)

	if citationsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(citations)
	}

	if len(citations) == 0 {
		return fmt.Errorf("no citations found")
	}
	for _, c := range citations {
		fmt.Println(c.String())
	}
	return nil
}
