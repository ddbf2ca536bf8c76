package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hanlabs/fscdex/internal/lawreg"
)

// lawsCmd inspects the bundled law-name registry
var lawsCmd = &cobra.Command{
	Use:   "laws [name]",
	Short: "List registry laws or normalize a raw law name",
	Long: `Without arguments, list every law in the bundled registry with its
canonical short name. With an argument, normalize that raw law name.

Examples:
  fscdex laws
  fscdex laws "자본시장과 금융투자업에 관한 법률 시행령"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLaws,
}

func runLaws(cmd *cobra.Command, args []string) error {
	registry, err := lawreg.LoadDefault()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		fmt.Println(registry.Normalize(args[0]))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, rec := range registry.Records() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.ShortName, rec.Type, rec.CanonicalName)
	}
	return w.Flush()
}
