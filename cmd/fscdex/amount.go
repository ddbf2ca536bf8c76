package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanlabs/fscdex/internal/amount"
)

// amountCmd normalizes Korean monetary expressions
var amountCmd = &cobra.Command{
	Use:   "amount <expression>...",
	Short: "Normalize a Korean monetary expression to won",
	Long: `Normalize a Korean monetary expression to an integer number of won.
When the argument is a full sentence, the largest amount found wins.

Examples:
  fscdex amount "46억 5,760만원"
  fscdex amount "과징금 9.8백만원을 부과한다"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAmount,
}

func runAmount(cmd *cobra.Command, args []string) error {
	expr := strings.Join(args, " ")

	if v, ok := amount.Normalize(expr); ok {
		fmt.Println(v)
		return nil
	}
	if v, ok := amount.BestCandidate(expr); ok {
		fmt.Println(v)
		return nil
	}
	return fmt.Errorf("no monetary amount found in %q", expr)
}
