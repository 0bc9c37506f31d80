package main

import (
	"fmt"

	"eepromed/internal/edit"
	"eepromed/internal/pattern"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSearchCmd())
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <image> <b1> [b2] [b3] [b4]",
		Short: "Find a 1-4 byte hex pattern",
		Long: `The search command prints every offset covered by an occurrence of the
pattern. Overlapping occurrences are all reported. Pass "" for an unset slot.

Example:
  eepromed search eeprom.bin AA 55
  eepromed search eeprom.bin 0x12 34 --json`,
		Args: cobra.RangeArgs(2, 1+pattern.MaxLen),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args)
		},
	}
}

type SearchResult struct {
	Pattern string `json:"pattern"`
	Starts  []int  `json:"starts"`
	Offsets []int  `json:"offsets"`
}

func runSearch(args []string) error {
	var tokens [pattern.MaxLen]string
	copy(tokens[:], args[1:])

	p, err := pattern.Parse(tokens)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	doc, err := edit.Open(args[0])
	if err != nil {
		return err
	}

	matches := doc.SearchPattern(p)
	result := SearchResult{
		Pattern: p.String(),
		Starts:  jsonInts(doc.MatchStarts()),
		Offsets: jsonInts(matches.Offsets()),
	}

	if jsonOut {
		return printJSON(result)
	}

	printInfo("Pattern: %s\n", result.Pattern)
	printInfo("Matches: %d\n", len(result.Starts))
	printInfo("Starts:  %s\n", formatOffsets(result.Starts))
	printInfo("Offsets: %s\n", formatOffsets(result.Offsets))
	return nil
}
