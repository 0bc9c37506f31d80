package main

import (
	"fmt"
	"strings"

	"eepromed/internal/edit"
	"eepromed/internal/pattern"

	"github.com/spf13/cobra"
)

var (
	replaceFind string
	replaceWith string
	replaceDry  bool
)

func init() {
	cmd := newReplaceCmd()
	cmd.Flags().StringVar(&replaceFind, "find", "", "Comma separated pattern to search for, e.g. 01,02")
	cmd.Flags().StringVar(&replaceWith, "with", "", "Comma separated replacement; unset slots write 00")
	cmd.Flags().BoolVar(&replaceDry, "dry-run", false, "Report matches without saving")
	_ = cmd.MarkFlagRequired("find")
	rootCmd.AddCommand(cmd)
}

func newReplaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replace <image> --find b1[,b2..] --with b1[,b2..]",
		Short: "Replace every occurrence of a 1-4 byte pattern",
		Long: `The replace command locates every occurrence of the find pattern, then
overwrites each one with the replacement, slot by slot, and saves the result
to the output file. Empty slots in --with write 00.

Example:
  eepromed replace eeprom.bin --find 01,02 --with 03,04
  eepromed replace eeprom.bin --find FF --with 00 -o cleared.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(args)
		},
	}
}

type ReplaceResult struct {
	Find    string `json:"find"`
	With    string `json:"with"`
	Starts  []int  `json:"starts"`
	Offsets []int  `json:"offsets"`
	Output  string `json:"output,omitempty"`
}

// splitTokens splits a comma separated list into pattern slots. Empty
// elements stay unset.
func splitTokens(s string) ([pattern.MaxLen]string, error) {
	var tokens [pattern.MaxLen]string
	if s == "" {
		return tokens, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > pattern.MaxLen {
		return tokens, fmt.Errorf("at most %d bytes, got %d", pattern.MaxLen, len(parts))
	}
	copy(tokens[:], parts)
	return tokens, nil
}

func runReplace(args []string) error {
	findTokens, err := splitTokens(replaceFind)
	if err != nil {
		return fmt.Errorf("--find: %w", err)
	}
	withTokens, err := splitTokens(replaceWith)
	if err != nil {
		return fmt.Errorf("--with: %w", err)
	}
	find, err := pattern.Parse(findTokens)
	if err != nil {
		return fmt.Errorf("--find: %w", err)
	}
	with, err := pattern.Parse(withTokens)
	if err != nil {
		return fmt.Errorf("--with: %w", err)
	}
	if find.Len() == 0 {
		return fmt.Errorf("--find: empty pattern")
	}

	doc, err := edit.Open(args[0])
	if err != nil {
		return err
	}

	matches := doc.ReplacePattern(find, with)
	result := ReplaceResult{
		Find:    find.String(),
		With:    with.String(),
		Starts:  jsonInts(doc.MatchStarts()),
		Offsets: jsonInts(matches.Offsets()),
	}

	if !replaceDry {
		result.Output = outputFile()
		if err := doc.Save(result.Output); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(result)
	}

	printInfo("Replaced %d match(es) of %s with %s\n", len(result.Starts), result.Find, result.With)
	printInfo("Starts:  %s\n", formatOffsets(result.Starts))
	if result.Output != "" {
		printInfo("Saved to %s\n", result.Output)
	}
	return nil
}
