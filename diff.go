package main

import (
	"eepromed/internal/buffer"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDiffCmd())
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <image1> <image2>",
		Short: "List the bytes that differ between two images",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
}

type ByteChange struct {
	Offset int  `json:"offset"`
	Old    byte `json:"old"`
	New    byte `json:"new"`
}

func runDiff(args []string) error {
	a, err := buffer.Load(args[0])
	if err != nil {
		return err
	}
	b, err := buffer.Load(args[1])
	if err != nil {
		return err
	}

	changes := []ByteChange{}
	for _, o := range buffer.Diff(a, b) {
		changes = append(changes, ByteChange{Offset: o, Old: a[o], New: b[o]})
	}

	if jsonOut {
		return printJSON(changes)
	}

	for _, c := range changes {
		printInfo("0x%04X: %02X -> %02X\n", c.Offset, c.Old, c.New)
	}
	printInfo("%d byte(s) differ\n", len(changes))
	return nil
}
