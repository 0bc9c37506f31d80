package main

import (
	"fmt"

	"eepromed/internal/edit"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newWriteCmd())
}

func newWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <image> <offset> <value>",
		Short: "Write one byte and save the edited image",
		Long: `The write command stores a hex byte value at a hex offset and saves the
result to the output file.

Example:
  eepromed write eeprom.bin 1F AB -o patched.bin`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
}

func runWrite(args []string) error {
	doc, err := edit.Open(args[0])
	if err != nil {
		return err
	}

	if !doc.Write(args[1], args[2]) {
		return fmt.Errorf("invalid offset %q or value %q", args[1], args[2])
	}
	offset, _ := doc.Selected()
	value, _ := doc.EditedByte(offset)

	out := outputFile()
	if err := doc.Save(out); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{"offset": offset, "value": value, "output": out})
	}
	printInfo("Wrote %02X at 0x%04X, saved to %s\n", value, offset, out)
	return nil
}
