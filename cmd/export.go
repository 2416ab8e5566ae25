package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wikismart/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <content-file|->",
	Short: "Export generated text as a .txt or .pdf file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		title, _ := cmd.Flags().GetString("title")
		out, _ := cmd.Flags().GetString("out")

		renderer, err := export.ForFormat(format)
		if err != nil {
			return err
		}
		content, err := readInput(args[0])
		if err != nil {
			return err
		}
		data, err := renderer.Render(title, string(content))
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		if out == "" {
			out = export.Filename(title, renderer)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Println("Wrote", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "txt", "Output format: txt or pdf")
	exportCmd.Flags().String("title", "", "Document title")
	exportCmd.Flags().StringP("out", "o", "", "Output path (default derived from the title)")
}
