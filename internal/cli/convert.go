package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/otelviz/pkg/io"
)

// convertCommand creates the convert command, which re-encodes description
// files between YAML, JSON and TOML.
func (c *CLI) convertCommand() *cobra.Command {
	var output, to string

	cmd := &cobra.Command{
		Use:   "convert [file|dir]...",
		Short: "Convert diagram descriptions between YAML, JSON and TOML",
		Long: `Convert validates diagram descriptions and writes them back out in one
encoding. Several diagrams are written as a "diagrams:" bundle.

With --output the encoding follows the file extension; otherwise the result
is printed in the --to encoding.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadDocuments(args)
			if err != nil {
				return err
			}
			if output != "" {
				if err := io.ExportFile(output, docs...); err != nil {
					return err
				}
				printSuccess("Wrote %d diagram(s)", len(docs))
				printFile(output)
				return nil
			}

			format, err := io.ParseFormat(to)
			if err != nil {
				return err
			}
			return io.Write(cmd.OutOrStdout(), format, docs...)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.yaml, .yml, .json or .toml)")
	cmd.Flags().StringVar(&to, "to", string(io.FormatYAML), "encoding for stdout: yaml, json, toml")

	return cmd
}
