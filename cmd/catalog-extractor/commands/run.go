package commands

import (
	"github.com/spf13/cobra"

	"github.com/spherical/catalog-extractor/cmd/catalog-extractor/ui"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <pdf>",
		Short: "Extract a PDF catalogue and build the products in one go",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Section("PDF Extraction")
			if _, err := runExtract(cmd, args[0]); err != nil {
				return err
			}

			ui.Section("Catalogue Build")
			_, err := runBuild(cmd)
			return err
		},
	}
}
