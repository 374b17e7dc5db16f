package main

import (
	"github.com/spf13/cobra"

	"github.com/kolharsam/folio"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Render the published site as static files into dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			app := folio.New(cfg)
			defer app.Close()
			return app.Export(cmd.Context(), args[0])
		},
	}
}
