package main

import (
	"github.com/spf13/cobra"

	"github.com/kolharsam/folio"
	"github.com/kolharsam/folio/internal/log"
)

type rootOptions struct {
	envFile  string
	logLevel string
	pretty   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "folio",
		Short: "folio - a markdown blog engine with comments and music embeds",
		Long: `folio turns a directory of markdown posts and pages into a blog.

It serves the site with an admin area, or exports it as static files.
Settings come from the environment and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Configure(log.Config{Level: opts.logLevel, Pretty: opts.pretty})
		},
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load if present")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (default $LOG_LEVEL or info)")
	cmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "human-readable log output")

	cmd.AddCommand(
		newServeCmd(opts),
		newExportCmd(opts),
		newNewCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) config() (folio.SiteConfig, error) {
	return folio.LoadConfig(o.envFile)
}
