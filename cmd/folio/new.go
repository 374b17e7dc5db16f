package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kolharsam/folio"
	"github.com/kolharsam/folio/scaffold"
)

func newNewCmd(root *rootOptions) *cobra.Command {
	var slug string
	cmd := &cobra.Command{
		Use:       "new post|page <title>",
		Short:     "Create a markdown file for a new post or page",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{"post", "page"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			if slug == "" {
				slug = folio.Slugify(title)
			}
			entry, err := scaffold.NewEntry(args[0], title, slug, time.Now())
			if err != nil {
				return err
			}

			path := filepath.Join(cfg.ContentDir, filepath.FromSlash(entry.Path()))
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := scaffold.Render(f, entry); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			fmt.Fprintf(cmd.OutOrStdout(), "  id:         %s\n", entry.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  identifier: %s\n", entry.Identifier)
			return nil
		},
	}
	cmd.Flags().StringVar(&slug, "slug", "", "slug (default derived from the title)")
	return cmd
}
