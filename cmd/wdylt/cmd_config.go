package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wdylt/wdylt/internal/config"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:         "init",
		Short:       "Write the default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noLibrary: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := c.configPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective storage and server settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "storage.backend: %s\n", c.cfg.Storage.Backend)
			fmt.Fprintf(out, "storage.path:    %s\n", c.cfg.Storage.Path)
			fmt.Fprintf(out, "server.addr:     %s\n", c.cfg.Server.Addr)
			fmt.Fprintf(out, "log.level:       %s\n", c.cfg.Log.Level)
			return nil
		},
	})
	return cmd
}
