package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/symexport/internal/config"
)

func configCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "config [path]",
		Short: "Print the effective configuration, or save it with --save",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if !save {
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			}

			path := filepath.Join(config.ConfigDir(), "config.yaml")
			if len(args) > 0 {
				path = args[0]
			}
			if err := cfg.SaveTo(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(w, "Saved: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the configuration to the config directory or path")
	return cmd
}
