package commands

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/symexport/internal/config"
	"github.com/Faultbox/symexport/internal/logger"
)

var (
	flags config.Flags
	cfg   *config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "symexport",
		Short:        "Export meshes to the SYMBRES runtime format",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(&flags)
			if err != nil {
				return err
			}
			cfg = c
			return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	flags.Bind(root.PersistentFlags())

	root.AddCommand(exportCmd(), listCmd(), infoCmd(), dumpCmd(), configCmd())
	return root
}
