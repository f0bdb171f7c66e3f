package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/symexport/internal/exporter"
	"github.com/Faultbox/symexport/internal/logger"
	"github.com/Faultbox/symexport/pkg/formats"
)

func exportCmd() *cobra.Command {
	var objectName string

	cmd := &cobra.Command{
		Use:   "export <input.obj|.gltf|.glb> [output.symbres]",
		Short: "Convert a mesh object to SYMBRES",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			objects, err := formats.LoadScene(input)
			if err != nil {
				return err
			}
			logger.Debug("Loaded scene",
				zap.String("input", input),
				zap.Int("objects", len(objects)),
			)

			obj, err := selectObject(objects, objectName)
			if err != nil {
				return err
			}

			var out string
			if len(args) > 1 {
				out = args[1]
			} else {
				out = outputPath(input, cfg.Export)
				if cfg.Export.OutputDir != "" {
					if err := os.MkdirAll(cfg.Export.OutputDir, 0755); err != nil {
						return fmt.Errorf("creating output directory: %w", err)
					}
				}
			}

			if err := checkDestination(out, cfg.Export.Overwrite); err != nil {
				return err
			}

			res, err := exporter.New(logger.Named("exporter")).Export(obj, out)
			if err != nil {
				logger.Error("Export failed",
					zap.String("kind", exporter.KindOf(err).String()),
					zap.Error(err),
				)
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Exported:  %s -> %s\n", res.Object, res.Path)
			fmt.Fprintf(w, "Triangles: %d\n", res.Triangles)
			fmt.Fprintf(w, "Corners:   %d\n", res.Corners)
			fmt.Fprintf(w, "Size:      %d bytes\n", res.Bytes)
			return nil
		},
	}

	cmd.Flags().StringVar(&objectName, "object", "", "Name of the object to export (default: first mesh)")
	return cmd
}
