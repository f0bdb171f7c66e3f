package commands

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"

	"github.com/Faultbox/symexport/pkg/formats"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.symbres>",
		Short: "Summarize a SYMBRES file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			s, err := formats.ParseSymbres(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			h := s.Header()
			sum := blake2b.Sum256(data)
			min, max := s.Bounds()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "File:      %s\n", args[0])
			fmt.Fprintf(w, "Size:      %d bytes\n", len(data))
			fmt.Fprintf(w, "Indices:   %d\n", h.IndexCount)
			fmt.Fprintf(w, "Vertices:  %d\n", h.VertexCount)
			fmt.Fprintf(w, "Normals:   %d\n", h.NormalCount)
			fmt.Fprintf(w, "UVs:       %d\n", h.UVCount)
			fmt.Fprintf(w, "Triangles: %d\n", s.Triangles())
			fmt.Fprintf(w, "Bounds:    (%g, %g, %g) .. (%g, %g, %g)\n",
				min.X, min.Y, min.Z, max.X, max.Y, max.Z)
			fmt.Fprintf(w, "BLAKE2b:   %s\n", hex.EncodeToString(sum[:]))
			return nil
		},
	}
}
