package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/symexport/pkg/formats"
)

func dumpCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "dump <file.symbres>",
		Short: "Print the arrays stored in a SYMBRES file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := formats.ParseSymbresFile(args[0])
			if err != nil {
				return err
			}

			// Counts are independent in files not written by this tool.
			shown := func(n int) int {
				if limit > 0 && limit < n {
					return limit
				}
				return n
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Indices (%d):\n", len(s.Indices))
			for _, i := range s.Indices[:shown(len(s.Indices))] {
				fmt.Fprintf(w, "  %d\n", i)
			}
			fmt.Fprintf(w, "Vertices (%d):\n", len(s.Vertices))
			for _, v := range s.Vertices[:shown(len(s.Vertices))] {
				fmt.Fprintf(w, "  %g %g %g\n", v.X, v.Y, v.Z)
			}
			fmt.Fprintf(w, "Normals (%d):\n", len(s.Normals))
			for _, n := range s.Normals[:shown(len(s.Normals))] {
				fmt.Fprintf(w, "  %g %g %g\n", n.X, n.Y, n.Z)
			}
			fmt.Fprintf(w, "UVs (%d):\n", len(s.UVs))
			for _, uv := range s.UVs[:shown(len(s.UVs))] {
				fmt.Fprintf(w, "  %g %g\n", uv.X, uv.Y)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print at most N entries per array (0 = all)")
	return cmd
}
