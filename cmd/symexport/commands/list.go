package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/symexport/pkg/formats"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <input.obj|.gltf|.glb>",
		Aliases: []string{"ls"},
		Short:   "List the objects in a scene file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objects, err := formats.LoadScene(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tVERTICES\tFACES\tTRIANGLES\tUV")
			for _, o := range objects {
				m, ok := o.Mesh()
				if !ok {
					fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t-\n", o.Name, o.Type)
					continue
				}
				uv := "-"
				if l := m.ActiveUVLayer(); l != nil {
					uv = l.Name
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
					o.Name, o.Type, len(m.Vertices), len(m.Faces), m.TriangleCount(), uv)
			}
			return tw.Flush()
		},
	}
}
