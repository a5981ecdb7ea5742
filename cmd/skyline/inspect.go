package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Skyline/internal/assets"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <modelo.glb>",
	Short: "Lista os protótipos de um arquivo glTF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		coll, err := assets.DecodeGLTF(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d protótipos\n", coll.Source, coll.Len())
		fmt.Fprintf(out, "%-4s %-24s %9s %9s  %s\n", "#", "nome", "vértices", "triângulos", "caixa")
		for i, p := range coll.Prototypes {
			size := p.Max.Sub(p.Min)
			fmt.Fprintf(out, "%-4d %-24s %9d %9d  %.1f x %.1f x %.1f\n",
				i, p.Name, len(p.Positions), p.Triangles(), size.X(), size.Y(), size.Z())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
