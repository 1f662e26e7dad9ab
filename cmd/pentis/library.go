package main

import (
	"fmt"

	"github.com/plus3/pentis/generator"
	"github.com/spf13/cobra"
)

func newLibraryCmd(a *app) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Print every distinct piece shape of a size",
		Long: `Grows the library of distinct shapes with the given number of squares and
prints each one. Rotations of a shape count once; mirror images count twice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("size") {
				size = a.cfg.PieceSize
			}
			lib, err := generator.LibraryOf(size)
			if err != nil {
				return printError(cmd, "Could not build the piece library", err)
			}

			w := cmd.OutOrStdout()
			headerColor.Fprintf(w, "%d shapes of %d squares\n", lib.Len(), lib.Size())
			for i, shape := range lib.All() {
				fmt.Fprintf(w, "\n#%d (%d)\n", i, uint64(shape))
				writeShape(w, shape, shapePalette[i%len(shapePalette)])
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", generator.PieceSize, "number of squares per piece")
	return cmd
}
