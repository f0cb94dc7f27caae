package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencurricula/explorer/client"
)

func newPathCmd() *cobra.Command {
	var (
		algorithm string
		maxHops   int
		prefer    []string
	)
	cmd := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find a path between two nodes",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Paths.Find(context.Background(), args[0], args[1], &client.PathOptions{
				Algorithm: algorithm,
				MaxHops:   maxHops,
				Prefer:    prefer,
			})
			if err != nil {
				fatal("path", err)
			}
			output(result, strings.Join(result.Path, " -> "))
		},
	}
	cmd.Flags().StringVar(&algorithm, "algorithm", "shortest", "Path algorithm: shortest|semantic")
	cmd.Flags().IntVar(&maxHops, "max-hops", 0, "Max path length (0 = server default)")
	cmd.Flags().StringSliceVar(&prefer, "prefer", nil, "Relationship types the semantic algorithm should favor")
	return cmd
}
