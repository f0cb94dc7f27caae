package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

func newExploreCmd() *cobra.Command {
	var (
		depth    int
		maxNodes int
		types    []string
	)
	cmd := &cobra.Command{
		Use:   "explore <id>",
		Short: "Explore the neighborhood around a node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts := exploreOptions(cmd, depth, maxNodes, types)
			view, err := apiClient.Explore.Neighborhood(context.Background(), args[0], opts)
			if err != nil {
				fatal("explore", err)
			}
			if flagFmt == "table" {
				printGraphView(view)
				return
			}
			output(view, view.Focus.ID)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 1, "Traversal depth (0-3)")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "Max nodes to return (0 = server default)")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Relationship types to follow (comma-separated)")
	return cmd
}

func newCostCmd() *cobra.Command {
	var (
		depth    int
		maxNodes int
		types    []string
	)
	cmd := &cobra.Command{
		Use:   "cost <id>",
		Short: "Estimate the cost of an exploration without running it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts := exploreOptions(cmd, depth, maxNodes, types)
			cost, err := apiClient.Explore.Cost(context.Background(), args[0], opts)
			if err != nil {
				fatal("cost", err)
			}
			output(cost, strconv.Itoa(cost.EstimatedNodes))
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 1, "Traversal depth (0-3)")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "Max nodes to return (0 = server default)")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Relationship types to follow (comma-separated)")
	return cmd
}
