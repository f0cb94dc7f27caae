package main

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newLimitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show the caller's remaining rate-limit budget",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			status, err := apiClient.Limits(context.Background())
			if err != nil {
				fatal("limits", err)
			}
			if flagFmt == "table" {
				formatTable(
					[]string{"TIER", "EXPLORE", "PATHFIND", "RESETS IN"},
					[][]string{{
						status.Tier,
						strconv.Itoa(status.ExplorationRemaining) + "/" + strconv.Itoa(status.ExplorationLimit),
						strconv.Itoa(status.PathfindingRemaining) + "/" + strconv.Itoa(status.PathfindingLimit),
						(time.Duration(status.ResetsInMs) * time.Millisecond).String(),
					}},
				)
				return
			}
			output(status, status.Tier)
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}
			output(resp, resp.Status)
		},
	}
}
