package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencurricula/explorer/client"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Println(strings.Join(parts, "  "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

func formatQuiet(id string) {
	fmt.Println(id)
}

func output(v any, quietVal string) {
	switch flagFmt {
	case "quiet":
		formatQuiet(quietVal)
	default:
		formatJSON(v)
	}
}

// printGraphView renders an exploration result as a table, one row per
// neighbor, ordered by depth.
func printGraphView(view *client.GraphView) {
	depths := make([]int, 0, len(view.NeighborsByDepth))
	for d := range view.NeighborsByDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	rows := [][]string{{"0", view.Focus.ID, view.Focus.Type, view.Focus.Label}}
	for _, d := range depths {
		for _, n := range view.NeighborsByDepth[d] {
			rows = append(rows, []string{strconv.Itoa(d), n.ID, n.Type, n.Label})
		}
	}
	formatTable([]string{"DEPTH", "ID", "TYPE", "LABEL"}, rows)
}

// exploreOptions builds client options from the shared explore/cost flags.
// DepthSet distinguishes an explicit --depth 0 from the flag default.
func exploreOptions(cmd *cobra.Command, depth, maxNodes int, types []string) *client.ExploreOptions {
	return &client.ExploreOptions{
		Depth:    depth,
		DepthSet: cmd.Flags().Changed("depth"),
		MaxNodes: maxNodes,
		Types:    types,
	}
}
