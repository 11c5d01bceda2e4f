package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/djdv/go-tilequeue/internal/sim"
)

func writeReport(w io.Writer, cfg sim.Config, result sim.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, row := range [][2]string{
		{"frames", strconv.Itoa(result.Frames)},
		{"max count", strconv.Itoa(cfg.MaxCount)},
		{"rendered", strconv.Itoa(result.Rendered)},
		{"requested", strconv.Itoa(result.Requested)},
		{"evicted", strconv.Itoa(result.Evicted)},
		{"skipped (in flight)", strconv.Itoa(result.Skipped)},
		{"peak tiles", strconv.Itoa(result.PeakTiles)},
		{"final tiles", strconv.Itoa(result.FinalTiles)},
		{"violations", strconv.Itoa(result.Violations)},
	} {
		table.Append(row[:])
	}
	table.Render()
}
