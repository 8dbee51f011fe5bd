package trace

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Render writes rt as an aligned console table to w: one row per Record,
// indented by Depth, with the count/time_s/time_%/rss_GiB/hwm_GiB/swap_GiB/
// location_str columns.
func Render(w io.Writer, rt RecordTable) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Header = text.FormatDefault
	tbl.AppendHeader(table.Row{"name", "count", "time_s", "time_%", "rss_GiB", "hwm_GiB", "swap_GiB", "location_str"})

	for _, r := range rt.Records {
		tbl.AppendRow(recordRow(r))
	}

	tbl.Render()
}

// RenderParallel writes one table per registered goroutine lineage, each
// preceded by its synthetic thread id.
func RenderParallel(w io.Writer, prt ParallelRecordTable) {
	for id, rt := range prt.Tables {
		fmt.Fprintf(w, "%s:\n", id)
		Render(w, rt)
		fmt.Fprintln(w)
	}
}

func recordRow(r Record) table.Row {
	name := strings.Repeat("  ", r.Depth) + recordName(r)

	percent := "-"
	if r.Percent >= 0 {
		percent = fmt.Sprintf("%.2f", r.Percent)
	}

	rss, hwm, swap := "-", "-", "-"
	if r.Memory.RSSKiB > 0 {
		rss = fmt.Sprintf("%.2f", r.Memory.RSSGiB())
	}

	if r.Memory.HWMKiB > 0 {
		hwm = fmt.Sprintf("%.2f", r.Memory.HWMGiB())
	}

	if r.Memory.SwapKiB > 0 {
		swap = fmt.Sprintf("%.2f", r.Memory.SwapGiB())
	}

	return table.Row{name, r.Count, formatSeconds(r.Interval), percent, rss, hwm, swap, recordLocation(r)}
}

// formatSeconds renders a duration as seconds to three decimal places,
// including the zero-duration boundary case ("0.000 s").
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f s", d.Seconds())
}

// recordLocation renders a Record's call site as "file:line", blank for the
// synthetic Other row (which reports no call site of its own) and for a
// Location anonymization has blanked.
func recordLocation(r Record) string {
	if r.Other || r.Location.File == "" {
		return "-"
	}

	return fmt.Sprintf("%s:%d", r.Location.File, r.Location.Line)
}

func recordName(r Record) string {
	if r.Other {
		return "other"
	}

	return r.Location.displayLabel()
}
