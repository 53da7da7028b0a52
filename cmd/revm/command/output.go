package command

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/coregx/revm/meta"
)

// writeResults renders one row per engine: its name, whether it matched and
// the offsets it captured.
func writeResults(w io.Writer, results []meta.Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Engine", "Matched", "Captures")
	for _, r := range results {
		if err := table.Append([]string{r.Strategy.String(), matchedCell(r), capturesCell(r)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func matchedCell(r meta.Result) string {
	switch {
	case r.Err != nil:
		return "error"
	case r.Matched:
		return "yes"
	default:
		return "no"
	}
}

func capturesCell(r meta.Result) string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case !r.Matched:
		return ""
	case len(r.Slots) > 0:
		return r.Slots.String()
	case r.End >= 0:
		return "(?," + strconv.Itoa(r.End) + ")"
	default:
		return "-"
	}
}
