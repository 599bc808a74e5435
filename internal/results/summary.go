// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pdiddy/award-enricher/pkg/types"
)

const maxStatusWidth = 40

// FormatTable writes a one-row-per-award summary of items to w.
func FormatTable(items []types.EnrichedItem, w io.Writer) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Award ID", "Recipient", "Amount", "NAICS", "8(a)", "Statuses", "Profile"})

	profiles := 0
	for i, it := range items {
		fields := awardFields(it.Award)
		recipient, _ := it.Award.RecipientName()

		sba8a := ""
		if it.Company.IsSBA8a() {
			sba8a = it.Company.SBA8aEntrance + " to " + it.Company.SBA8aExit
		}
		profile := ""
		if it.Company.Profile != nil {
			profiles++
			profile = fmt.Sprintf("%d refs", len(it.Company.Profile.References))
		}

		t.AppendRow(table.Row{
			i + 1,
			fields["Award ID"],
			recipient,
			fields["Award Amount"],
			it.Company.PrimaryNaics,
			sba8a,
			truncate(strings.Join(it.Company.SocioEconomicStatus, ", "), maxStatusWidth),
			profile,
		})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d awards", len(items)), "", "", "", "", fmt.Sprintf("%d profiles", profiles)})
	t.Render()
}

// awardFields decodes the award columns shown in the summary.
func awardFields(a types.AwardRecord) map[string]string {
	var raw map[string]any
	out := map[string]string{}
	if err := json.Unmarshal(a, &raw); err != nil {
		return out
	}
	for _, k := range []string{"Award ID", "Award Amount"} {
		switch v := raw[k].(type) {
		case nil:
		case string:
			out[k] = v
		case float64:
			out[k] = fmt.Sprintf("%.2f", v)
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
