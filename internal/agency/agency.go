// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agency maps federal agency abbreviations to award search filters.
package agency

import (
	"sort"
	"strings"

	"github.com/pdiddy/award-enricher/pkg/types"
)

// abbrToName maps upper-case abbreviations to the top-tier agency names
// used by the award search API.
var abbrToName = map[string]string{
	"DOC":   "Department of Commerce",
	"DOD":   "Department of Defense",
	"DOE":   "Department of Energy",
	"ED":    "Department of Education",
	"HHS":   "Department of Health and Human Services",
	"DHS":   "Department of Homeland Security",
	"HUD":   "Department of Housing and Urban Development",
	"DOJ":   "Department of Justice",
	"DOL":   "Department of Labor",
	"DOS":   "Department of State",
	"DOI":   "Department of the Interior",
	"DOT":   "Department of Transportation",
	"USDT":  "Department of the Treasury",
	"VA":    "Department of Veterans Affairs",
	"EPA":   "Environmental Protection Agency",
	"GSA":   "General Services Administration",
	"NASA":  "National Aeronautics and Space Administration",
	"NSF":   "National Science Foundation",
	"NRC":   "Nuclear Regulatory Commission",
	"OPM":   "Office of Personnel Management",
	"SBA":   "Small Business Administration",
	"SSA":   "Social Security Administration",
	"USAID": "Agency for International Development",
	"USDA":  "Department of Agriculture",
	"NARA":  "National Archives and Records Administration",
	"SEC":   "Securities and Exchange Commission",
	"FCC":   "Federal Communications Commission",
	"FTC":   "Federal Trade Commission",
	"EXIM":  "Export-Import Bank of the United States",
	"CFTC":  "Commodity Futures Trading Commission",
}

// Resolve converts abbreviations to agency filters. Matching is
// case-insensitive; unknown abbreviations are dropped. Order and duplicates
// of the input are preserved.
func Resolve(abbrs []string) []types.AgencyFilter {
	filters := make([]types.AgencyFilter, 0, len(abbrs))
	for _, a := range abbrs {
		if name, ok := Name(a); ok {
			filters = append(filters, types.NewAgencyFilter(name))
		}
	}
	return filters
}

// Name returns the full agency name for abbr.
func Name(abbr string) (string, bool) {
	name, ok := abbrToName[strings.ToUpper(strings.TrimSpace(abbr))]
	return name, ok
}

// Known returns all supported abbreviations in sorted order.
func Known() []string {
	keys := make([]string, 0, len(abbrToName))
	for k := range abbrToName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
