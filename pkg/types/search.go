// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the award-enricher pipeline:
// the search request sent to the award API, the award records it returns,
// and the enriched company data attached to each award.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Agency filter constants used by the award search API.
const (
	AgencyTypeAwarding = "awarding"
	AgencyTierTop      = "toptier"
)

// AgencyFilter restricts an award search to a single awarding agency.
type AgencyFilter struct {
	// Type is always "awarding".
	Type string `json:"type" yaml:"type"`

	// Name is the canonical agency full name (e.g. "Department of Energy").
	Name string `json:"name" yaml:"name"`

	// Tier is always "toptier".
	Tier string `json:"tier" yaml:"tier"`
}

// NewAgencyFilter returns an awarding, top-tier filter for the named agency.
func NewAgencyFilter(name string) AgencyFilter {
	return AgencyFilter{Type: AgencyTypeAwarding, Name: name, Tier: AgencyTierTop}
}

// SearchRequest holds the run-time parameters of one award search. It is
// built once per run by NewSearchRequest and not modified afterwards.
type SearchRequest struct {
	Keywords []string
	Agencies []AgencyFilter
	Limit    int
}

// NewSearchRequest validates the inputs and returns a SearchRequest that
// owns copies of the keyword and agency slices.
func NewSearchRequest(keywords []string, agencies []AgencyFilter, limit int) (SearchRequest, error) {
	if len(keywords) == 0 {
		return SearchRequest{}, fmt.Errorf("at least one keyword is required")
	}
	if limit <= 0 {
		return SearchRequest{}, fmt.Errorf("result limit must be positive, got %d", limit)
	}
	return SearchRequest{
		Keywords: append([]string(nil), keywords...),
		Agencies: append([]AgencyFilter{}, agencies...),
		Limit:    limit,
	}, nil
}

// recipientNameField is the award result column holding the recipient's
// legal business name.
const recipientNameField = "Recipient Name"

// ErrNoRecipient is returned when an award record has no usable recipient name.
var ErrNoRecipient = errors.New("award has no recipient name")

// AwardRecord is one entry of the award search "results" array. It is kept
// as raw JSON and passed through to the output unchanged.
type AwardRecord json.RawMessage

// MarshalJSON returns the raw record, or null for an empty record.
func (a AwardRecord) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(a).MarshalJSON()
}

// UnmarshalJSON stores a copy of data.
func (a *AwardRecord) UnmarshalJSON(data []byte) error {
	if a == nil {
		return errors.New("types.AwardRecord: UnmarshalJSON on nil pointer")
	}
	*a = append((*a)[0:0], data...)
	return nil
}

// RecipientName returns the "Recipient Name" field of the award.
func (a AwardRecord) RecipientName() (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(a, &fields); err != nil {
		return "", fmt.Errorf("decoding award record: %w", err)
	}
	raw, ok := fields[recipientNameField]
	if !ok {
		return "", ErrNoRecipient
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return "", fmt.Errorf("%w: %s is not a string", ErrNoRecipient, recipientNameField)
	}
	if name == "" {
		return "", ErrNoRecipient
	}
	return name, nil
}
