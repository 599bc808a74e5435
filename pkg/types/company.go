// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Keys used when SBA profile data is flattened into the company object.
const (
	CapabilitiesNarrativeKey = "Capabilities Narrative"
	ReferencesKey            = "References"
)

// EntityProfile holds the business classification data taken from the
// entity registry for one award recipient.
type EntityProfile struct {
	// URL is the entity's registered website.
	URL string `json:"url" yaml:"url"`

	// PrimaryNaics is the primary NAICS code.
	PrimaryNaics string `json:"primaryNaics" yaml:"primaryNaics"`

	// SocioEconomicStatus lists business-type labels with generic
	// corporation/organization labels removed, in registry order.
	SocioEconomicStatus []string `json:"socioEconomicStatus" yaml:"socioEconomicStatus"`

	// SBA8aEntrance and SBA8aExit are the 8(a) certification dates, empty
	// when the entity has no 8(a) classification.
	SBA8aEntrance string `json:"sba8aEntrance" yaml:"sba8aEntrance"`
	SBA8aExit     string `json:"sba8aExit" yaml:"sba8aExit"`

	// UEISAM is the unique entity identifier; it keys the profile scrape.
	UEISAM string `json:"ueiSAM" yaml:"ueiSAM"`
}

// IsSBA8a reports whether an 8(a) certification window was found.
func (p EntityProfile) IsSBA8a() bool {
	return p.SBA8aEntrance != "" || p.SBA8aExit != ""
}

// SbaProfile holds the fields scraped from an SBA small-business profile page.
type SbaProfile struct {
	// Fields maps each profile label to its value.
	Fields map[string]string `json:"fields" yaml:"fields"`

	// CapabilitiesNarrative is the whitespace-collapsed narrative text.
	CapabilitiesNarrative string `json:"capabilitiesNarrative,omitempty" yaml:"capabilitiesNarrative,omitempty"`

	// References holds one label/value mapping per past-performance reference.
	References []map[string]string `json:"references" yaml:"references"`
}

// Company is the "company" half of an enriched item: the entity profile,
// optionally merged with scraped SBA profile fields.
//
// On the wire the two are one flat object. Entity keys are written first,
// followed by the scraped labels in sorted order. A scraped label that
// collides with an entity key or with the narrative or references key is
// dropped, so the entity value wins.
type Company struct {
	EntityProfile
	Profile *SbaProfile
}

// entityKeys are the JSON keys owned by EntityProfile.
var entityKeys = map[string]bool{
	"url":                 true,
	"primaryNaics":        true,
	"socioEconomicStatus": true,
	"sba8aEntrance":       true,
	"sba8aExit":           true,
	"ueiSAM":              true,
}

// MarshalJSON writes the flat company object with keys in a stable order:
// entity keys first, then scraped labels sorted, then the narrative and
// references.
func (c Company) MarshalJSON() ([]byte, error) {
	entity := c.EntityProfile
	if entity.SocioEconomicStatus == nil {
		entity.SocioEconomicStatus = []string{}
	}
	base, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	if c.Profile == nil {
		return base, nil
	}

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])

	labels := make([]string, 0, len(c.Profile.Fields))
	for k := range c.Profile.Fields {
		if entityKeys[k] || k == CapabilitiesNarrativeKey || k == ReferencesKey {
			continue
		}
		labels = append(labels, k)
	}
	sort.Strings(labels)
	for _, k := range labels {
		if err := writeMember(&buf, k, c.Profile.Fields[k]); err != nil {
			return nil, err
		}
	}
	if c.Profile.CapabilitiesNarrative != "" {
		if err := writeMember(&buf, CapabilitiesNarrativeKey, c.Profile.CapabilitiesNarrative); err != nil {
			return nil, err
		}
	}
	refs := c.Profile.References
	if refs == nil {
		refs = []map[string]string{}
	}
	if err := writeMember(&buf, ReferencesKey, refs); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	buf.WriteByte(',')
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// UnmarshalJSON splits a flat company object back into the entity profile
// and, when any non-entity key is present, the scraped profile.
func (c *Company) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	var entity EntityProfile
	if err := json.Unmarshal(data, &entity); err != nil {
		return err
	}

	var profile *SbaProfile
	for k, raw := range members {
		if entityKeys[k] {
			continue
		}
		if profile == nil {
			profile = &SbaProfile{Fields: map[string]string{}}
		}
		switch k {
		case ReferencesKey:
			if err := json.Unmarshal(raw, &profile.References); err != nil {
				return fmt.Errorf("decoding %s: %w", ReferencesKey, err)
			}
		case CapabilitiesNarrativeKey:
			if err := json.Unmarshal(raw, &profile.CapabilitiesNarrative); err != nil {
				return fmt.Errorf("decoding %s: %w", CapabilitiesNarrativeKey, err)
			}
		default:
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("decoding profile field %q: %w", k, err)
			}
			profile.Fields[k] = v
		}
	}
	if profile != nil && profile.References == nil {
		profile.References = []map[string]string{}
	}

	c.EntityProfile = entity
	c.Profile = profile
	return nil
}

// EnrichedItem pairs an award with the company data of its recipient.
type EnrichedItem struct {
	Award   AwardRecord `json:"award"`
	Company Company     `json:"company"`
}
