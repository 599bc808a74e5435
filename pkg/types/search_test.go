// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchRequest(t *testing.T) {
	keywords := []string{"cloud", "security"}
	agencies := []AgencyFilter{NewAgencyFilter("Department of Energy")}

	req, err := NewSearchRequest(keywords, agencies, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"cloud", "security"}, req.Keywords)
	assert.Equal(t, 10, req.Limit)

	// The request owns its slices.
	keywords[0] = "changed"
	agencies[0].Name = "changed"
	assert.Equal(t, "cloud", req.Keywords[0])
	assert.Equal(t, "Department of Energy", req.Agencies[0].Name)
}

func TestNewSearchRequest_Invalid(t *testing.T) {
	_, err := NewSearchRequest(nil, nil, 10)
	assert.Error(t, err)

	_, err = NewSearchRequest([]string{"x"}, nil, 0)
	assert.Error(t, err)
}

func TestNewSearchRequest_NilAgenciesIsEmpty(t *testing.T) {
	req, err := NewSearchRequest([]string{"x"}, nil, 1)
	require.NoError(t, err)
	assert.NotNil(t, req.Agencies)
	assert.Empty(t, req.Agencies)
}

func TestAgencyFilterJSON(t *testing.T) {
	data, err := json.Marshal(NewAgencyFilter("Department of Labor"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "awarding", "name": "Department of Labor", "tier": "toptier"}`, string(data))
}

func TestAwardRecordRecipientName(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		want    string
		wantErr bool
	}{
		{"present", `{"Recipient Name": "ACME LLC", "Award ID": "1"}`, "ACME LLC", false},
		{"missing", `{"Award ID": "1"}`, "", true},
		{"null", `{"Recipient Name": null}`, "", true},
		{"not a string", `{"Recipient Name": 42}`, "", true},
		{"not an object", `[1, 2]`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AwardRecord(tt.record).RecipientName()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAwardRecordRecipientName_SentinelError(t *testing.T) {
	_, err := AwardRecord(`{}`).RecipientName()
	assert.True(t, errors.Is(err, ErrNoRecipient))
}

func TestAwardRecordPassThrough(t *testing.T) {
	in := `{"results":[{"internal_id":7,"Recipient Name":"ACME","nested":{"a":[1,2.5,"x"]}}]}`
	var decoded struct {
		Results []AwardRecord `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(in), &decoded))
	require.Len(t, decoded.Results, 1)

	out, err := json.Marshal(decoded.Results[0])
	require.NoError(t, err)
	assert.Equal(t, `{"internal_id":7,"Recipient Name":"ACME","nested":{"a":[1,2.5,"x"]}}`, string(out))
}

func TestAwardRecordMarshal_EmptyIsNull(t *testing.T) {
	out, err := json.Marshal(AwardRecord(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
