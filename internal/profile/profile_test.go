// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfileHTML = `<html><body>
<div class="profilebox">
  <div class="profileline">
    <div class="profilehead">Name of Firm:</div>
    <div class="profileinfo">  Acme Solutions LLC </div>
  </div>
  <div class="profileline">
    <div class="profilehead">Year Established:</div>
    <div class="profileinfo">2009</div>
  </div>
  <div class="profileline">
    <div class="profilehead">Label Only:</div>
  </div>
  <div class="profileline">
    <div class="profilehead">Contact Person:</div>
    <div class="profileinfo">Jane Doe</div>
  </div>
</div>
<h3><strong>Capabilities Narrative:</strong></h3>
<div class="narrative">
  We deliver   secure cloud
  migrations and   zero-trust architecture.
</div>
<div class="referencebox">
  <div class="profileline">
    <div class="profilehead">Contract:</div>
    <div class="profileinfo">W91-22-C-0001</div>
  </div>
  <div class="profileline">
    <div class="profilehead">Value:</div>
    <div class="profileinfo">$1,200,000</div>
  </div>
</div>
<div class="referencebox">
  <div class="profileline">
    <div class="profilehead">Contract:</div>
    <div class="profileinfo">N00-23-C-0042</div>
  </div>
</div>
</body></html>`

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader(sampleProfileHTML))
	require.NoError(t, err)

	assert.Equal(t, "Acme Solutions LLC", p.Fields["Name of Firm:"])
	assert.Equal(t, "2009", p.Fields["Year Established:"])
	assert.Equal(t, "Jane Doe", p.Fields["Contact Person:"])

	_, ok := p.Fields["Label Only:"]
	assert.False(t, ok, "label without value container is skipped")

	// Reference lines are part of the document-wide scan; the last one wins.
	assert.Equal(t, "N00-23-C-0042", p.Fields["Contract:"])

	assert.Equal(t, "We deliver secure cloud migrations and zero-trust architecture.", p.CapabilitiesNarrative)

	require.Len(t, p.References, 2)
	assert.Equal(t, map[string]string{"Contract:": "W91-22-C-0001", "Value:": "$1,200,000"}, p.References[0])
	assert.Equal(t, map[string]string{"Contract:": "N00-23-C-0042"}, p.References[1])
}

func TestParse_EmptyPage(t *testing.T) {
	p, err := Parse(strings.NewReader(`<html><body><p>No profile found</p></body></html>`))
	require.NoError(t, err)

	assert.Empty(t, p.Fields)
	assert.Equal(t, "", p.CapabilitiesNarrative)
	assert.NotNil(t, p.References)
	assert.Empty(t, p.References)
}

func TestParse_AnchorWithoutFollowingDiv(t *testing.T) {
	p, err := Parse(strings.NewReader(`<div><span>Capabilities Narrative:</span></div><p>not a div</p>`))
	require.NoError(t, err)
	assert.Equal(t, "", p.CapabilitiesNarrative)
}

func TestParse_NarrativeSkipsNestedText(t *testing.T) {
	html := `<table><tr><td>Capabilities Narrative:</td><td><p>ignored</p><div>First   div</div></td></tr></table>`
	p, err := Parse(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, "First div", p.CapabilitiesNarrative)
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", collapseSpace("  a\n\tb   c \n"))
	assert.Equal(t, "", collapseSpace(" \n "))
}

func TestFetch(t *testing.T) {
	var gotUEI string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUEI = r.URL.Query().Get("SAM_UEI")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, sampleProfileHTML)
	}))
	defer ts.Close()

	c := NewClient(resty.New(), ts.URL)
	p, err := c.Fetch(context.Background(), "ABC123DEF456")
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "ABC123DEF456", gotUEI)
	assert.Len(t, p.References, 2)
}

func TestFetch_Non200IsSoft(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(resty.New(), ts.URL)
	p, err := c.Fetch(context.Background(), "X")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFetch_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := NewClient(resty.New(), url)
	_, err := c.Fetch(context.Background(), "X")
	require.Error(t, err)
}
