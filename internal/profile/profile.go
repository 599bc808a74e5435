// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile scrapes SBA small-business profile pages.
//
// A profile page lays out each field as
//
//	<div class="profileline">
//	  <div class="profilehead">Label</div>
//	  <div class="profileinfo">Value</div>
//	</div>
//
// with past-performance references wrapped in div.referencebox and the
// capabilities narrative in the first div following the text
// "Capabilities Narrative:".
package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/award-enricher/pkg/types"
)

const narrativeAnchor = "Capabilities Narrative:"

// Client fetches profile pages from a single endpoint.
type Client struct {
	http *resty.Client
	url  string
}

// NewClient returns a Client for the profile page at url.
func NewClient(httpClient *resty.Client, url string) *Client {
	return &Client{http: httpClient, url: url}
}

// Fetch requests the profile page for a unique entity identifier. A non-200
// response returns (nil, nil): the caller keeps the award without profile
// data. Transport and parse failures are returned as errors.
func (c *Client) Fetch(ctx context.Context, uei string) (*types.SbaProfile, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("SAM_UEI", uei).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("profile request: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, nil
	}
	return Parse(bytes.NewReader(res.Body()))
}

// Parse extracts the labeled fields, capabilities narrative, and references
// from a profile page.
func Parse(r io.Reader) (*types.SbaProfile, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing profile page: %w", err)
	}

	p := &types.SbaProfile{
		Fields:     profileLines(doc.Selection),
		References: []map[string]string{},
	}

	if div := narrativeBlock(doc); div != nil {
		p.CapabilitiesNarrative = collapseSpace(div.Text())
	}

	doc.Find("div.referencebox").Each(func(_ int, box *goquery.Selection) {
		p.References = append(p.References, profileLines(box))
	})
	return p, nil
}

// profileLines collects label/value pairs from every div.profileline under
// sel. Lines without both a head and an info container are skipped; a
// repeated label keeps the last value.
func profileLines(sel *goquery.Selection) map[string]string {
	fields := map[string]string{}
	sel.Find("div.profileline").Each(func(_ int, line *goquery.Selection) {
		head := line.Find("div.profilehead").First()
		info := line.Find("div.profileinfo").First()
		if head.Length() == 0 || info.Length() == 0 {
			return
		}
		fields[strings.TrimSpace(head.Text())] = strings.TrimSpace(info.Text())
	})
	return fields
}

// narrativeBlock returns the first div after the narrative anchor text in
// document order, or nil if the anchor or the div is absent.
func narrativeBlock(doc *goquery.Document) *goquery.Selection {
	var anchor *html.Node
	for _, root := range doc.Nodes {
		anchor = findText(root, narrativeAnchor)
		if anchor != nil {
			break
		}
	}
	if anchor == nil {
		return nil
	}
	for n := next(anchor); n != nil; n = next(n) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Div {
			return goquery.NewDocumentFromNode(n).Selection
		}
	}
	return nil
}

// findText returns the first text node under n whose trimmed content equals text.
func findText(n *html.Node, text string) *html.Node {
	if n.Type == html.TextNode && strings.TrimSpace(n.Data) == text {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findText(c, text); found != nil {
			return found
		}
	}
	return nil
}

// next returns the node following n in document order.
func next(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
