// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package awards queries the USAspending spending_by_award search API.
package awards

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/award-enricher/internal/template"
	"github.com/pdiddy/award-enricher/pkg/types"
)

// Client issues award searches against a single endpoint.
type Client struct {
	http     *resty.Client
	url      string
	template template.Template
}

// NewClient returns a Client that posts to url using httpClient. The
// request template supplies every body field other than the keywords,
// agencies, and limit.
func NewClient(httpClient *resty.Client, url string, tmpl template.Template) *Client {
	return &Client{http: httpClient, url: url, template: tmpl}
}

// searchResponse is the part of the award search response that is read.
type searchResponse struct {
	Results *[]types.AwardRecord `json:"results"`
}

// Search posts one search request and returns the awards in response order.
// Every failure is returned as an error; there is no retry.
func (c *Client) Search(ctx context.Context, req types.SearchRequest) ([]types.AwardRecord, error) {
	body, err := c.template.Body(req)
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("award search request: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("award search returned HTTP %d", res.StatusCode())
	}

	var sr searchResponse
	if err := json.Unmarshal(res.Body(), &sr); err != nil {
		return nil, fmt.Errorf("parsing award search response: %w", err)
	}
	if sr.Results == nil {
		return nil, fmt.Errorf("award search response has no results field")
	}
	return *sr.Results, nil
}
