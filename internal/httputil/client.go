// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds the HTTP client shared by the upstream API clients.
package httputil

import (
	"errors"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/pdiddy/award-enricher/pkg/types"
)

// NewClient returns a resty client configured from cfg. Retries are left
// disabled and no timeout is set unless cfg.Timeout is positive. Each
// response and transport error is logged at debug level on log; query
// strings are not logged because they carry the API key.
func NewClient(cfg types.HTTPConfig, log zerolog.Logger) *resty.Client {
	c := resty.New().SetRetryCount(0)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}

	c.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		log.Debug().
			Str("method", res.Request.Method).
			Str("url", stripQuery(res.Request.URL)).
			Int("status", res.StatusCode()).
			Dur("elapsed", res.Time()).
			Msg("http response")
		return nil
	})
	c.OnError(func(req *resty.Request, err error) {
		log.Debug().
			Str("method", req.Method).
			Str("url", stripQuery(req.URL)).
			Err(RedactError(err)).
			Msg("http request failed")
	})
	return c
}

// stripQuery returns raw without its query string and fragment.
func stripQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// RedactError strips the query string from the URL of a *url.Error found in
// err's chain. Other errors are returned unchanged.
func RedactError(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	redacted := *ue
	redacted.URL = stripQuery(ue.URL)
	return &redacted
}
