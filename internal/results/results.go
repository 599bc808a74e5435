// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results serializes enriched items and writes timestamped result files.
package results

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/award-enricher/pkg/types"
)

// stampLayout renders run timestamps as DD_MM_YYYY_HH_MM_SS.
const stampLayout = "02_01_2006_15_04_05"

// FileName returns the result file name for a run started at t.
func FileName(t time.Time) string {
	return "results_" + t.Format(stampLayout) + ".json"
}

// Encode serializes items as a single JSON array. A nil slice encodes as [].
func Encode(items []types.EnrichedItem) ([]byte, error) {
	if items == nil {
		items = []types.EnrichedItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding results: %w", err)
	}
	return data, nil
}

// Write encodes items, writes them to a timestamped file in dir (created if
// needed), and copies the same bytes followed by a newline to w. It returns
// the path of the file written.
func Write(dir string, items []types.EnrichedItem, now time.Time, w io.Writer) (string, error) {
	data, err := Encode(items)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(now))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("renaming %s: %w", tmp, err)
	}

	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return path, fmt.Errorf("writing results to output: %w", err)
	}
	return path, nil
}

// Load reads a result file written by Write.
func Load(path string) ([]types.EnrichedItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	var items []types.EnrichedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing results %s: %w", path, err)
	}
	return items, nil
}
