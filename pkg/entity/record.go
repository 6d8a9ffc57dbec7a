// Package entity defines the raw relationship records platmap ingests and
// the normalization and deduplication rules that turn them into graph nodes.
//
// Records arrive in two ordered lists: source applications feeding a data
// platform and downstream applications consuming from one. Both sides are
// normalized the same way: missing names degrade to "Unknown", platform
// names are compared case-insensitively, and negative table counts clamp to
// zero. Normalization never fails - a malformed record produces defaults,
// not an error, so a single bad row cannot blank a whole visualization.
//
// Node identity is the lower-cased display name. Two differently-cased
// spellings of one application always collapse to a single node. This is
// deliberate: the upstream inventory systems disagree on casing far more
// often than two distinct applications share a name.
package entity

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// UnknownName is substituted for missing application and platform names.
const UnknownName = "Unknown"

// SourceRecord is one source-side relationship instance: an application
// feeding tables into a data platform.
type SourceRecord struct {
	Platform         string `json:"platform,omitempty"`
	BusinessOrg      string `json:"business_org,omitempty"`
	ITDirectory      string `json:"it_directory,omitempty"`
	Application      string `json:"application,omitempty"`
	GBGF             string `json:"gbgf,omitempty"`
	ExternalSystemID string `json:"external_system_id,omitempty"`
	TableCount       int    `json:"table_count,omitempty"`
}

// DownstreamRecord is one downstream-side relationship instance: an
// application consuming tables from a data platform. SharedTableCount
// tracks how many of the consumed tables are shared with other consumers.
type DownstreamRecord struct {
	Platform         string `json:"platform,omitempty"`
	BusinessOrg      string `json:"business_org,omitempty"`
	ITDirectory      string `json:"it_directory,omitempty"`
	Application      string `json:"application,omitempty"`
	GBGF             string `json:"gbgf,omitempty"`
	ExternalSystemID string `json:"external_system_id,omitempty"`
	TableCount       int    `json:"table_count,omitempty"`
	SharedTableCount int    `json:"shared_table_count,omitempty"`
}

// Records is the input contract for one graph build: two ordered lists of
// relationship records.
type Records struct {
	Sources     []SourceRecord     `json:"sources"`
	Downstreams []DownstreamRecord `json:"downstreams"`
}

// Empty reports whether both record lists are empty.
func (r Records) Empty() bool {
	return len(r.Sources) == 0 && len(r.Downstreams) == 0
}

// Normalized is the canonical form of a record: the identity key used for
// node merging, display names, the owning platform, and a clamped weight.
type Normalized struct {
	Key          string // lower-cased display name; sole merge identity
	Name         string // display name as first observed
	PlatformKey  string // lower-cased platform name
	PlatformName string // platform display name as first observed
	Weight       int    // table count, clamped to >= 0
}

// Normalize applies field defaults and derives the canonical node key.
func (r SourceRecord) Normalize() Normalized {
	return normalize(r.Application, r.Platform, r.TableCount)
}

// Normalize applies field defaults and derives the canonical node key.
func (r DownstreamRecord) Normalize() Normalized {
	return normalize(r.Application, r.Platform, r.TableCount)
}

// normalize degrades every malformed field to a documented default.
// It never rejects input.
func normalize(application, platform string, tables int) Normalized {
	name := strings.TrimSpace(application)
	if name == "" {
		name = UnknownName
	}
	plat := strings.TrimSpace(platform)
	if plat == "" {
		plat = UnknownName
	}
	if tables < 0 {
		tables = 0
	}
	return Normalized{
		Key:          strings.ToLower(name),
		Name:         name,
		PlatformKey:  strings.ToLower(plat),
		PlatformName: plat,
		Weight:       tables,
	}
}

// ReadRecords decodes a JSON records document from an io.Reader.
func ReadRecords(r io.Reader) (Records, error) {
	var recs Records
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return Records{}, fmt.Errorf("decode records: %w", err)
	}
	return recs, nil
}

// ReadRecordsFile reads a JSON records document from a file.
func ReadRecordsFile(path string) (Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return Records{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// MarshalRecords serializes records to pretty-printed JSON bytes.
func MarshalRecords(recs Records) ([]byte, error) {
	return json.MarshalIndent(recs, "", "  ")
}
