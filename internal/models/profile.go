package models

import "encoding/json"

// ProfileMetadata describes the routable shape of a profile document.
// AvailableAttributes is the authoritative list of section keys the
// router may select from; QueryHandling carries free-text routing hints
// authored alongside the document.
type ProfileMetadata struct {
	Description         string   `json:"description"`
	AvailableAttributes []string `json:"available_attributes"`
	QueryHandling       string   `json:"query_handling"`
}

// ProfileDocument is a section-keyed knowledge document. Sections holds
// every top-level entry except the reserved "_metadata" block, with values
// kept as raw JSON so arbitrary section shapes survive round-tripping.
type ProfileDocument struct {
	Metadata ProfileMetadata
	Sections map[string]json.RawMessage
}

// Section returns the raw value stored under key, if present.
func (d *ProfileDocument) Section(key string) (json.RawMessage, bool) {
	raw, ok := d.Sections[key]
	return raw, ok
}

// SectionKeys returns the valid routing targets declared by the metadata.
func (d *ProfileDocument) SectionKeys() []string {
	return d.Metadata.AvailableAttributes
}
