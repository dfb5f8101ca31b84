package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// VersionTable is an ordered mapping from version tags to their
// descriptions. Iteration order is always ascending by CompareVersions,
// independent of insertion order.
type VersionTable struct {
	entries map[string]string
}

// NewVersionTable creates an empty VersionTable.
func NewVersionTable() *VersionTable {
	return &VersionTable{entries: make(map[string]string)}
}

// Add registers a tag with its description. The tag must be a strict
// version key and must not already be present.
func (t *VersionTable) Add(tag, description string) error {
	if !ValidVersionKey(tag) {
		return zerr.With(zerr.Wrap(ErrInvalidVersionKey, "table keys must be strict x.y.z"), "tag", tag)
	}
	if _, exists := t.entries[tag]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateTag, "tag declared twice in one table"), "tag", tag)
	}
	t.entries[tag] = description
	return nil
}

// Has reports whether tag is a key of the table.
func (t *VersionTable) Has(tag string) bool {
	_, ok := t.entries[tag]
	return ok
}

// Description returns the description recorded for tag.
func (t *VersionTable) Description(tag string) (string, bool) {
	description, ok := t.entries[tag]
	return description, ok
}

// Tags returns all tags in ascending version order.
func (t *VersionTable) Tags() []string {
	tags := make([]string, 0, len(t.entries))
	for tag := range t.entries {
		tags = append(tags, tag)
	}
	slices.SortFunc(tags, CompareVersions)
	return tags
}

// Len returns the number of entries.
func (t *VersionTable) Len() int {
	return len(t.entries)
}
