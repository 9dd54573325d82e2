package replay

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses a paths file.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding paths document: %w", err)
	}
	return doc, nil
}

// Merge adds the entries of doc to an existing paths file, replacing entries
// with the same name. Other entries are carried over untouched. An empty
// existing file is treated as an empty object.
func Merge(existing []byte, doc Document) ([]byte, error) {
	entries := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(existing)) > 0 {
		if err := json.Unmarshal(existing, &entries); err != nil {
			return nil, fmt.Errorf("decoding existing paths document: %w", err)
		}
		if entries == nil {
			entries = map[string]json.RawMessage{}
		}
	}

	for name, timelines := range doc {
		raw, err := marshal(timelines)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", name, err)
		}
		entries[name] = raw
	}

	return marshal(entries)
}
