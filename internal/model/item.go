package model

import (
	"encoding/json"
	"fmt"
)

// Item is the domain model for a todo entry.
// Value doubles as the item's identity within a list and is compared as
// exact text.
type Item struct {
	Value string `json:"value" yaml:"value"`
	Done  bool   `json:"done" yaml:"done"`
}

// Encode serializes items the way they are written to storage.
// A nil or empty list encodes as "[]".
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses the stored form. It does no validation beyond JSON shape.
func Decode(b []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
