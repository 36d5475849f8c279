package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Dataset is a string-keyed map that preserves insertion order. Lang files
// are order-sensitive: the chunk splitter and the provider prompt both rely
// on keys iterating in the order they appeared in the source file.
type Dataset struct {
	keys   []string
	values map[string]string
}

// NewDataset creates an empty ordered dataset.
func NewDataset() *Dataset {
	return &Dataset{values: make(map[string]string)}
}

// Set adds or updates an entry. A new key is appended to the iteration order;
// an existing key keeps its original position.
func (d *Dataset) Set(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value for key and whether it exists.
func (d *Dataset) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (d *Dataset) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	return len(d.keys)
}

// Map returns an unordered copy of the entries.
func (d *Dataset) Map() map[string]string {
	out := make(map[string]string, len(d.keys))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Slice returns a new dataset holding the entries in [start, end) of the
// iteration order.
func (d *Dataset) Slice(start, end int) *Dataset {
	out := NewDataset()
	for _, k := range d.keys[start:end] {
		out.Set(k, d.values[k])
	}
	return out
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	return d.Slice(0, len(d.keys))
}

// MarshalJSON encodes the dataset as a JSON object with keys in insertion
// order, so written lang files keep the layout of the originals.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, recording keys in document order.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dataset: expected JSON object, got %v", tok)
	}

	d.keys = nil
	d.values = make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("dataset: value for %q is not a string: %w", key, err)
		}
		d.Set(key, value)
	}
	// Consume the closing brace.
	_, err = dec.Token()
	return err
}
