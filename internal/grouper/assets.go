package grouper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/JPM1118/assetconv/internal/sheet"
)

var jsonNull = []byte("null")

// Slot is one position of a sequence. Frames that never showed up in the
// input leave their slot unset, which serializes as null.
type Slot struct {
	Meta json.RawMessage
	Set  bool
}

func (s Slot) MarshalJSON() ([]byte, error) {
	if !s.Set || len(s.Meta) == 0 {
		return jsonNull, nil
	}
	return s.Meta, nil
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*s = Slot{}
		return nil
	}
	s.Meta = append(json.RawMessage(nil), data...)
	s.Set = true
	return nil
}

// Sequence is the ordered frame list of one asset.
type Sequence []Slot

// Holes returns the indices of unset slots.
func (s Sequence) Holes() []int {
	var holes []int
	for i, slot := range s {
		if !slot.Set {
			holes = append(holes, i)
		}
	}
	return holes
}

// put writes meta at index i, growing the sequence with unset slots.
func (s Sequence) put(i int, meta json.RawMessage) Sequence {
	for len(s) <= i {
		s = append(s, Slot{})
	}
	s[i] = Slot{Meta: meta, Set: true}
	return s
}

// Assets maps base keys to sequences, keeping first-encounter order.
type Assets struct {
	keys []string
	seqs map[string]Sequence
}

// NewAssets returns an empty mapping.
func NewAssets() *Assets {
	return &Assets{seqs: make(map[string]Sequence)}
}

// Keys returns the base keys in the order they were first seen.
func (a *Assets) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Get returns the sequence stored under base.
func (a *Assets) Get(base string) (Sequence, bool) {
	seq, ok := a.seqs[base]
	return seq, ok
}

// Len returns the number of base keys.
func (a *Assets) Len() int {
	return len(a.keys)
}

func (a *Assets) ensure(base string) {
	if _, ok := a.seqs[base]; ok {
		return
	}
	a.keys = append(a.keys, base)
	a.seqs[base] = Sequence{}
}

// Place files one classified entry. Frames overwrite their slot; static
// entries are appended after the current end of the sequence, unset
// trailing slots included.
func (a *Assets) Place(c Classification, meta json.RawMessage) {
	a.ensure(c.Base)
	seq := a.seqs[c.Base]
	if c.Kind == Frame {
		seq = seq.put(c.Index, meta)
	} else {
		seq = append(seq, Slot{Meta: meta, Set: true})
	}
	a.seqs[c.Base] = seq
}

// Group classifies every entry in order and collects the results.
func Group(entries []sheet.Entry) *Assets {
	a := NewAssets()
	for _, e := range entries {
		a.Place(Classify(e.Key), e.Meta)
	}
	return a
}

// MarshalJSON writes the mapping as a JSON object in key order.
func (a *Assets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		seq, err := json.Marshal(a.seqs[k])
		if err != nil {
			return nil, fmt.Errorf("asset %q: %w", k, err)
		}
		buf.Write(seq)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a mapping written by MarshalJSON, preserving key order.
func (a *Assets) UnmarshalJSON(data []byte) error {
	out := NewAssets()
	dec := json.NewDecoder(bytes.NewReader(data))
	err := sheet.DecodeObject(dec, func(key string, raw json.RawMessage) error {
		var seq Sequence
		if err := json.Unmarshal(raw, &seq); err != nil {
			return fmt.Errorf("asset %q: %w", key, err)
		}
		if seq == nil {
			seq = Sequence{}
		}
		if _, dup := out.seqs[key]; !dup {
			out.keys = append(out.keys, key)
		}
		out.seqs[key] = seq
		return nil
	})
	if err != nil {
		return err
	}
	*a = *out
	return nil
}

// Document is the output file layout: {"frames": {...}}.
type Document struct {
	Frames *Assets `json:"frames"`
}
