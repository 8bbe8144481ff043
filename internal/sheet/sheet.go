package sheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// StdioPath is the input/output path that refers to stdin or stdout.
const StdioPath = "-"

// Entry is one sprite from the input sheet. Meta is passed through untouched.
type Entry struct {
	Key  string
	Meta json.RawMessage
}

// Sheet is a parsed sprite-sheet descriptor, in document order.
type Sheet struct {
	Sprites []Entry
}

// Load reads and parses the sheet at path. StdioPath reads standard input.
func Load(path string) (Sheet, error) {
	var (
		data []byte
		err  error
	)
	if path == StdioPath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Sheet{}, &ResolveError{Path: path, Err: err}
	}

	s, err := Parse(data)
	if err != nil {
		return Sheet{}, &ResolveError{Path: path, Err: err}
	}
	return s, nil
}

// Parse decodes a document of the form {"sprites": {<key>: <meta>, ...}, ...}.
// Top-level fields other than "sprites" are ignored. A key that appears twice
// keeps its first position and takes the last value.
func Parse(data []byte) (Sheet, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Sheet{}, errors.New("empty document")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var sprites json.RawMessage
	err := DecodeObject(dec, func(key string, raw json.RawMessage) error {
		if key == "sprites" {
			sprites = raw
		}
		return nil
	})
	if err != nil {
		return Sheet{}, fmt.Errorf("parse sheet: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Sheet{}, errors.New("parse sheet: unexpected data after top-level object")
	}
	if sprites == nil {
		return Sheet{}, errors.New(`parse sheet: missing "sprites" field`)
	}

	var s Sheet
	index := make(map[string]int)
	err = DecodeObject(json.NewDecoder(bytes.NewReader(sprites)), func(key string, raw json.RawMessage) error {
		if i, ok := index[key]; ok {
			s.Sprites[i].Meta = raw
			return nil
		}
		index[key] = len(s.Sprites)
		s.Sprites = append(s.Sprites, Entry{Key: key, Meta: raw})
		return nil
	})
	if err != nil {
		return Sheet{}, fmt.Errorf("parse sprites: %w", err)
	}
	return s, nil
}

// DecodeObject reads one JSON object from dec and calls fn for every member
// in document order. Member values are handed over undecoded.
func DecodeObject(dec *json.Decoder, fn func(key string, raw json.RawMessage) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %s", describeToken(tok))
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %s", describeToken(tok))
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	// Closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", v.String())
	case string:
		return "string"
	case nil:
		return "null"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
