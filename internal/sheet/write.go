package sheet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Encode marshals v as JSON indented by indent spaces and writes it to w,
// followed by a newline. An indent of 0 writes compact JSON.
func Encode(w io.Writer, v any, indent int) error {
	data, err := marshal(v, indent)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteJSON persists v at path. The document is written to a temporary file
// next to path and renamed into place, so a failed write never leaves a
// truncated file behind.
func WriteJSON(path string, v any, indent int) error {
	if path == StdioPath {
		if err := Encode(os.Stdout, v, indent); err != nil {
			return &WriteError{Path: path, Err: err}
		}
		return nil
	}

	data, err := marshal(v, indent)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := writeAtomic(path, data); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func marshal(v any, indent int) ([]byte, error) {
	if indent < 0 {
		return nil, fmt.Errorf("negative indent %d", indent)
	}
	var (
		data []byte
		err  error
	)
	if indent == 0 {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	}
	if err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
