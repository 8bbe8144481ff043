package sheet

import "fmt"

// ResolveError reports an input document that could not be read or parsed.
type ResolveError struct {
	Path string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("load %s: %v", displayPath(e.Path), e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// WriteError reports an output document that could not be persisted.
// The previous file at Path, if any, is left untouched.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", displayPath(e.Path), e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func displayPath(p string) string {
	switch p {
	case StdioPath:
		return "<stdio>"
	case "":
		return `""`
	default:
		return p
	}
}
