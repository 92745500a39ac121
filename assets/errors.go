package assets

import "fmt"

// Kind names the asset class in a LoadError.
type Kind string

const (
	KindFont  Kind = "font"
	KindImage Kind = "image"
)

// LoadError reports a failed fetch or decode. It is terminal: loads are
// never retried.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("assets: load %s %q: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
