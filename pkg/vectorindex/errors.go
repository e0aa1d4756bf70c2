package vectorindex

import "fmt"

// BuildError reports an embedding or persistence failure while building or
// saving an index.
type BuildError struct {
	Chunk int // index of the offending chunk, -1 when not chunk-specific
	Err   error
}

func (e *BuildError) Error() string {
	if e.Chunk >= 0 {
		return fmt.Sprintf("build index: chunk %d: %v", e.Chunk, e.Err)
	}
	return fmt.Sprintf("build index: %v", e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// LoadError reports a missing, unreadable or corrupt index file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load index %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
