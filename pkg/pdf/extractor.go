package pdf

import (
	"context"
	"fmt"
)

// Failure reasons surfaced to clients in per-file results.
const (
	ReasonEncrypted   = "encrypted"
	ReasonEmpty       = "empty file"
	ReasonMalformed   = "malformed"
	ReasonUnsupported = "unsupported file type"
)

// Extraction is the text pulled out of a single document.
type Extraction struct {
	Text  string
	Pages int
}

// Extractor converts raw document bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte, filename string) (*Extraction, error)
}

// ExtractionError reports why a single document could not be read.
type ExtractionError struct {
	Filename string
	Reason   string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Filename, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.Filename, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Detail is the reason text shown in a FileResult.
func (e *ExtractionError) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}
