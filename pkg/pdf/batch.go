package pdf

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// ErrNoExtractableText flags a batch where no file yielded any text.
var ErrNoExtractableText = &ExtractionError{Filename: "batch", Reason: "no extractable text in any file"}

// File is one uploaded document.
type File struct {
	Name string
	Data []byte
}

// FileResult records the outcome for a single file in a batch.
type FileResult struct {
	Filename       string `json:"filename"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	Pages          int    `json:"pages,omitempty"`
	ExtractedChars int    `json:"extracted_chars,omitempty"`
}

// ValidateFileType rejects files whose extension is not in the allowlist.
// An empty allowlist permits everything.
func ValidateFileType(filename string, allowed []string) error {
	if len(allowed) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return nil
		}
	}
	return &ExtractionError{Filename: filename, Reason: ReasonUnsupported}
}

// ExtractAll runs extraction over a batch. One bad file never aborts the
// batch; every input gets a FileResult in input order. The returned text is
// the successful extractions joined by blank lines.
func ExtractAll(ctx context.Context, extractor Extractor, files []File, allowedExts []string) (string, []FileResult) {
	results := make([]FileResult, 0, len(files))
	texts := make([]string, 0, len(files))

	for _, f := range files {
		if err := ValidateFileType(f.Name, allowedExts); err != nil {
			results = append(results, FileResult{
				Filename: f.Name,
				Status:   StatusSkipped,
				Reason:   ReasonUnsupported,
			})
			continue
		}

		extraction, err := extractor.Extract(ctx, f.Data, f.Name)
		if err != nil {
			results = append(results, fileResultFromError(f.Name, err))
			continue
		}

		texts = append(texts, extraction.Text)
		results = append(results, FileResult{
			Filename:       f.Name,
			Status:         StatusSuccess,
			Pages:          extraction.Pages,
			ExtractedChars: len([]rune(extraction.Text)),
		})
	}

	return strings.Join(texts, "\n\n"), results
}

func fileResultFromError(filename string, err error) FileResult {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		switch extractionErr.Reason {
		case ReasonEncrypted, ReasonEmpty, ReasonUnsupported:
			return FileResult{Filename: filename, Status: StatusSkipped, Reason: extractionErr.Reason}
		}
		return FileResult{Filename: filename, Status: StatusFailed, Reason: extractionErr.Detail()}
	}
	return FileResult{Filename: filename, Status: StatusFailed, Reason: err.Error()}
}
