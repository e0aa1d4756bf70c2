package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor maps filenames to canned outcomes.
type fakeExtractor struct {
	outcomes map[string]fakeOutcome
}

type fakeOutcome struct {
	extraction *Extraction
	err        error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, filename string) (*Extraction, error) {
	out, ok := f.outcomes[filename]
	if !ok {
		return nil, errors.New("unexpected file: " + filename)
	}
	return out.extraction, out.err
}

func TestExtractAllRecordsEveryOutcome(t *testing.T) {
	extractor := &fakeExtractor{outcomes: map[string]fakeOutcome{
		"report.pdf": {extraction: &Extraction{Text: "quarterly numbers", Pages: 3}},
		"locked.pdf": {err: &ExtractionError{Filename: "locked.pdf", Reason: ReasonEncrypted}},
		"blank.pdf":  {err: &ExtractionError{Filename: "blank.pdf", Reason: ReasonEmpty}},
		"broken.pdf": {err: &ExtractionError{Filename: "broken.pdf", Reason: ReasonMalformed, Err: errors.New("bad xref")}},
	}}

	files := []File{
		{Name: "report.pdf", Data: []byte("a")},
		{Name: "locked.pdf", Data: []byte("b")},
		{Name: "blank.pdf", Data: []byte("c")},
		{Name: "broken.pdf", Data: []byte("d")},
		{Name: "photo.png", Data: []byte("e")},
	}

	text, results := ExtractAll(context.Background(), extractor, files, []string{".pdf"})

	require.Len(t, results, len(files))

	assert.Equal(t, "report.pdf", results[0].Filename)
	assert.Equal(t, StatusSuccess, results[0].Status)
	assert.Equal(t, 3, results[0].Pages)
	assert.Equal(t, len([]rune("quarterly numbers")), results[0].ExtractedChars)

	assert.Equal(t, StatusSkipped, results[1].Status)
	assert.Equal(t, ReasonEncrypted, results[1].Reason)

	assert.Equal(t, StatusSkipped, results[2].Status)
	assert.Equal(t, ReasonEmpty, results[2].Reason)

	assert.Equal(t, StatusFailed, results[3].Status)
	assert.Contains(t, results[3].Reason, "bad xref")

	assert.Equal(t, StatusSkipped, results[4].Status)
	assert.Equal(t, ReasonUnsupported, results[4].Reason)

	assert.Equal(t, "quarterly numbers", text)
}

func TestExtractAllJoinsSuccessesWithBlankLine(t *testing.T) {
	extractor := &fakeExtractor{outcomes: map[string]fakeOutcome{
		"a.pdf": {extraction: &Extraction{Text: "first document", Pages: 1}},
		"b.pdf": {err: &ExtractionError{Filename: "b.pdf", Reason: ReasonEncrypted}},
		"c.pdf": {extraction: &Extraction{Text: "third document", Pages: 2}},
	}}

	files := []File{
		{Name: "a.pdf"},
		{Name: "b.pdf"},
		{Name: "c.pdf"},
	}

	text, results := ExtractAll(context.Background(), extractor, files, nil)

	assert.Equal(t, "first document\n\nthird document", text)
	require.Len(t, results, 3)
	assert.Equal(t, StatusSkipped, results[1].Status)
}

func TestExtractAllEmptyBatch(t *testing.T) {
	extractor := &fakeExtractor{outcomes: map[string]fakeOutcome{}}

	text, results := ExtractAll(context.Background(), extractor, nil, []string{".pdf"})

	assert.Equal(t, "", text)
	assert.Empty(t, results)
}

func TestExtractAllNothingUsable(t *testing.T) {
	extractor := &fakeExtractor{outcomes: map[string]fakeOutcome{
		"x.pdf": {err: &ExtractionError{Filename: "x.pdf", Reason: ReasonEmpty}},
		"y.pdf": {err: &ExtractionError{Filename: "y.pdf", Reason: ReasonEncrypted}},
	}}

	text, results := ExtractAll(context.Background(), extractor, []File{{Name: "x.pdf"}, {Name: "y.pdf"}}, nil)

	assert.Equal(t, "", text)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, StatusSkipped, r.Status)
	}
}

func TestValidateFileType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		allowed  []string
		wantErr  bool
	}{
		{"allowed extension", "doc.pdf", []string{".pdf"}, false},
		{"case insensitive", "DOC.PDF", []string{".pdf"}, false},
		{"rejected extension", "doc.docx", []string{".pdf"}, true},
		{"no extension", "doc", []string{".pdf"}, true},
		{"empty allowlist permits", "doc.docx", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileType(tt.filename, tt.allowed)
			if tt.wantErr {
				var extractionErr *ExtractionError
				require.Error(t, err)
				require.True(t, errors.As(err, &extractionErr))
				assert.Equal(t, ReasonUnsupported, extractionErr.Reason)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
