package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	calls  int
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	m.calls++
	return m.output, m.err
}

func validPDF(extra string) []byte {
	return []byte("%PDF-1.7\n" + extra)
}

func TestExtractCountsPagesAndStripsFormFeeds(t *testing.T) {
	runner := &mockRunner{output: []byte("page one text\fpage two text\f")}
	extractor := NewWithRunner(runner)

	got, err := extractor.Extract(context.Background(), validPDF("body"), "doc.pdf")

	require.NoError(t, err)
	assert.Equal(t, 2, got.Pages)
	assert.NotContains(t, got.Text, "\f")
	assert.Contains(t, got.Text, "page one text")
	assert.Contains(t, got.Text, "page two text")
}

func TestExtractSinglePageWithoutTrailingFeed(t *testing.T) {
	runner := &mockRunner{output: []byte("only page")}
	extractor := NewWithRunner(runner)

	got, err := extractor.Extract(context.Background(), validPDF("body"), "doc.pdf")

	require.NoError(t, err)
	assert.Equal(t, 1, got.Pages)
	assert.Equal(t, "only page", got.Text)
}

func TestExtractDetectsEncryptionMarkerWithoutRunning(t *testing.T) {
	runner := &mockRunner{output: []byte("never used")}
	extractor := NewWithRunner(runner)

	_, err := extractor.Extract(context.Background(), validPDF("/Encrypt 42 0 R"), "locked.pdf")

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, ReasonEncrypted, extractionErr.Reason)
	assert.Equal(t, 0, runner.calls, "encrypted files should not reach pdftotext")
}

func TestExtractDetectsPasswordErrorFromTool(t *testing.T) {
	runner := &mockRunner{err: errors.New("exit status 1: Command Line Error: Incorrect password")}
	extractor := NewWithRunner(runner)

	_, err := extractor.Extract(context.Background(), validPDF("body"), "locked.pdf")

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, ReasonEncrypted, extractionErr.Reason)
}

func TestExtractRejectsNonPDFData(t *testing.T) {
	extractor := NewWithRunner(&mockRunner{})

	_, err := extractor.Extract(context.Background(), []byte("plain text"), "fake.pdf")

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, ReasonMalformed, extractionErr.Reason)
}

func TestExtractEmptyOutputIsEmptyFile(t *testing.T) {
	runner := &mockRunner{output: []byte(" \f ")}
	extractor := NewWithRunner(runner)

	_, err := extractor.Extract(context.Background(), validPDF("body"), "blank.pdf")

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, ReasonEmpty, extractionErr.Reason)
}

func TestExtractToolFailureIsMalformed(t *testing.T) {
	runner := &mockRunner{err: errors.New("exit status 1: Syntax Error: couldn't read xref table")}
	extractor := NewWithRunner(runner)

	_, err := extractor.Extract(context.Background(), validPDF("body"), "broken.pdf")

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, ReasonMalformed, extractionErr.Reason)
	assert.Contains(t, extractionErr.Error(), "broken.pdf")
}

func TestErrPDFToolNotFoundMessage(t *testing.T) {
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
	assert.Contains(t, InstallInstructions(), "poppler")
}
