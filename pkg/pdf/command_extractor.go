package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrPDFToolNotFound is returned by CheckAvailable when pdftotext is missing.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// CommandExtractor extracts text by shelling out to poppler's pdftotext.
type CommandExtractor struct {
	runner CommandRunner
}

func New() *CommandExtractor {
	return &CommandExtractor{runner: execRunner{}}
}

func NewWithRunner(runner CommandRunner) *CommandExtractor {
	return &CommandExtractor{runner: runner}
}

// CheckAvailable reports whether pdftotext can be invoked.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions tells operators how to get pdftotext.
func InstallInstructions() string {
	return "install pdftotext (poppler): macOS 'brew install poppler', Debian/Ubuntu 'apt install poppler-utils'"
}

func (e *CommandExtractor) Extract(ctx context.Context, data []byte, filename string) (*Extraction, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, &ExtractionError{Filename: filename, Reason: ReasonMalformed, Err: errors.New("missing PDF header")}
	}
	if bytes.Contains(data, []byte("/Encrypt")) {
		return nil, &ExtractionError{Filename: filename, Reason: ReasonEncrypted}
	}

	tmp, err := os.CreateTemp("", "documind-*.pdf")
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Reason: ReasonMalformed, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, &ExtractionError{Filename: filename, Reason: ReasonMalformed, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &ExtractionError{Filename: filename, Reason: ReasonMalformed, Err: err}
	}

	out, err := e.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", tmp.Name(), "-")
	if err != nil {
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "password") || strings.Contains(lower, "encrypt") {
			return nil, &ExtractionError{Filename: filename, Reason: ReasonEncrypted, Err: err}
		}
		return nil, &ExtractionError{Filename: filename, Reason: ReasonMalformed, Err: err}
	}

	raw := string(out)
	pages := strings.Count(raw, "\f")

	text := strings.TrimSpace(strings.ReplaceAll(raw, "\f", "\n"))
	if text == "" {
		return nil, &ExtractionError{Filename: filename, Reason: ReasonEmpty}
	}
	if pages == 0 {
		pages = 1
	}

	return &Extraction{Text: text, Pages: pages}, nil
}
