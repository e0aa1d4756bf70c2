package answer

import (
	"errors"
	"fmt"
)

// PromptVariant selects how aggressively the engine is grounded: the
// default variant may hedge with "I don't know", the strict variant must
// refuse with a fixed sentence when the context lacks the answer.
type PromptVariant string

const (
	VariantDefault PromptVariant = "default"
	VariantStrict  PromptVariant = "strict"
)

// ErrUnknownVariant flags a variant name outside the known set.
var ErrUnknownVariant = errors.New("unknown prompt variant")

// ParseVariant validates a variant name. The empty string means default.
func ParseVariant(s string) (PromptVariant, error) {
	switch PromptVariant(s) {
	case "":
		return VariantDefault, nil
	case VariantDefault:
		return VariantDefault, nil
	case VariantStrict:
		return VariantStrict, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

func (v PromptVariant) String() string {
	return string(v)
}
