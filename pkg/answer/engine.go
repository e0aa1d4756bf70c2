package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"documind-be/pkg/llm"
	"documind-be/pkg/vectorindex"
)

// Stages a generation failure can come from.
const (
	StageRewrite    = "rewrite"
	StageRetrieve   = "retrieve"
	StageSynthesize = "synthesize"
)

// GenerationError reports a failed answering attempt. The engine never
// substitutes a fallback answer; the caller decides what to show.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate answer: %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Result is a successful answer with its supporting material.
type Result struct {
	Answer         string
	RewrittenQuery string
	Context        []vectorindex.Scored
}

// Engine answers questions over one session's index in two stages: rewrite
// the question against the conversation history, then synthesize a grounded
// answer from retrieved chunks.
type Engine struct {
	index   *vectorindex.Index
	llm     llm.LLMProvider
	variant PromptVariant
	topK    int
}

func NewEngine(index *vectorindex.Index, provider llm.LLMProvider, variant PromptVariant, topK int) *Engine {
	if topK <= 0 {
		topK = 4
	}
	return &Engine{
		index:   index,
		llm:     provider,
		variant: variant,
		topK:    topK,
	}
}

func (e *Engine) Variant() PromptVariant {
	return e.variant
}

func (e *Engine) Index() *vectorindex.Index {
	return e.index
}

// Answer runs the full pipeline for one question. History is the prior
// conversation, oldest first, and is never mutated.
func (e *Engine) Answer(ctx context.Context, query string, history []llm.Message) (*Result, error) {
	question, err := e.rewrite(ctx, query, history)
	if err != nil {
		return nil, err
	}

	hits, err := e.index.Search(ctx, question, e.topK)
	if err != nil {
		return nil, &GenerationError{Stage: StageRetrieve, Err: err}
	}

	chunks := make([]string, len(hits))
	for i, h := range hits {
		chunks[i] = h.Content
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: groundedInstruction(e.variant, chunks)})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: question})

	out, err := e.llm.Chat(ctx, messages)
	if err != nil {
		return nil, &GenerationError{Stage: StageSynthesize, Err: err}
	}
	answerText := strings.TrimSpace(out)
	if answerText == "" {
		return nil, &GenerationError{Stage: StageSynthesize, Err: errors.New("empty completion")}
	}

	return &Result{
		Answer:         answerText,
		RewrittenQuery: question,
		Context:        hits,
	}, nil
}

// rewrite reformulates the question so it stands alone. With no history
// there is nothing to resolve and no model call is made.
func (e *Engine) rewrite(ctx context.Context, query string, history []llm.Message) (string, error) {
	if len(history) == 0 {
		return query, nil
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: rewriteInstruction})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: query})

	out, err := e.llm.Chat(ctx, messages, llm.WithTemperature(0))
	if err != nil {
		return "", &GenerationError{Stage: StageRewrite, Err: err}
	}

	rewritten := strings.TrimSpace(out)
	if rewritten == "" {
		// A blank reformulation is useless; the original question still is valid
		return query, nil
	}
	return rewritten, nil
}

var cannedSuggestions = []string{
	"What is this document about?",
	"Summarize the key points.",
	"What are the main conclusions?",
}

// Suggest proposes up to n starter questions for the indexed content. It
// degrades to canned suggestions instead of failing.
func (e *Engine) Suggest(ctx context.Context, n int) []string {
	if n <= 0 {
		n = 3
	}

	samples := e.index.Sample(3)
	if len(samples) == 0 {
		return trim(cannedSuggestions, n)
	}

	out, err := e.llm.Generate(ctx, suggestionPrompt(n, samples), llm.WithTemperature(0.7))
	if err != nil {
		return trim(cannedSuggestions, n)
	}

	suggestions := parseSuggestions(out, n)
	if len(suggestions) == 0 {
		return trim(cannedSuggestions, n)
	}
	return suggestions
}

func parseSuggestions(out string, n int) []string {
	var suggestions []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. )")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == n {
			break
		}
	}
	return suggestions
}

func trim(list []string, n int) []string {
	if n >= len(list) {
		return list
	}
	return list[:n]
}
