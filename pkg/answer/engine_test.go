package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"documind-be/pkg/llm"
	"documind-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constEmbedder embeds every text to the same unit vector, which is enough
// for exercising the pipeline around the index.
type constEmbedder struct{}

func (constEmbedder) Generate(_ context.Context, _ string, _ string) ([]float32, error) {
	return []float32{1, 0}, nil
}

// scriptedLLM replays canned responses and records every call.
type scriptedLLM struct {
	responses []string
	errs      []error
	calls     [][]llm.Message
}

func (f *scriptedLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, history)

	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("scriptedLLM: no response scripted")
}

func (f *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func buildTestIndex(t *testing.T) *vectorindex.Index {
	t.Helper()
	ix := vectorindex.New(constEmbedder{})
	require.NoError(t, ix.Build(context.Background(), []string{
		"the warranty period is two years",
		"the device weighs 300 grams",
	}))
	return ix
}

func TestAnswerWithoutHistorySkipsRewrite(t *testing.T) {
	model := &scriptedLLM{responses: []string{"Two years."}}
	engine := NewEngine(buildTestIndex(t), model, VariantDefault, 2)

	res, err := engine.Answer(context.Background(), "How long is the warranty?", nil)

	require.NoError(t, err)
	assert.Equal(t, "Two years.", res.Answer)
	assert.Equal(t, "How long is the warranty?", res.RewrittenQuery)
	require.Len(t, model.calls, 1, "no history means no rewrite call")

	messages := model.calls[0]
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "the warranty period is two years")
	assert.Equal(t, "How long is the warranty?", messages[len(messages)-1].Content)
}

func TestAnswerWithHistoryRewritesFirst(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "Tell me about the X200."},
		{Role: "model", Content: "The X200 is a portable scanner."},
	}
	model := &scriptedLLM{responses: []string{
		"What is the warranty period of the X200?",
		"The warranty period is two years.",
	}}
	engine := NewEngine(buildTestIndex(t), model, VariantDefault, 2)

	res, err := engine.Answer(context.Background(), "and its warranty?", history)

	require.NoError(t, err)
	require.Len(t, model.calls, 2)

	rewriteCall := model.calls[0]
	assert.Contains(t, rewriteCall[0].Content, "Do NOT answer the question")
	assert.Equal(t, "and its warranty?", rewriteCall[len(rewriteCall)-1].Content)

	synthesizeCall := model.calls[1]
	assert.Equal(t, "What is the warranty period of the X200?",
		synthesizeCall[len(synthesizeCall)-1].Content)

	assert.Equal(t, "What is the warranty period of the X200?", res.RewrittenQuery)
	assert.Equal(t, "The warranty period is two years.", res.Answer)
	require.Len(t, res.Context, 2)
}

func TestAnswerStrictVariantCarriesRefusalContract(t *testing.T) {
	model := &scriptedLLM{responses: []string{StrictRefusal}}
	engine := NewEngine(buildTestIndex(t), model, VariantStrict, 2)

	res, err := engine.Answer(context.Background(), "Who won the 1998 World Cup?", nil)

	require.NoError(t, err)
	assert.Equal(t, StrictRefusal, res.Answer)

	system := model.calls[0][0]
	assert.Contains(t, system.Content, StrictRefusal)
	assert.Contains(t, system.Content, "ONLY")
}

func TestAnswerRewriteFailureIsTyped(t *testing.T) {
	history := []llm.Message{{Role: "user", Content: "hi"}}
	model := &scriptedLLM{errs: []error{errors.New("model offline")}}
	engine := NewEngine(buildTestIndex(t), model, VariantDefault, 2)

	_, err := engine.Answer(context.Background(), "and then?", history)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageRewrite, genErr.Stage)
}

func TestAnswerSynthesizeFailureIsTyped(t *testing.T) {
	model := &scriptedLLM{errs: []error{errors.New("model offline")}}
	engine := NewEngine(buildTestIndex(t), model, VariantDefault, 2)

	_, err := engine.Answer(context.Background(), "anything", nil)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageSynthesize, genErr.Stage)
}

func TestAnswerNeverReturnsEmptyAnswer(t *testing.T) {
	model := &scriptedLLM{responses: []string{"   \n  "}}
	engine := NewEngine(buildTestIndex(t), model, VariantDefault, 2)

	_, err := engine.Answer(context.Background(), "anything", nil)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageSynthesize, genErr.Stage)
}

func TestAnswerBlankRewriteKeepsOriginalQuestion(t *testing.T) {
	history := []llm.Message{{Role: "user", Content: "hi"}}
	model := &scriptedLLM{responses: []string{"", "An answer."}}
	engine := NewEngine(buildTestIndex(t), model, VariantDefault, 2)

	res, err := engine.Answer(context.Background(), "what about the weight?", history)

	require.NoError(t, err)
	assert.Equal(t, "what about the weight?", res.RewrittenQuery)
}

func TestSuggestFallsBackOnModelFailure(t *testing.T) {
	model := &scriptedLLM{errs: []error{errors.New("model offline")}}
	engine := NewEngine(buildTestIndex(t), model, VariantDefault, 2)

	got := engine.Suggest(context.Background(), 3)

	assert.Equal(t, cannedSuggestions, got)
}

func TestSuggestParsesNumberedLines(t *testing.T) {
	model := &scriptedLLM{responses: []string{
		"1. What is the warranty period?\n2) How heavy is the device?\n- Where is it made?",
	}}
	engine := NewEngine(buildTestIndex(t), model, VariantDefault, 2)

	got := engine.Suggest(context.Background(), 3)

	require.Len(t, got, 3)
	assert.Equal(t, "What is the warranty period?", got[0])
	assert.Equal(t, "How heavy is the device?", got[1])
	assert.Equal(t, "Where is it made?", got[2])
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    PromptVariant
		wantErr bool
	}{
		{"", VariantDefault, false},
		{"default", VariantDefault, false},
		{"strict", VariantStrict, false},
		{"STRICT", "", true},
		{"creative", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestGroundedInstructionJoinsChunks(t *testing.T) {
	out := groundedInstruction(VariantDefault, []string{"first chunk", "second chunk"})

	assert.True(t, strings.Contains(out, "first chunk\n\nsecond chunk"))
	assert.NotContains(t, out, StrictRefusal)
}
