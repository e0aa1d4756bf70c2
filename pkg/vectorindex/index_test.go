package vectorindex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns canned vectors keyed by text.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Generate(_ context.Context, text string, _ string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	vec, ok := s.vectors[text]
	if !ok {
		return nil, errors.New("no stub vector for: " + text)
	}
	return vec, nil
}

func newCorpusEmbedder() *stubEmbedder {
	return &stubEmbedder{vectors: map[string][]float32{
		"feline care guide":      {1, 0, 0},
		"canine training basics": {0, 1, 0},
		"goldfish tank setup":    {0, 0, 1},
		"cat grooming tips":      {0.9, 0.1, 0},
	}}
}

var corpus = []string{"feline care guide", "canine training basics", "goldfish tank setup"}

func TestBuildAndSearchRanksBySimilarity(t *testing.T) {
	ix := New(newCorpusEmbedder())
	require.NoError(t, ix.Build(context.Background(), corpus))
	assert.Equal(t, 3, ix.Count())
	assert.Equal(t, 3, ix.Dimension())

	hits, err := ix.Search(context.Background(), "cat grooming tips", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "feline care guide", hits[0].Content)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestSearchClampsTopK(t *testing.T) {
	ix := New(newCorpusEmbedder())
	require.NoError(t, ix.Build(context.Background(), corpus))

	hits, err := ix.Search(context.Background(), "cat grooming tips", 50)
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	_, err = ix.Search(context.Background(), "cat grooming tips", 0)
	assert.Error(t, err)
}

func TestBuildEmptyChunksFails(t *testing.T) {
	ix := New(newCorpusEmbedder())

	err := ix.Build(context.Background(), nil)

	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
}

func TestBuildPropagatesProviderFailure(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("quota exceeded")}
	ix := New(embedder)

	err := ix.Build(context.Background(), corpus)

	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, 0, buildErr.Chunk)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 0, ix.Count(), "failed build must leave the index empty")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	embedder := newCorpusEmbedder()
	ix := New(embedder)
	require.NoError(t, ix.Build(context.Background(), corpus))

	path := filepath.Join(t.TempDir(), "session.db")
	require.NoError(t, ix.Save(path))

	loaded, err := Load(path, embedder)
	require.NoError(t, err)
	assert.Equal(t, ix.Count(), loaded.Count())
	assert.Equal(t, ix.Dimension(), loaded.Dimension())

	want, err := ix.Search(context.Background(), "cat grooming tips", 3)
	require.NoError(t, err)
	got, err := loaded.Search(context.Background(), "cat grooming tips", 3)
	require.NoError(t, err)
	assert.Equal(t, want, got, "loaded index must answer identically")
}

func TestSaveOverwritesPreviousIndex(t *testing.T) {
	embedder := newCorpusEmbedder()
	path := filepath.Join(t.TempDir(), "session.db")

	first := New(embedder)
	require.NoError(t, first.Build(context.Background(), corpus[:2]))
	require.NoError(t, first.Save(path))

	second := New(embedder)
	require.NoError(t, second.Build(context.Background(), corpus))
	require.NoError(t, second.Save(path))

	loaded, err := Load(path, embedder)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Count())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.db"), newCorpusEmbedder())

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a database"), 0o644))

	_, err := Load(path, newCorpusEmbedder())

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestSampleSpreadsAcrossIndex(t *testing.T) {
	ix := New(newCorpusEmbedder())
	require.NoError(t, ix.Build(context.Background(), corpus))

	assert.Len(t, ix.Sample(2), 2)
	assert.Equal(t, corpus, ix.Sample(10))
	assert.Nil(t, ix.Sample(0))
}

func TestVectorBlobCodec(t *testing.T) {
	vec := []float32{0.25, -1.5, 3.14159, 0}

	decoded, err := bytesToFloat32Slice(float32SliceToBytes(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, decoded)

	_, err = bytesToFloat32Slice([]byte{1, 2, 3})
	assert.Error(t, err)
}
