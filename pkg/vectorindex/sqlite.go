package vectorindex

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"documind-be/pkg/embedding"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	content   TEXT NOT NULL,
	embedding BLOB NOT NULL,
	dim       INTEGER NOT NULL
);`

// Save writes the index to a single SQLite file at exactly path,
// overwriting any previous index stored there.
func (ix *Index) Save(path string) error {
	if len(ix.entries) == 0 {
		return &BuildError{Chunk: -1, Err: errors.New("refusing to save an empty index")}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &BuildError{Chunk: -1, Err: fmt.Errorf("create index dir: %w", err)}
		}
	}
	// Re-processing replaces the whole file, not individual rows
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &BuildError{Chunk: -1, Err: fmt.Errorf("replace %s: %w", path, err)}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return &BuildError{Chunk: -1, Err: fmt.Errorf("open %s: %w", path, err)}
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return &BuildError{Chunk: -1, Err: fmt.Errorf("create schema: %w", err)}
	}

	tx, err := db.Begin()
	if err != nil {
		return &BuildError{Chunk: -1, Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO chunks (content, embedding, dim) VALUES (?, ?, ?)`)
	if err != nil {
		return &BuildError{Chunk: -1, Err: err}
	}
	defer stmt.Close()

	for i, e := range ix.entries {
		if _, err := stmt.Exec(e.Content, float32SliceToBytes(e.Vector), len(e.Vector)); err != nil {
			return &BuildError{Chunk: i, Err: fmt.Errorf("insert chunk: %w", err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &BuildError{Chunk: -1, Err: err}
	}
	return nil
}

// Load reads an index file written by Save and binds it to the given
// provider for query embedding. A missing or unreadable file is a LoadError,
// never a partially populated index.
func Load(path string, provider embedding.EmbeddingProvider) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer db.Close()

	rows, err := db.Query(`SELECT content, embedding, dim FROM chunks ORDER BY id`)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer rows.Close()

	ix := &Index{provider: provider}
	for rows.Next() {
		var content string
		var blob []byte
		var dim int
		if err := rows.Scan(&content, &blob, &dim); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}

		vec, err := bytesToFloat32Slice(blob)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		if len(vec) != dim {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("embedding blob holds %d values, row claims %d", len(vec), dim)}
		}
		if ix.dim == 0 {
			ix.dim = dim
		} else if dim != ix.dim {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("mixed dimensions %d and %d", ix.dim, dim)}
		}

		ix.entries = append(ix.entries, entry{Content: content, Vector: vec})
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if len(ix.entries) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("index file contains no chunks")}
	}

	return ix, nil
}

func float32SliceToBytes(vec []float32) []byte {
	out := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(data))
	}
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}
