package store

import (
	"documind-be/pkg/answer"
	"documind-be/pkg/vectorindex"
)

// ActiveSession is the fully hydrated in-memory state for one chat session:
// the loaded vector index plus the answer engine bound to it. Cache entries
// hold either all of this or nothing.
type ActiveSession struct {
	SessionID string
	Index     *vectorindex.Index
	Engine    *answer.Engine
}
