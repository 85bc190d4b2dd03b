package ids

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	length   = 10
)

// Generator produces short order identifiers: 10 characters drawn uniformly
// from the 62-character alphanumeric alphabet. Uniqueness is probabilistic;
// there is no collision check, and the documents table's primary key is what
// would surface one.
type Generator struct{}

// New creates an identifier generator.
func New() *Generator {
	return &Generator{}
}

// Next returns a new identifier.
func (g *Generator) Next() string {
	return gonanoid.MustGenerate(alphabet, length)
}
