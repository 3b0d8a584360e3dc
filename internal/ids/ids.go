package ids

import (
	"sync/atomic"

	"github.com/sqids/sqids-go"
)

// Generator hands out short opaque identifiers for form entries. IDs are
// unique for the lifetime of the generator.
type Generator struct {
	sqids *sqids.Sqids
	next  atomic.Uint64
}

func New() (*Generator, error) {
	s, err := sqids.New(sqids.Options{
		MinLength: 6,
	})
	if err != nil {
		return nil, err
	}
	return &Generator{sqids: s}, nil
}

func (g *Generator) Encode(n uint64) (string, error) {
	return g.sqids.Encode([]uint64{n})
}

func (g *Generator) Next() (string, error) {
	return g.Encode(g.next.Add(1) - 1)
}
