package forum

import (
	"sync"
	"time"
)

// idGenerator issues unique int64 ids, millisecond-epoch based and strictly
// monotonic within the process. Two creations in the same millisecond get
// consecutive ids, so creation order is always reflected in id order.
type idGenerator struct {
	mu   sync.Mutex
	last int64
}

func newIDGenerator() *idGenerator {
	return &idGenerator{}
}

// Next returns the next id.
func (g *idGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe raises the floor so future ids never collide with ids already
// present in loaded state.
func (g *idGenerator) observe(id int64) {
	g.mu.Lock()
	if id > g.last {
		g.last = id
	}
	g.mu.Unlock()
}
