package virtuals

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ProgramCache stores compiled expression programs keyed by expression
// strings. Implementations shared across getters must be safe for concurrent
// use.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// LRUProgramCache bounds the number of retained programs, evicting the least
// recently used entry once size is reached.
type LRUProgramCache struct {
	programs *lru.Cache[string, any]
}

// NewLRUProgramCache builds a cache holding at most size programs.
func NewLRUProgramCache(size int) (*LRUProgramCache, error) {
	programs, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("virtuals: program cache: %w", err)
	}
	return &LRUProgramCache{programs: programs}, nil
}

func (c *LRUProgramCache) Get(key string) (any, bool) {
	return c.programs.Get(key)
}

func (c *LRUProgramCache) Set(key string, value any) {
	c.programs.Add(key, value)
}
