package console

import (
	"sync"
	"time"
)

// timeCache memoizes one formatted timestamp per second. The layouts the
// sink uses have second granularity, so re-formatting on every record would
// only burn cycles on identical output.
type timeCache struct {
	layout string
	utc    bool

	mu    sync.Mutex
	unix  int64
	value string
}

func newTimeCache(layout string, utc bool) *timeCache {
	return &timeCache{layout: layout, utc: utc}
}

func (c *timeCache) current(now time.Time) string {
	if c.utc {
		now = now.UTC()
	}
	unix := now.Unix()
	c.mu.Lock()
	defer c.mu.Unlock()
	if unix != c.unix || c.value == "" {
		c.unix = unix
		c.value = now.Format(c.layout)
	}
	return c.value
}
