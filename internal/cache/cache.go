package cache

import (
	"container/list"
	"sync"
	"time"
)

// PreviewCache is a small LRU for rendered previews, keyed by path and
// pane width. Entries remember the source's modification time and fall out
// when the file changes underneath them.
type PreviewCache struct {
	mu        sync.Mutex
	capacity  int
	evictList *list.List
	items     map[key]*list.Element
}

type key struct {
	path  string
	width int
}

type entry struct {
	key      key
	modTime  time.Time
	rendered string
}

func New(capacity int) *PreviewCache {
	if capacity < 1 {
		capacity = 1
	}
	return &PreviewCache{
		capacity:  capacity,
		evictList: list.New(),
		items:     make(map[key]*list.Element),
	}
}

// Get returns the cached rendering for path at width, missing when the
// stored modification time no longer matches.
func (c *PreviewCache) Get(path string, width int, modTime time.Time) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ele, hit := c.items[key{path: path, width: width}]
	if !hit {
		return "", false
	}

	cached := ele.Value.(*entry)
	if !cached.modTime.Equal(modTime) {
		c.removeElement(ele)
		return "", false
	}

	c.evictList.MoveToFront(ele)
	return cached.rendered, true
}

func (c *PreviewCache) Put(path string, width int, modTime time.Time, rendered string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{path: path, width: width}
	if ele, hit := c.items[k]; hit {
		c.evictList.MoveToFront(ele)
		cached := ele.Value.(*entry)
		cached.modTime = modTime
		cached.rendered = rendered
		return
	}

	ele := c.evictList.PushFront(&entry{key: k, modTime: modTime, rendered: rendered})
	c.items[k] = ele

	if c.evictList.Len() > c.capacity {
		c.removeOldest()
	}
}

func (c *PreviewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *PreviewCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictList.Init()
	c.items = make(map[key]*list.Element)
}

func (c *PreviewCache) removeOldest() {
	if ele := c.evictList.Back(); ele != nil {
		c.removeElement(ele)
	}
}

func (c *PreviewCache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	delete(c.items, e.Value.(*entry).key)
}
