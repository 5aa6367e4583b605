package internal

import (
	"container/list"
	"image"
)

const defaultIconCacheSize = 16

type cachedBitmap struct {
	key string
	bmp *image.RGBA
}

// BitmapCache holds rasterized icons. Keys encode icon, pixel size and
// colour, so a theme or scale change simply misses and the stale bitmaps age
// out once the cache is full.
type BitmapCache struct {
	items map[string]*list.Element
	lru   *list.List // front is most recent
	limit int
}

func NewBitmapCache() *BitmapCache {
	return NewBitmapCacheWithSize(defaultIconCacheSize)
}

func NewBitmapCacheWithSize(limit int) *BitmapCache {
	return &BitmapCache{
		items: make(map[string]*list.Element),
		lru:   list.New(),
		limit: max(limit, 1),
	}
}

// Get returns the bitmap for key and marks it as recently used.
func (c *BitmapCache) Get(key string) *image.RGBA {
	el, ok := c.items[key]
	if !ok {
		return nil
	}
	c.lru.MoveToFront(el)
	return el.Value.(*cachedBitmap).bmp
}

// Set stores bmp under key, dropping the least recently drawn icon when the
// cache is full.
func (c *BitmapCache) Set(key string, bmp *image.RGBA) {
	if el, ok := c.items[key]; ok {
		el.Value.(*cachedBitmap).bmp = bmp
		c.lru.MoveToFront(el)
		return
	}
	for c.lru.Len() >= c.limit {
		last := c.lru.Back()
		delete(c.items, last.Value.(*cachedBitmap).key)
		c.lru.Remove(last)
	}
	c.items[key] = c.lru.PushFront(&cachedBitmap{key: key, bmp: bmp})
}

func (c *BitmapCache) Len() int {
	return c.lru.Len()
}

// Clear drops every bitmap.
func (c *BitmapCache) Clear() {
	clear(c.items)
	c.lru.Init()
}
