package graphics

import (
	"sync"
)

// TextureCache shares 2D textures between renderables by path. Each Get takes
// a reference; the texture is deleted when the last reference is released.
type TextureCache struct {
	mu      sync.RWMutex
	entries map[string]*cachedTexture
	load    func(path string) (uint32, error)
	free    func(tex uint32)
}

type cachedTexture struct {
	id   uint32
	refs int
}

// NewTextureCache returns a cache that loads flipped 2D textures from disk.
func NewTextureCache() *TextureCache {
	return &TextureCache{
		entries: make(map[string]*cachedTexture),
		load: func(path string) (uint32, error) {
			tex, _, _, err := LoadTexture2D(path, true)
			return tex, err
		},
		free: DeleteTexture,
	}
}

// Get returns a cached texture ID for the given path.
// If the texture is already loaded, it returns the cached ID.
// Otherwise, it loads the texture from disk and caches it.
func (c *TextureCache) Get(path string) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok {
		e.refs++
		return e.id, nil
	}

	tex, err := c.load(path)
	if err != nil {
		return 0, err
	}

	c.entries[path] = &cachedTexture{id: tex, refs: 1}
	return tex, nil
}

// Release drops one reference to path, deleting the texture with the last one.
func (c *TextureCache) Release(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		c.free(e.id)
		delete(c.entries, path)
	}
}

// Len returns the number of distinct textures held.
func (c *TextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
