package system

import (
	"image"
	"sync"
)

// CanvasPool reuses preview canvases of the same size across batch runs.
type CanvasPool struct {
	pools map[image.Point]*sync.Pool
	mu    sync.RWMutex
}

// NewCanvasPool returns an empty pool.
func NewCanvasPool() *CanvasPool {
	return &CanvasPool{pools: make(map[image.Point]*sync.Pool)}
}

// Get returns a w by h canvas. Its pixels are not cleared.
func (p *CanvasPool) Get(w, h int) *image.RGBA {
	size := image.Pt(w, h)

	p.mu.RLock()
	pool, ok := p.pools[size]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		pool, ok = p.pools[size]
		if !ok {
			pool = &sync.Pool{
				New: func() any {
					return image.NewRGBA(image.Rectangle{Max: size})
				},
			}
			p.pools[size] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

// Put hands a canvas back for reuse. Canvases of a size never requested
// through Get are dropped.
func (p *CanvasPool) Put(img *image.RGBA) {
	if img == nil {
		return
	}

	p.mu.RLock()
	pool, ok := p.pools[img.Rect.Size()]
	p.mu.RUnlock()

	if ok {
		pool.Put(img)
	}
}
