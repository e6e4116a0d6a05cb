package metadata

import (
	"context"
	"fmt"
	"sync"
)

// MemoryPublisher keeps documents in process memory. Used by the dev mode
// and tests; contents are lost on restart.
type MemoryPublisher struct {
	Gateway string

	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryPublisher(gateway string) *MemoryPublisher {
	return &MemoryPublisher{Gateway: gateway, objects: make(map[string][]byte)}
}

func (p *MemoryPublisher) Publish(ctx context.Context, doc Document) (Publication, error) {
	if err := ctx.Err(); err != nil {
		return Publication{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	data, err := Encode(doc)
	if err != nil {
		return Publication{}, fmt.Errorf("encode document: %w", err)
	}
	addr := ContentAddress(data)

	p.mu.Lock()
	p.objects[addr] = data
	p.mu.Unlock()

	return Publication{ContentAddress: addr, URI: gatewayURI(p.Gateway, addr)}, nil
}

// Get returns the stored encoding for addr.
func (p *MemoryPublisher) Get(addr string) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, ok := p.objects[addr]
	return data, ok
}

func (p *MemoryPublisher) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.objects)
}

func (p *MemoryPublisher) Ping(context.Context) error { return nil }
