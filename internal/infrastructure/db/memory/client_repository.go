package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// ClientRepository is the degraded-mode client store.
type ClientRepository struct {
	mu      sync.RWMutex
	seq     int
	clients map[string]domain.Client
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{clients: make(map[string]domain.Client)}
}

func (r *ClientRepository) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *client
	if clone.ID == "" {
		r.seq++
		clone.ID = "c" + strconv.Itoa(r.seq)
	}
	r.clients[clone.ID] = clone

	out := clone
	return &out, nil
}

func (r *ClientRepository) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := c
	return &clone, nil
}

func (r *ClientRepository) Update(_ context.Context, client *domain.Client) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.clients[client.ID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}

	clone := *client
	clone.CreatedAt = existing.CreatedAt
	r.clients[clone.ID] = clone

	out := clone
	return &out, nil
}

func (r *ClientRepository) List(_ context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
