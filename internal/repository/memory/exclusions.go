package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type exclusionRepository struct {
	s *Store
}

func (r *exclusionRepository) List(_ context.Context, activeOnly bool) ([]*domain.CatalogExclusion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.CatalogExclusion, 0)
	for _, e := range r.s.exclusions {
		if activeOnly && !e.IsActive {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *exclusionRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.CatalogExclusion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.exclusions[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "exclusion", ID: id.String()}
	}
	cp := *e
	return &cp, nil
}

func (r *exclusionRepository) Create(_ context.Context, e *domain.CatalogExclusion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.exclusions {
		if existing.IsActive && existing.ExclusionType == e.ExclusionType && existing.ItemID == e.ItemID {
			return &errors.ErrConflict{Message: "item is already excluded"}
		}
	}

	now := time.Now()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.IsActive = true
	e.CreatedAt = now
	e.UpdatedAt = now
	cp := *e
	r.s.exclusions[e.ID] = &cp
	return nil
}

func (r *exclusionRepository) Deactivate(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.exclusions[id]
	if !ok || !e.IsActive {
		return &errors.ErrNotFound{Resource: "exclusion", ID: id.String()}
	}
	e.IsActive = false
	e.UpdatedAt = time.Now()
	return nil
}
