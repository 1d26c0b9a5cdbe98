package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// ExclusionService manages the admin block-list and hands it to catalog queries
type ExclusionService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewExclusionService creates a new exclusion service
func NewExclusionService(repos *repository.Repositories, logger *zap.Logger) *ExclusionService {
	return &ExclusionService{
		repos:  repos,
		logger: logger,
	}
}

// AddExclusionInput is an admin request to hide a product or category
type AddExclusionInput struct {
	ExclusionType domain.ExclusionType `json:"exclusion_type" binding:"required"`
	ItemID        string               `json:"item_id" binding:"required"`
	Reason        *string              `json:"reason"`
	CreatedBy     *string              `json:"-"`
}

// GetExcludedItemIDs returns the ids of actively excluded products.
// A failed lookup yields an empty list: an unfiltered catalog beats no catalog.
func (s *ExclusionService) GetExcludedItemIDs(ctx context.Context) []string {
	return s.GetExclusionSet(ctx).ProductIDs
}

// GetExclusionSet returns the active block-list split by kind. Fails soft like GetExcludedItemIDs.
func (s *ExclusionService) GetExclusionSet(ctx context.Context) domain.ExclusionSet {
	exclusions, err := s.repos.Exclusion.List(ctx, true)
	if err != nil {
		s.logger.Warn("Failed to load catalog exclusions, serving unfiltered catalog", zap.Error(err))
		return domain.ExclusionSet{}
	}

	var set domain.ExclusionSet
	for _, e := range exclusions {
		switch e.ExclusionType {
		case domain.ExclusionTypeProduct:
			set.ProductIDs = append(set.ProductIDs, e.ItemID)
		case domain.ExclusionTypeCategory:
			set.CategoryIDs = append(set.CategoryIDs, e.ItemID)
		}
	}
	set.CategoryIDs = s.withDescendants(ctx, set.CategoryIDs)
	return set
}

// withDescendants extends excluded categories with their whole subtrees, so a hidden
// category hides its subcategories and their products too. On lookup failure only
// the listed categories are hidden.
func (s *ExclusionService) withDescendants(ctx context.Context, categoryIDs []string) []string {
	if len(categoryIDs) == 0 {
		return categoryIDs
	}
	descendants, err := s.repos.Category.Descendants(ctx, categoryIDs)
	if err != nil {
		s.logger.Warn("Failed to expand excluded categories", zap.Error(err))
		return categoryIDs
	}

	seen := make(map[string]bool, len(categoryIDs)+len(descendants))
	out := make([]string, 0, len(categoryIDs)+len(descendants))
	for _, id := range append(categoryIDs, descendants...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ListExclusions returns exclusions for the admin view, newest first
func (s *ExclusionService) ListExclusions(ctx context.Context, activeOnly bool) ([]*domain.CatalogExclusion, error) {
	return s.repos.Exclusion.List(ctx, activeOnly)
}

// AddExclusion hides an item. An active exclusion for the same pair is a conflict.
func (s *ExclusionService) AddExclusion(ctx context.Context, input AddExclusionInput) (*domain.CatalogExclusion, error) {
	itemID := strings.TrimSpace(input.ItemID)
	fields := map[string]string{}
	if !input.ExclusionType.IsValid() {
		fields["exclusion_type"] = "must be one of: product, category"
	}
	if itemID == "" {
		fields["item_id"] = "is required"
	}
	if len(fields) > 0 {
		return nil, &errors.ErrValidation{Message: "invalid exclusion", Fields: fields}
	}

	exclusion := &domain.CatalogExclusion{
		ExclusionType: input.ExclusionType,
		ItemID:        itemID,
		Reason:        input.Reason,
		CreatedBy:     input.CreatedBy,
	}
	if err := s.repos.Exclusion.Create(ctx, exclusion); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog exclusion added",
		zap.String("exclusion_id", exclusion.ID.String()),
		zap.String("exclusion_type", string(exclusion.ExclusionType)),
		zap.String("item_id", exclusion.ItemID))
	return exclusion, nil
}

// DeleteExclusion soft-deletes an exclusion; the row stays for audit
func (s *ExclusionService) DeleteExclusion(ctx context.Context, id uuid.UUID) error {
	if err := s.repos.Exclusion.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Catalog exclusion removed", zap.String("exclusion_id", id.String()))
	return nil
}
