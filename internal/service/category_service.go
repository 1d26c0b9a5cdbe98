package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/catalog"
	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// CategoryService builds category listings, trees and breadcrumbs
type CategoryService struct {
	repos      *repository.Repositories
	exclusions *ExclusionService
	logger     *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repos *repository.Repositories, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		repos:      repos,
		exclusions: NewExclusionService(repos, logger),
		logger:     logger,
	}
}

// CategoryDetail is a category with its direct children and resolved ancestor chain
type CategoryDetail struct {
	Category    *domain.CategoryNode `json:"category"`
	Breadcrumbs []domain.Breadcrumb  `json:"breadcrumbs"`
}

// ListCategories lists the children of parentID (roots when nil), each with a live
// product count and a has-subcategories flag. Costs two queries per category.
func (s *CategoryService) ListCategories(ctx context.Context, shopCode, parentID *string) ([]*domain.CategoryNode, error) {
	excluded := s.exclusions.GetExclusionSet(ctx)
	categories, err := s.repos.Category.ListChildren(ctx, shopCode, parentID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, categories, excluded)
}

func (s *CategoryService) annotate(ctx context.Context, categories []*domain.CatalogCategory, excluded domain.ExclusionSet) ([]*domain.CategoryNode, error) {
	nodes := make([]*domain.CategoryNode, 0, len(categories))
	for _, c := range categories {
		if excluded.ExcludesCategory(c.ID) {
			continue
		}
		count, err := s.repos.Category.CountProducts(ctx, c.ID, c.ShopCode, excluded)
		if err != nil {
			return nil, err
		}
		hasChildren, err := s.repos.Category.HasChildren(ctx, c.ID, c.ShopCode)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &domain.CategoryNode{
			CatalogCategory:  *c,
			ProductCount:     count,
			HasSubcategories: hasChildren,
		})
	}
	return nodes, nil
}

// CategoryTree loads every category in one recursive query and nests it.
// Nodes whose stored level or full path disagree with their parent are logged, not repaired.
func (s *CategoryService) CategoryTree(ctx context.Context, shopCode *string) ([]*domain.CategoryNode, error) {
	excluded := s.exclusions.GetExclusionSet(ctx)
	flat, err := s.repos.Category.Tree(ctx, shopCode, excluded)
	if err != nil {
		return nil, err
	}

	roots := catalog.BuildTree(flat)
	catalog.Walk(roots, func(parent, node *domain.CategoryNode) {
		if parent == nil {
			return
		}
		if err := catalog.CheckLineage(&parent.CatalogCategory, &node.CatalogCategory); err != nil {
			s.logger.Warn("Category lineage mismatch", zap.Error(err), zap.String("shop_code", node.ShopCode))
		}
	})
	return roots, nil
}

// GetCategory returns a category with its product count, direct children and breadcrumbs
func (s *CategoryService) GetCategory(ctx context.Context, id string, shopCode *string) (*CategoryDetail, error) {
	excluded := s.exclusions.GetExclusionSet(ctx)
	if excluded.ExcludesCategory(id) {
		return nil, &errors.ErrNotFound{Resource: "category", ID: id}
	}

	category, err := s.repos.Category.GetByID(ctx, id, shopCode)
	if err != nil {
		return nil, err
	}

	annotated, err := s.annotate(ctx, []*domain.CatalogCategory{category}, excluded)
	if err != nil {
		return nil, err
	}
	node := annotated[0]

	shop := category.ShopCode
	children, err := s.repos.Category.ListChildren(ctx, &shop, &category.ID)
	if err != nil {
		return nil, err
	}
	if node.Children, err = s.annotate(ctx, children, excluded); err != nil {
		return nil, err
	}

	return &CategoryDetail{
		Category:    node,
		Breadcrumbs: s.Breadcrumbs(ctx, category),
	}, nil
}

// Breadcrumbs resolves each prefix of the category's full path back to a category.
// Prefixes that no longer resolve, for example after an ancestor was renamed, are dropped.
func (s *CategoryService) Breadcrumbs(ctx context.Context, category *domain.CatalogCategory) []domain.Breadcrumb {
	prefixes := catalog.PathPrefixes(category.FullPath)
	crumbs := make([]domain.Breadcrumb, 0, len(prefixes))

	for _, prefix := range prefixes {
		c, err := s.repos.Category.GetByFullPath(ctx, category.ShopCode, prefix)
		if err != nil {
			if errors.IsNotFound(err) {
				s.logger.Debug("Breadcrumb ancestor not found",
					zap.String("category_id", category.ID),
					zap.String("full_path", prefix))
			} else {
				s.logger.Warn("Breadcrumb lookup failed", zap.Error(err), zap.String("full_path", prefix))
			}
			continue
		}
		crumbs = append(crumbs, domain.Breadcrumb{ID: c.ID, Name: c.Name, Level: c.Level})
	}
	return crumbs
}

// ListCategoryProducts lists the catalog constrained to one category
func (s *CategoryService) ListCategoryProducts(ctx context.Context, catalogSvc *CatalogService, id string, q ListQuery) (*ListResult, error) {
	if s.exclusions.GetExclusionSet(ctx).ExcludesCategory(id) {
		return nil, &errors.ErrNotFound{Resource: "category", ID: id}
	}
	if _, err := s.repos.Category.GetByID(ctx, id, q.ShopCode); err != nil {
		return nil, err
	}
	q.CategoryID = &id
	return catalogSvc.ListCatalog(ctx, q)
}
