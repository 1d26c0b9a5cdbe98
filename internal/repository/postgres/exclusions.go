package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type exclusionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewExclusionRepository creates a new catalog exclusion repository
func NewExclusionRepository(db *sql.DB, logger *zap.Logger) *exclusionRepository {
	return &exclusionRepository{
		db:     db,
		logger: logger,
	}
}

const exclusionColumns = `id, exclusion_type, item_id, reason, is_active, created_by, created_at, updated_at`

func scanExclusion(row rowScanner) (*domain.CatalogExclusion, error) {
	var e domain.CatalogExclusion
	var reason, createdBy sql.NullString
	err := row.Scan(&e.ID, &e.ExclusionType, &e.ItemID, &reason, &e.IsActive, &createdBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if reason.Valid {
		e.Reason = &reason.String
	}
	if createdBy.Valid {
		e.CreatedBy = &createdBy.String
	}
	return &e, nil
}

func (r *exclusionRepository) List(ctx context.Context, activeOnly bool) ([]*domain.CatalogExclusion, error) {
	query := `
		SELECT ` + exclusionColumns + `
		FROM catalog_exclusions
		WHERE ($1 = false OR is_active = true)
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, activeOnly)
	if err != nil {
		r.logger.Error("Failed to list exclusions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	exclusions := make([]*domain.CatalogExclusion, 0)
	for rows.Next() {
		e, err := scanExclusion(rows)
		if err != nil {
			r.logger.Error("Failed to scan exclusion", zap.Error(err))
			return nil, err
		}
		exclusions = append(exclusions, e)
	}
	return exclusions, rows.Err()
}

func (r *exclusionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogExclusion, error) {
	query := `SELECT ` + exclusionColumns + ` FROM catalog_exclusions WHERE id = $1`
	e, err := scanExclusion(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "exclusion", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get exclusion", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return e, nil
}

func (r *exclusionRepository) Create(ctx context.Context, e *domain.CatalogExclusion) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM catalog_exclusions
			WHERE exclusion_type = $1 AND item_id = $2 AND is_active = true
		)
	`, e.ExclusionType, e.ItemID).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check existing exclusion", zap.Error(err))
		return err
	}
	if exists {
		return &errors.ErrConflict{Message: "item is already excluded"}
	}

	now := time.Now()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.IsActive = true
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO catalog_exclusions (` + exclusionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.ExclusionType, e.ItemID, e.Reason, e.IsActive, e.CreatedBy, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		// the partial unique index catches a concurrent insert that passed the check above
		if isUniqueViolation(err) {
			return &errors.ErrConflict{Message: "item is already excluded"}
		}
		r.logger.Error("Failed to create exclusion", zap.Error(err))
		return err
	}
	return nil
}

func (r *exclusionRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE catalog_exclusions
		SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to deactivate exclusion", zap.Error(err), zap.String("id", id.String()))
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "exclusion", ID: id.String()}
	}
	return nil
}
