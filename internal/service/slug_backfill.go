package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/slug"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

const backfillBatchSize = 500

var slugBackfillMu sync.Mutex

// BackfillResult summarises one slug backfill run
type BackfillResult struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// RunSlugBackfill gives every catalog row without a slug one generated from its
// name and shop. A slug already taken in the shop gets the row id appended.
// Only one run proceeds at a time; a concurrent call returns ok=false immediately.
func RunSlugBackfill(ctx context.Context, repos *repository.Repositories, logger *zap.Logger) (result BackfillResult, ok bool, err error) {
	if !slugBackfillMu.TryLock() {
		logger.Debug("Slug backfill already running")
		return result, false, nil
	}
	defer slugBackfillMu.Unlock()

	result, err = runSlugBackfill(ctx, repos, logger, backfillBatchSize)
	return result, true, err
}

// runSlugBackfill expects slugBackfillMu to be held. Rows are paged by a
// (shop_code, id) cursor, so a row that fails is not read again in the same run.
func runSlugBackfill(ctx context.Context, repos *repository.Repositories, logger *zap.Logger, batchSize int) (BackfillResult, error) {
	var result BackfillResult
	var afterShop, afterID string
	for {
		batch, err := repos.CatalogItem.ListMissingSlugs(ctx, afterShop, afterID, batchSize)
		if err != nil {
			logger.Error("Slug backfill: failed to list rows", zap.Error(err))
			return result, err
		}

		for _, item := range batch {
			result.Scanned++
			if err := backfillItem(ctx, repos, item); err != nil {
				result.Failed++
				logger.Warn("Slug backfill: failed to update row",
					zap.Error(err),
					zap.String("product_id", item.ID),
					zap.String("shop_code", item.ShopCode))
				continue
			}
			result.Updated++
		}
		if len(batch) == 0 || len(batch) < batchSize {
			break
		}
		last := batch[len(batch)-1]
		afterShop, afterID = last.ShopCode, last.ID
	}

	logger.Info("Slug backfill finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result, nil
}

func backfillItem(ctx context.Context, repos *repository.Repositories, item *domain.CatalogItem) error {
	s := slug.GenerateProductSlug(item.Name, item.ShopCode)
	err := repos.CatalogItem.UpdateSlug(ctx, item.ID, item.ShopCode, s)
	if !errors.IsConflict(err) {
		return err
	}
	s = slug.GenerateProductSlug(fmt.Sprintf("%s %s", item.Name, item.ID), item.ShopCode)
	return repos.CatalogItem.UpdateSlug(ctx, item.ID, item.ShopCode, s)
}

// TriggerSlugBackfill starts a backfill in the background. It returns false when
// a run is already in progress.
func TriggerSlugBackfill(repos *repository.Repositories, logger *zap.Logger) bool {
	if !slugBackfillMu.TryLock() {
		return false
	}

	go func() {
		defer slugBackfillMu.Unlock()
		if _, err := runSlugBackfill(context.Background(), repos, logger, backfillBatchSize); err != nil {
			logger.Error("Background slug backfill failed", zap.Error(err))
		}
	}()
	return true
}
