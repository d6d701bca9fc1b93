package repos

import (
  "context"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type ContainerUnitRepo interface {
  CountMatching(ctx context.Context, tx *gorm.DB, containerID string, unitIDs []string) (int64, error)
  Seed(ctx context.Context, tx *gorm.DB, units []*types.ContainerUnit) error
}

type containerUnitRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewContainerUnitRepo(db *gorm.DB, baseLog *logger.Logger) ContainerUnitRepo {
  repoLog := baseLog.With("repo", "ContainerUnitRepo")
  return &containerUnitRepo{db: db, log: repoLog}
}

func (r *containerUnitRepo) CountMatching(ctx context.Context, tx *gorm.DB, containerID string, unitIDs []string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(unitIDs) == 0 {
    return 0, nil
  }
  var total int64
  if err := transaction.WithContext(ctx).Model(&types.ContainerUnit{}).
    Where("container_id = ? AND unit_id IN ?", containerID, unitIDs).
    Count(&total).Error; err != nil {
    return 0, err
  }
  return total, nil
}

func (r *containerUnitRepo) Seed(ctx context.Context, tx *gorm.DB, units []*types.ContainerUnit) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(units) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&units).Error
}
