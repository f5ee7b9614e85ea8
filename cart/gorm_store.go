package cart

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aromanza/gateway/models"
)

// GormStore keeps snapshots in the cart_snapshots table
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context, visitorID string) ([]byte, error) {
	var snap models.CartSnapshot
	err := s.db.WithContext(ctx).Where("visitor_id = ?", visitorID).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select cart snapshot")
	}
	return []byte(snap.Payload), nil
}

func (s *GormStore) Save(ctx context.Context, visitorID string, snapshot []byte) error {
	snap := models.CartSnapshot{
		VisitorID: visitorID,
		Payload:   string(snapshot),
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "visitor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snap).Error
	if err != nil {
		return errors.Wrap(err, "upsert cart snapshot")
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, visitorID string) error {
	err := s.db.WithContext(ctx).Where("visitor_id = ?", visitorID).Delete(&models.CartSnapshot{}).Error
	if err != nil {
		return errors.Wrap(err, "delete cart snapshot")
	}
	return nil
}
