package db

import (
	"context"
	"errors"
	"receh48/src/booking"
	"receh48/src/models"
	"receh48/src/models/scopes"
	"receh48/src/types"
	"receh48/src/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements booking.Store on gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) QueryActiveMembersWithFees(ctx context.Context, st types.ServiceType) ([]models.Member, error) {
	var members []models.Member
	err := s.db.WithContext(ctx).
		Model(&models.Member{}).
		Scopes(scopes.WithActive).
		Where(`EXISTS (
			SELECT 1 FROM member_fees mf
			JOIN fee_groups fg ON fg.id = mf.fee_group_id
			WHERE mf.member_id = members.id AND mf.fee_type = ? AND fg.is_active = ? AND fg.deleted_at IS NULL
		)`, st, true).
		Preload("MemberFees", "fee_type = ?", st).
		Preload("MemberFees.FeeGroup").
		Order("id asc").
		Find(&members).
		Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (s *Store) QueryContentByKey(ctx context.Context, key string) (*models.SiteContent, error) {
	var content models.SiteContent
	err := s.db.WithContext(ctx).
		Where(&models.SiteContent{Key: key}).
		First(&content).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (s *Store) QueryServiceStatus(ctx context.Context, serviceKey string) (*models.ServiceStatus, error) {
	var status models.ServiceStatus
	err := s.db.WithContext(ctx).
		Where(&models.ServiceStatus{ServiceKey: serviceKey}).
		First(&status).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// InsertOrder stores order once per session and idempotency key. A replay
// of the same payload returns the order stored by the first attempt; a
// replay with a different payload fails with booking.ErrIdempotencyReused.
func (s *Store) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	sealed := *order
	if sealed.IdempotencyKey == "" {
		sealed.IdempotencyKey = uuid.NewString()
	}
	pw, isSealed, err := utils.SealSecret(order.PasswordJKT)
	if err != nil {
		return nil, err
	}
	sealed.PasswordJKT = pw
	sealed.PasswordSealed = isSealed

	var stored models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "session_id"}, {Name: "idempotency_key"}},
				DoNothing: true,
			}).
			Create(&sealed)
		if res.Error != nil {
			return res.Error
		}
		if err := tx.
			Where("session_id = ? AND idempotency_key = ?", sealed.SessionID, sealed.IdempotencyKey).
			First(&stored).
			Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 && !samePayload(&stored, &sealed) {
			return booking.ErrIdempotencyReused
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func samePayload(a, b *models.Order) bool {
	return a.OrderType == b.OrderType &&
		a.TotalFee == b.TotalFee &&
		a.Note == b.Note &&
		a.CustomerName == b.CustomerName &&
		a.ContactEmail == b.ContactEmail
}

func (s *Store) InsertReview(ctx context.Context, review *models.Review) error {
	review.IsApproved = false
	return s.db.WithContext(ctx).Create(review).Error
}
