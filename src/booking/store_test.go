package booking

import (
	"context"
	"receh48/src/models"
	"receh48/src/types"
	"sync"

	"github.com/google/uuid"
)

type fakeStore struct {
	mu sync.Mutex

	members    []models.Member
	membersErr error
	content    map[string]*models.SiteContent
	contentErr error
	status     *models.ServiceStatus
	statusErr  error
	insertErr  error

	// when block is set InsertOrder waits for it to close or ctx to end
	block   chan struct{}
	entered chan struct{}

	insertCalls int
	orders      map[string]*models.Order
	reviews     []*models.Review
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		content: map[string]*models.SiteContent{},
		orders:  map[string]*models.Order{},
	}
}

func (f *fakeStore) QueryActiveMembersWithFees(ctx context.Context, st types.ServiceType) ([]models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	return f.members, nil
}

func (f *fakeStore) QueryContentByKey(ctx context.Context, key string) (*models.SiteContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.contentErr != nil {
		return nil, f.contentErr
	}
	return f.content[key], nil
}

func (f *fakeStore) QueryServiceStatus(ctx context.Context, key string) (*models.ServiceStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, f.statusErr
}

func (f *fakeStore) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	f.mu.Lock()
	f.insertCalls++
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	key := order.SessionID + ":" + order.IdempotencyKey
	if existing, ok := f.orders[key]; ok {
		if existing.TotalFee != order.TotalFee || existing.Note != order.Note {
			return nil, ErrIdempotencyReused
		}
		return existing, nil
	}
	stored := *order
	stored.ID = uuid.New()
	f.orders[key] = &stored
	return &stored, nil
}

func (f *fakeStore) InsertReview(ctx context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertCalls
}

func member(id uint, name string, fee int64, st types.ServiceType) models.Member {
	return models.Member{
		ID:       id,
		Name:     name,
		IsActive: true,
		MemberFees: []models.MemberFee{{
			MemberID:   id,
			FeeType:    st,
			FeeGroupID: 100 + id,
			FeeGroup: &models.FeeGroup{
				ID:       100 + id,
				Name:     "Tier",
				Fee:      fee,
				FeeType:  st,
				IsActive: true,
			},
		}},
	}
}

func validForm() types.CustomerForm {
	return types.CustomerForm{
		CustomerName:   "Budi Santoso",
		ContactTwitter: "@budi",
		ContactEmail:   "budi@example.com",
		PasswordJKT:    "rahasia",
		AgreeTerms:     true,
	}
}

func openGate() Availability {
	return openAvailability(types.SERVICE_TWOSHOT.ServiceKey())
}
