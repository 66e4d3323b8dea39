package booking

import (
	"context"
	"errors"
	"receh48/src/models"
	"receh48/src/types"
	"sync"
	"sync/atomic"
	"time"
)

// Session owns one cart. Every operation runs as a command on the session
// goroutine, so cart state is never touched concurrently.
type Session struct {
	ID          string
	serviceType types.ServiceType

	submitter *Submitter
	collab    Collaborators
	inbox     *BufferedNotifier

	cmds      chan func()
	done      chan struct{}
	closeOnce sync.Once
	touched   atomic.Int64

	// owned by the loop goroutine
	cart       *Cart
	catalog    *Catalog
	catalogErr error
	gate       Availability
	busy       bool
	lastOrder  *models.Order
}

type SessionView struct {
	ID            string            `json:"id"`
	ServiceType   types.ServiceType `json:"service_type"`
	Items         []CartItem        `json:"items"`
	Total         int64             `json:"total_fee"`
	Availability  Availability      `json:"availability"`
	Submitting    bool              `json:"submitting"`
	LastOrder     *models.Order     `json:"last_order,omitempty"`
	Notifications []Notification    `json:"notifications,omitempty"`
}

type submitResult struct {
	order *models.Order
	err   error
}

func newSession(id string, st types.ServiceType, collab Collaborators, catalog *Catalog, gate Availability) *Session {
	inbox := NewBufferedNotifier(20)
	collab.Notifier = Tee(inbox, collab.Notifier)
	s := &Session{
		ID:          id,
		serviceType: st,
		submitter:   NewSubmitter(collab),
		collab:      collab,
		inbox:       inbox,
		cmds:        make(chan func()),
		done:        make(chan struct{}),
		cart:        NewCart(st, collab.Notifier),
		catalog:     catalog,
		gate:        gate,
	}
	s.touch()
	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case fn := <-s.cmds:
			fn()
		case <-s.done:
			return
		}
	}
}

func (s *Session) touch() {
	s.touched.Store(time.Now().UnixNano())
}

// LastActive is safe to call from any goroutine.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.touched.Load())
}

func (s *Session) ServiceType() types.ServiceType {
	return s.serviceType
}

func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// do runs fn on the session goroutine and waits for it to finish.
func (s *Session) do(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	select {
	case s.cmds <- func() { fn(); close(ran) }:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	s.touch()
	<-ran
	return nil
}

// mutate is do for cart changes, which are refused while a submission is in flight.
func (s *Session) mutate(ctx context.Context, fn func() error) error {
	var err error
	if doErr := s.do(ctx, func() {
		if s.busy {
			err = ErrSubmissionInFlight
			return
		}
		err = fn()
	}); doErr != nil {
		return doErr
	}
	return err
}

func (s *Session) snapshot() SessionView {
	items := s.cart.Items()
	return SessionView{
		ID:           s.ID,
		ServiceType:  s.serviceType,
		Items:        items,
		Total:        s.cart.Total(),
		Availability: s.gate,
		Submitting:   s.busy,
		LastOrder:    s.lastOrder,
	}
}

// View returns the current state. With drain set, pending notifications are
// handed over and forgotten.
func (s *Session) View(ctx context.Context, drain bool) (SessionView, error) {
	var view SessionView
	if err := s.do(ctx, func() { view = s.snapshot() }); err != nil {
		return view, err
	}
	if drain {
		view.Notifications = s.inbox.Drain()
	}
	return view, nil
}

// Catalog returns the loaded catalog or the error of the last failed load.
func (s *Session) Catalog(ctx context.Context) (*Catalog, error) {
	var catalog *Catalog
	var err error
	if doErr := s.do(ctx, func() { catalog, err = s.catalog, s.catalogErr }); doErr != nil {
		return nil, doErr
	}
	return catalog, err
}

// Refresh reloads catalog and gate. Cart items keep the price they were added with.
func (s *Session) Refresh(ctx context.Context) error {
	catalog, loadErr := LoadCatalog(ctx, s.collab.Store, s.serviceType)
	gate := LoadAvailability(ctx, s.collab.Store, s.serviceType)
	return s.mutate(ctx, func() error {
		s.gate = gate
		if loadErr != nil {
			s.catalog = nil
			s.catalogErr = loadErr
			s.collab.Notifier.Notify(LevelError, loadErr.Error())
			return loadErr
		}
		s.catalog = catalog
		s.catalogErr = nil
		return nil
	})
}

func (s *Session) AddItem(ctx context.Context, memberID uint) (CartItem, error) {
	var item CartItem
	err := s.mutate(ctx, func() error {
		if !s.gate.IsOpen() {
			return ErrServiceUnavailable
		}
		if s.catalogErr != nil {
			return s.catalogErr
		}
		m, ok := s.catalog.Find(memberID)
		if !ok {
			return ErrMemberNotFound
		}
		item = s.cart.Add(m)
		return nil
	})
	return item, err
}

func (s *Session) RemoveItem(ctx context.Context, clientID string) error {
	return s.mutate(ctx, func() error {
		s.cart.Remove(clientID)
		return nil
	})
}

func (s *Session) UpdateItem(ctx context.Context, clientID string, field CartField, value string) error {
	return s.mutate(ctx, func() error {
		return s.cart.Update(clientID, field, value)
	})
}

func (s *Session) SetBackupMember(ctx context.Context, clientID string, memberID uint) error {
	return s.mutate(ctx, func() error {
		return s.cart.SetBackupMember(clientID, s.catalog, memberID)
	})
}

func (s *Session) Clear(ctx context.Context) error {
	return s.mutate(ctx, func() error {
		s.cart.Clear()
		return nil
	})
}

// Submit validates and stores the cart as one order. Only one submission
// runs at a time; the store call happens off the session goroutine and its
// result is applied back on it.
func (s *Session) Submit(ctx context.Context, form types.CustomerForm, idempotencyKey string) (*models.Order, error) {
	results := make(chan submitResult, 1)
	err := s.mutate(ctx, func() error {
		order, err := s.submitter.Prepare(s.cart, s.gate, form, idempotencyKey)
		if err != nil {
			return err
		}
		order.SessionID = s.ID
		s.busy = true
		go s.persist(ctx, order, results)
		return nil
	})
	if err != nil {
		return nil, err
	}
	select {
	case res := <-results:
		return res.order, res.err
	case <-s.done:
		return nil, ErrSessionClosed
	}
}

func (s *Session) persist(ctx context.Context, order *models.Order, results chan<- submitResult) {
	stored, err := s.submitter.Persist(ctx, order)
	apply := func() {
		s.busy = false
		if err != nil {
			s.collab.Notifier.Notify(LevelError, err.Error())
			results <- submitResult{err: err}
			return
		}
		s.cart.Clear()
		s.lastOrder = stored
		s.collab.Notifier.Notify(LevelSuccess, "Pesanan berhasil dibuat")
		s.submitter.afterCreate(ctx, stored)
		results <- submitResult{order: stored}
	}
	select {
	case s.cmds <- apply:
	case <-s.done:
		results <- submitResult{err: ErrSessionClosed}
	}
}

// IsBusy reports whether err was caused by an in-flight submission.
func IsBusy(err error) bool {
	return errors.Is(err, ErrSubmissionInFlight)
}
