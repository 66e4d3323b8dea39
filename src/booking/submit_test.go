package booking

import (
	"context"
	"errors"
	"receh48/src/models"
	"receh48/src/types"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyCart(t *testing.T) *Cart {
	cart := NewCart(types.SERVICE_TWOSHOT, nil)
	item := cart.Add(zara)
	require.NoError(t, cart.Update(item.ClientID, FieldDate, "2024-05-01"))
	require.NoError(t, cart.Update(item.ClientID, FieldSession, "Sesi 1"))
	return cart
}

func TestSubmitGatingSkipsStore(t *testing.T) {
	store := newFakeStore()
	sub := NewSubmitter(Collaborators{Store: store})
	ctx := context.Background()

	_, err := sub.Submit(ctx, NewCart(types.SERVICE_TWOSHOT, nil), openGate(), validForm(), "k")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ClassEmptyCart, ve.Class)

	noSession := NewCart(types.SERVICE_TWOSHOT, nil)
	item := noSession.Add(zara)
	require.NoError(t, noSession.Update(item.ClientID, FieldDate, "2024-05-01"))
	_, err = sub.Submit(ctx, noSession, openGate(), validForm(), "k")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ClassIncompleteSlot, ve.Class)

	partial := readyCart(t)
	require.NoError(t, partial.Update(partial.Items()[0].ClientID, FieldBackupDate, "2024-05-02"))
	_, err = sub.Submit(ctx, partial, openGate(), validForm(), "k")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ClassPartialBackup, ve.Class)

	closed := openGate()
	closed.Status = types.STATUS_CLOSED
	_, err = sub.Submit(ctx, readyCart(t), closed, validForm(), "k")
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	assert.Equal(t, 0, store.calls())
}

func TestCustomerFormValidation(t *testing.T) {
	sub := NewSubmitter(Collaborators{Store: newFakeStore()})

	cases := []struct {
		name  string
		edit  func(f *types.CustomerForm)
		field string
		msg   string
	}{
		{"short name", func(f *types.CustomerForm) { f.CustomerName = "  Bo  " }, "customer_name", "Nama minimal 3 karakter"},
		{"bad email", func(f *types.CustomerForm) { f.ContactEmail = "budi@" }, "contact_email", "Email tidak valid"},
		{"no contact", func(f *types.CustomerForm) { f.ContactTwitter = " " }, "contact_twitter", "Minimal salah satu dari Twitter atau LINE harus diisi"},
		{"no password", func(f *types.CustomerForm) { f.PasswordJKT = "" }, "password_jkt", "Password harus diisi"},
		{"terms", func(f *types.CustomerForm) { f.AgreeTerms = false }, "agree_terms", "Anda harus menyetujui syarat dan ketentuan"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.edit(&form)
			_, err := sub.ValidateForm(form)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, ClassCustomerForm, ve.Class)
			assert.Equal(t, tc.msg, ve.Fields[tc.field])
			assert.Equal(t, tc.msg, ve.Message)
		})
	}

	lineOnly := validForm()
	lineOnly.ContactTwitter = ""
	lineOnly.ContactLine = "budi_line"
	_, err := sub.ValidateForm(lineOnly)
	assert.NoError(t, err)
}

func TestSubmitSerializesOrder(t *testing.T) {
	store := newFakeStore()
	var mu sync.Mutex
	var hooked []*models.Order
	done := make(chan struct{})
	sub := NewSubmitter(Collaborators{
		Store: store,
		OnOrderCreated: []OrderHook{func(ctx context.Context, o *models.Order) {
			mu.Lock()
			hooked = append(hooked, o)
			mu.Unlock()
			close(done)
		}},
	})

	cart := readyCart(t)
	second := cart.Add(mira)
	require.NoError(t, cart.Update(second.ClientID, FieldDate, "2024-05-01"))
	require.NoError(t, cart.Update(second.ClientID, FieldSession, "Sesi 2"))

	form := validForm()
	form.CustomerName = "  Budi Santoso "
	order, err := sub.Submit(context.Background(), cart, openGate(), form, "attempt-1")
	require.NoError(t, err)

	assert.Equal(t, "Budi Santoso", order.CustomerName)
	assert.Equal(t, types.ORDER_PENDING, order.Status)
	assert.Equal(t, types.SERVICE_TWOSHOT, order.OrderType)
	assert.Equal(t, int64(80000), order.TotalFee)
	assert.Equal(t, "1. 2024-05-01 | Sesi 1 | Zara\n2. 2024-05-01 | Sesi 2 | Mira", order.Note)
	require.NotNil(t, order.ContactTwitter)
	assert.Equal(t, "@budi", *order.ContactTwitter)
	assert.Nil(t, order.ContactLine)
	assert.Equal(t, "attempt-1", order.IdempotencyKey)
	assert.Equal(t, 0, cart.Len(), "cart cleared after success")

	<-done
	mu.Lock()
	assert.Len(t, hooked, 1)
	mu.Unlock()
}

func TestSubmitFailurePreservesCart(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("503 from backend")
	inbox := NewBufferedNotifier(5)
	sub := NewSubmitter(Collaborators{Store: store, Notifier: inbox})

	cart := readyCart(t)
	before := cart.Items()
	_, err := sub.Submit(context.Background(), cart, openGate(), validForm(), "k1")
	var se *SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, before, cart.Items())
	assert.Contains(t, inbox.Drain()[0].Message, "Gagal membuat pesanan")

	store.insertErr = nil
	order, err := sub.Submit(context.Background(), cart, openGate(), validForm(), "k1")
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, 2, store.calls())
}
