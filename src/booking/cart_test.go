package booking

import (
	"errors"
	"math/rand"
	"receh48/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	zara = CatalogMember{MemberID: 1, Name: "Zara", FeeGroupID: 11, Fee: 50000}
	yuna = CatalogMember{MemberID: 2, Name: "Yuna", FeeGroupID: 11, Fee: 50000}
	mira = CatalogMember{MemberID: 3, Name: "Mira", FeeGroupID: 12, Fee: 30000}
)

func testCatalog() *Catalog {
	return &Catalog{ServiceType: types.SERVICE_TWOSHOT, Members: []CatalogMember{yuna, zara, mira}}
}

func TestCartTotalMatchesPresentItems(t *testing.T) {
	rng := rand.New(rand.NewSource(48))
	pool := []CatalogMember{zara, yuna, mira}
	for round := 0; round < 200; round++ {
		cart := NewCart(types.SERVICE_TWOSHOT, nil)
		var ids []string
		for step := 0; step < 30; step++ {
			if len(ids) == 0 || rng.Intn(3) > 0 {
				item := cart.Add(pool[rng.Intn(len(pool))])
				ids = append(ids, item.ClientID)
				continue
			}
			pick := rng.Intn(len(ids))
			cart.Remove(ids[pick])
			ids = append(ids[:pick], ids[pick+1:]...)
		}
		var want int64
		for _, item := range cart.Items() {
			want += item.Fee
		}
		require.Equal(t, want, cart.Total())
		require.Equal(t, len(ids), cart.Len())
	}
}

func TestCartExampleScenario(t *testing.T) {
	cart := NewCart(types.SERVICE_TWOSHOT, nil)
	c1 := cart.Add(zara)
	require.NoError(t, cart.Update(c1.ClientID, FieldDate, "2024-05-01"))
	require.NoError(t, cart.Update(c1.ClientID, FieldSession, "Sesi 1"))
	c2 := cart.Add(mira)
	require.NoError(t, cart.Update(c2.ClientID, FieldDate, "2024-05-01"))
	require.NoError(t, cart.Update(c2.ClientID, FieldSession, "Sesi 2"))
	require.NoError(t, cart.SetBackupMember(c2.ClientID, testCatalog(), zara.MemberID))
	require.NoError(t, cart.Update(c2.ClientID, FieldBackupDate, "2024-05-01"))
	require.NoError(t, cart.Update(c2.ClientID, FieldBackupSession, "Sesi 1"))

	assert.NoError(t, cart.Validate(), "collision is checked within one item only")
	assert.Equal(t, int64(80000), cart.Total())
}

func filledCart(t *testing.T, backup CatalogMember, date, session string) (*Cart, string) {
	cart := NewCart(types.SERVICE_TWOSHOT, nil)
	item := cart.Add(zara)
	require.NoError(t, cart.Update(item.ClientID, FieldDate, "2024-05-01"))
	require.NoError(t, cart.Update(item.ClientID, FieldSession, "Sesi 1"))
	require.NoError(t, cart.SetBackupMember(item.ClientID, testCatalog(), backup.MemberID))
	require.NoError(t, cart.Update(item.ClientID, FieldBackupDate, date))
	require.NoError(t, cart.Update(item.ClientID, FieldBackupSession, session))
	return cart, item.ClientID
}

func TestBackupCollisionRule(t *testing.T) {
	cart, id := filledCart(t, zara, "2024-05-01", "Sesi 1")
	err := cart.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ClassBackupCollision, ve.Class)
	assert.Equal(t, MsgBackupCollision, ve.Message)
	assert.Equal(t, []string{id}, ve.ItemIDs)

	cart, _ = filledCart(t, zara, "2024-05-01", "Sesi 2")
	assert.NoError(t, cart.Validate())

	cart, _ = filledCart(t, zara, "2024-05-02", "Sesi 1")
	assert.NoError(t, cart.Validate())

	cart, _ = filledCart(t, yuna, "2024-05-01", "Sesi 1")
	assert.NoError(t, cart.Validate())
}

func TestValidateOrderAndMessages(t *testing.T) {
	cart := NewCart(types.SERVICE_VC, nil)
	var ve *ValidationError

	require.ErrorAs(t, cart.Validate(), &ve)
	assert.Equal(t, ClassEmptyCart, ve.Class)
	assert.Equal(t, MsgEmptyCart, ve.Message)

	first := cart.Add(zara)
	second := cart.Add(mira)
	require.NoError(t, cart.Update(first.ClientID, FieldDate, "2024-06-01"))
	require.NoError(t, cart.SetBackupMember(second.ClientID, testCatalog(), yuna.MemberID))

	require.ErrorAs(t, cart.Validate(), &ve)
	assert.Equal(t, ClassIncompleteSlot, ve.Class)
	assert.ElementsMatch(t, []string{first.ClientID, second.ClientID}, ve.ItemIDs)

	require.NoError(t, cart.Update(first.ClientID, FieldSession, "Sesi 1"))
	require.NoError(t, cart.Update(second.ClientID, FieldDate, "2024-06-01"))
	require.NoError(t, cart.Update(second.ClientID, FieldSession, "Sesi 2"))

	require.ErrorAs(t, cart.Validate(), &ve)
	assert.Equal(t, ClassPartialBackup, ve.Class)
	assert.Equal(t, []string{second.ClientID}, ve.ItemIDs)

	require.NoError(t, cart.Update(second.ClientID, FieldBackupDate, "2024-06-01"))
	require.ErrorAs(t, cart.Validate(), &ve)
	assert.Equal(t, ClassPartialBackup, ve.Class)

	require.NoError(t, cart.Update(second.ClientID, FieldBackupSession, "Sesi 3"))
	assert.NoError(t, cart.Validate())
}

func TestPartialBackupWithoutMember(t *testing.T) {
	cart := NewCart(types.SERVICE_VC, nil)
	item := cart.Add(zara)
	require.NoError(t, cart.Update(item.ClientID, FieldDate, "2024-06-01"))
	require.NoError(t, cart.Update(item.ClientID, FieldSession, "Sesi 1"))
	require.NoError(t, cart.Update(item.ClientID, FieldBackupSession, "Sesi 2"))

	var ve *ValidationError
	require.ErrorAs(t, cart.Validate(), &ve)
	assert.Equal(t, ClassPartialBackup, ve.Class)
}

func TestRemoveIsIdempotent(t *testing.T) {
	cart := NewCart(types.SERVICE_TWOSHOT, nil)
	keep := cart.Add(yuna)
	gone := cart.Add(zara)

	assert.True(t, cart.Remove(gone.ClientID))
	after := cart.Items()
	assert.NotPanics(t, func() {
		assert.False(t, cart.Remove(gone.ClientID))
	})
	assert.Equal(t, after, cart.Items())
	assert.Equal(t, keep.ClientID, cart.Items()[0].ClientID)
}

func TestDuplicateMembersAreDistinctItems(t *testing.T) {
	cart := NewCart(types.SERVICE_TWOSHOT, nil)
	a := cart.Add(zara)
	b := cart.Add(zara)
	assert.NotEqual(t, a.ClientID, b.ClientID)
	assert.Equal(t, int64(100000), cart.Total())
}

func TestSetBackupMember(t *testing.T) {
	cart := NewCart(types.SERVICE_TWOSHOT, nil)
	item := cart.Add(zara)

	assert.ErrorIs(t, cart.SetBackupMember(item.ClientID, testCatalog(), 99), ErrMemberNotFound)
	assert.ErrorIs(t, cart.SetBackupMember("missing", testCatalog(), yuna.MemberID), ErrItemNotFound)

	require.NoError(t, cart.SetBackupMember(item.ClientID, testCatalog(), yuna.MemberID))
	require.NoError(t, cart.Update(item.ClientID, FieldBackupDate, "2024-05-02"))
	got := cart.Items()[0]
	assert.Equal(t, yuna.MemberID, got.BackupMemberID)
	assert.Equal(t, "Yuna", got.BackupMemberName)

	require.NoError(t, cart.SetBackupMember(item.ClientID, testCatalog(), mira.MemberID))
	assert.Equal(t, "Mira", cart.Items()[0].BackupMemberName)

	require.NoError(t, cart.SetBackupMember(item.ClientID, testCatalog(), 0))
	got = cart.Items()[0]
	assert.False(t, got.HasBackup())
	assert.Empty(t, got.BackupMemberName)
}

func TestUpdateUnknownTarget(t *testing.T) {
	cart := NewCart(types.SERVICE_TWOSHOT, nil)
	item := cart.Add(zara)
	assert.ErrorIs(t, cart.Update("missing", FieldDate, "x"), ErrItemNotFound)
	assert.ErrorIs(t, cart.Update(item.ClientID, CartField("fee"), "0"), ErrUnknownField)
	_, err := ParseCartField("fee")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestCartNotifications(t *testing.T) {
	inbox := NewBufferedNotifier(5)
	cart := NewCart(types.SERVICE_TWOSHOT, inbox)
	item := cart.Add(zara)
	cart.Remove(item.ClientID)
	cart.Remove(item.ClientID)

	got := inbox.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "Zara ditambahkan ke keranjang", got[0].Message)
	assert.Equal(t, "Item dihapus dari keranjang", got[1].Message)
	assert.Empty(t, inbox.Drain())
}
