package db

import (
	"context"
	"encoding/json"
	"errors"
	"receh48/src/booking"
	"receh48/src/models"
	"receh48/src/types"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	booking.Store
	members []models.Member
	calls   int
}

func (c *countingStore) QueryActiveMembersWithFees(ctx context.Context, st types.ServiceType) ([]models.Member, error) {
	c.calls++
	return c.members, nil
}

func sampleMembers() []models.Member {
	return []models.Member{
		{ID: 1, Name: "Zara", IsActive: true, MemberFees: []models.MemberFee{
			{ID: 10, MemberID: 1, FeeType: types.SERVICE_TWOSHOT, FeeGroupID: 3, FeeGroup: &models.FeeGroup{ID: 3, Name: "Tier A", Fee: 50000, FeeType: types.SERVICE_TWOSHOT, IsActive: true}},
		}},
	}
}

func TestCachedStoreMissPopulatesCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &countingStore{members: sampleMembers()}
	store := NewCachedStore(inner, rdb, 30*time.Second)

	payload, err := json.Marshal(inner.members)
	require.NoError(t, err)
	key := CatalogCacheKey(types.SERVICE_TWOSHOT)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, string(payload), 30*time.Second).SetVal("OK")

	members, err := store.QueryActiveMembersWithFees(context.Background(), types.SERVICE_TWOSHOT)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedStoreHitSkipsInner(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &countingStore{}
	store := NewCachedStore(inner, rdb, time.Minute)

	payload, err := json.Marshal(sampleMembers())
	require.NoError(t, err)
	mock.ExpectGet(CatalogCacheKey(types.SERVICE_TWOSHOT)).SetVal(string(payload))

	members, err := store.QueryActiveMembersWithFees(context.Background(), types.SERVICE_TWOSHOT)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Zara", members[0].Name)
	assert.Equal(t, int64(50000), members[0].MemberFees[0].FeeGroup.Fee)
	assert.Equal(t, 0, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedStoreFallsThroughOnRedisError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &countingStore{members: sampleMembers()}
	store := NewCachedStore(inner, rdb, time.Minute)

	mock.ExpectGet(CatalogCacheKey(types.SERVICE_VC)).SetErr(errors.New("connection refused"))

	members, err := store.QueryActiveMembersWithFees(context.Background(), types.SERVICE_VC)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewCachedStoreWithoutRedis(t *testing.T) {
	inner := &countingStore{}
	assert.Same(t, inner, NewCachedStore(inner, nil, time.Minute))

	rdb, _ := redismock.NewClientMock()
	assert.Same(t, inner, NewCachedStore(inner, rdb, 0))
}

func TestInvalidateCatalogCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(CatalogCacheKey(types.SERVICE_VC)).SetVal(1)
	assert.NoError(t, InvalidateCatalogCache(context.Background(), rdb, types.SERVICE_VC))

	mock.ExpectDel(
		CatalogCacheKey(types.SERVICE_VC),
		CatalogCacheKey(types.SERVICE_TWOSHOT),
		CatalogCacheKey(types.SERVICE_MNG),
	).SetVal(3)
	assert.NoError(t, InvalidateCatalogCache(context.Background(), rdb))
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.NoError(t, InvalidateCatalogCache(context.Background(), nil))
}
