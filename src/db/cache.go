package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"receh48/src/booking"
	"receh48/src/models"
	"receh48/src/types"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedStore keeps member catalogs in redis. Every other call goes straight
// to the wrapped store, and redis failures fall through to it as well.
type CachedStore struct {
	booking.Store
	rdb *redis.Client
	ttl time.Duration
}

func NewCachedStore(inner booking.Store, rdb *redis.Client, ttl time.Duration) booking.Store {
	if rdb == nil || ttl <= 0 {
		return inner
	}
	return &CachedStore{Store: inner, rdb: rdb, ttl: ttl}
}

func CatalogCacheKey(st types.ServiceType) string {
	return fmt.Sprintf("catalog:members:%s", st)
}

func (c *CachedStore) QueryActiveMembersWithFees(ctx context.Context, st types.ServiceType) ([]models.Member, error) {
	key := CatalogCacheKey(st)
	val, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var members []models.Member
		if err := json.Unmarshal([]byte(val), &members); err == nil {
			return members, nil
		}
		log.Printf("[redis] Discarding unreadable cache entry %s\n", key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[redis] Error reading %s: %s\n", key, err.Error())
		return c.Store.QueryActiveMembersWithFees(ctx, st)
	}

	members, err := c.Store.QueryActiveMembersWithFees(ctx, st)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(members)
	if err != nil {
		return members, nil
	}
	if err := c.rdb.Set(ctx, key, string(payload), c.ttl).Err(); err != nil {
		log.Printf("[redis] Error caching %s: %s\n", key, err.Error())
	}
	return members, nil
}

// InvalidateCatalogCache drops cached catalogs. With no types given all of
// them are dropped.
func InvalidateCatalogCache(ctx context.Context, rdb *redis.Client, sts ...types.ServiceType) error {
	if rdb == nil {
		return nil
	}
	if len(sts) == 0 {
		sts = types.ServiceTypes
	}
	keys := make([]string, 0, len(sts))
	for _, st := range sts {
		keys = append(keys, CatalogCacheKey(st))
	}
	return rdb.Del(ctx, keys...).Err()
}
