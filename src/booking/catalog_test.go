package booking

import (
	"context"
	"errors"
	"receh48/src/models"
	"receh48/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogSortsByFeeThenName(t *testing.T) {
	store := newFakeStore()
	store.members = []models.Member{
		member(1, "Zara", 50000, types.SERVICE_TWOSHOT),
		member(2, "Yuna", 50000, types.SERVICE_TWOSHOT),
		member(3, "Mira", 30000, types.SERVICE_TWOSHOT),
	}
	store.content["terms_twoshot"] = &models.SiteContent{Key: "terms_twoshot", Value: "Syarat"}

	catalog, err := LoadCatalog(context.Background(), store, types.SERVICE_TWOSHOT)
	require.NoError(t, err)

	names := []string{}
	for _, m := range catalog.Members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Yuna", "Zara", "Mira"}, names)
	assert.Equal(t, "Syarat", catalog.Terms)
}

func TestLoadCatalogRepeatedLoadsAreStable(t *testing.T) {
	store := newFakeStore()
	store.members = []models.Member{
		member(4, "Ayu", 20000, types.SERVICE_VC),
		member(2, "ayu", 20000, types.SERVICE_VC),
		member(3, "Ayu", 20000, types.SERVICE_VC),
	}
	first, err := LoadCatalog(context.Background(), store, types.SERVICE_VC)
	require.NoError(t, err)
	store.members = []models.Member{store.members[2], store.members[0], store.members[1]}
	second, err := LoadCatalog(context.Background(), store, types.SERVICE_VC)
	require.NoError(t, err)
	assert.Equal(t, first.Members, second.Members)
}

func TestLoadCatalogSkipsIneligibleMembers(t *testing.T) {
	inactiveGroup := member(2, "Lia", 40000, types.SERVICE_MNG)
	inactiveGroup.MemberFees[0].FeeGroup.IsActive = false
	otherType := member(3, "Nina", 40000, types.SERVICE_VC)
	inactiveMember := member(4, "Oni", 40000, types.SERVICE_MNG)
	inactiveMember.IsActive = false

	store := newFakeStore()
	store.members = []models.Member{
		member(1, "Kiki", 40000, types.SERVICE_MNG),
		inactiveGroup,
		otherType,
		inactiveMember,
		{ID: 5, Name: "Tanpa Fee", IsActive: true},
	}

	catalog, err := LoadCatalog(context.Background(), store, types.SERVICE_MNG)
	require.NoError(t, err)
	require.Len(t, catalog.Members, 1)
	assert.Equal(t, "Kiki", catalog.Members[0].Name)
	assert.Equal(t, "", catalog.Terms)
}

func TestLoadCatalogRejectsMalformedRecords(t *testing.T) {
	cases := map[string]models.Member{
		"no id":        {Name: "X", IsActive: true},
		"blank name":   member(7, "  ", 1000, types.SERVICE_VC),
		"negative fee": member(8, "Rina", -1, types.SERVICE_VC),
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			store.members = []models.Member{member(1, "Ok", 1000, types.SERVICE_VC), m}
			catalog, err := LoadCatalog(context.Background(), store, types.SERVICE_VC)
			assert.Nil(t, catalog)
			var loadErr *CatalogLoadError
			assert.True(t, errors.As(err, &loadErr))
		})
	}
}

func TestLoadCatalogFailsWholeLoadOnReadError(t *testing.T) {
	store := newFakeStore()
	store.members = []models.Member{member(1, "Ok", 1000, types.SERVICE_VC)}
	store.contentErr = errors.New("timeout")

	catalog, err := LoadCatalog(context.Background(), store, types.SERVICE_VC)
	assert.Nil(t, catalog)
	var loadErr *CatalogLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, types.SERVICE_VC, loadErr.ServiceType)
	assert.Contains(t, err.Error(), "Gagal memuat data")

	store.contentErr = nil
	store.membersErr = errors.New("connection refused")
	_, err = LoadCatalog(context.Background(), store, types.SERVICE_VC)
	assert.ErrorAs(t, err, &loadErr)
}
