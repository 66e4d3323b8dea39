package booking

import (
	"context"
	"fmt"
	"receh48/src/models"
	"receh48/src/types"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type CatalogMember struct {
	MemberID     uint    `json:"member_id"`
	Name         string  `json:"name"`
	PhotoURL     *string `json:"photo_url,omitempty"`
	FeeGroupID   uint    `json:"fee_group_id"`
	FeeGroupName string  `json:"fee_group_name"`
	Fee          int64   `json:"fee"`
}

type Catalog struct {
	ServiceType types.ServiceType `json:"service_type"`
	Members     []CatalogMember   `json:"members"`
	Terms       string            `json:"terms"`
}

func (c *Catalog) Find(memberID uint) (CatalogMember, bool) {
	if c == nil {
		return CatalogMember{}, false
	}
	for _, m := range c.Members {
		if m.MemberID == memberID {
			return m, true
		}
	}
	return CatalogMember{}, false
}

// LoadCatalog fetches bookable members and the terms text for st. Any read
// failure or malformed record fails the whole load.
func LoadCatalog(ctx context.Context, store Store, st types.ServiceType) (*Catalog, error) {
	records, err := store.QueryActiveMembersWithFees(ctx, st)
	if err != nil {
		return nil, &CatalogLoadError{ServiceType: st, Err: err}
	}
	members, err := parseMembers(records, st)
	if err != nil {
		return nil, &CatalogLoadError{ServiceType: st, Err: err}
	}
	SortMembers(members)

	terms := ""
	content, err := store.QueryContentByKey(ctx, st.TermsKey())
	if err != nil {
		return nil, &CatalogLoadError{ServiceType: st, Err: err}
	}
	if content != nil {
		terms = content.Value
	}

	return &Catalog{ServiceType: st, Members: members, Terms: terms}, nil
}

func parseMembers(records []models.Member, st types.ServiceType) ([]CatalogMember, error) {
	members := make([]CatalogMember, 0, len(records))
	for _, r := range records {
		if r.ID == 0 {
			return nil, fmt.Errorf("member record without id")
		}
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("member %d has no name", r.ID)
		}
		if !r.IsActive {
			continue
		}
		fee := feeFor(r.MemberFees, st)
		if fee == nil {
			continue
		}
		if fee.FeeGroup.Fee < 0 {
			return nil, fmt.Errorf("member %d has a negative fee", r.ID)
		}
		members = append(members, CatalogMember{
			MemberID:     r.ID,
			Name:         name,
			PhotoURL:     r.PhotoURL,
			FeeGroupID:   fee.FeeGroupID,
			FeeGroupName: fee.FeeGroup.Name,
			Fee:          fee.FeeGroup.Fee,
		})
	}
	return members, nil
}

func feeFor(fees []models.MemberFee, st types.ServiceType) *models.MemberFee {
	for i := range fees {
		f := &fees[i]
		if f.FeeType != st || f.FeeGroup == nil {
			continue
		}
		if !f.FeeGroup.IsActive || f.FeeGroup.FeeType != st {
			continue
		}
		return f
	}
	return nil
}

// SortMembers orders by fee descending, then name with Indonesian collation,
// then member id.
func SortMembers(members []CatalogMember) {
	col := collate.New(language.Indonesian)
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.Fee != b.Fee {
			return a.Fee > b.Fee
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.MemberID < b.MemberID
	})
}
