package filter

import (
	"testing"
	"time"

	"github.com/dkravets/renthub-system/internal/model"
)

func float(v float64) *float64 { return &v }
func num(v int) *int           { return &v }

func testListings() []model.Listing {
	return []model.Listing{
		{ID: "1", Title: "Modern Downtown Loft", Address: "123 Main St, Downtown", Price: 2500, Sqft: 1200, Bedrooms: 2},
		{ID: "2", Title: "Cozy Studio Apartment", Address: "456 Oak Ave, Midtown", Price: 1800, Sqft: 600, Bedrooms: 1},
		{ID: "3", Title: "Luxury Penthouse Suite", Address: "789 Park Blvd, Uptown", Price: 4200, Sqft: 2400, Bedrooms: 3},
		{ID: "4", Title: "Family-Friendly Townhouse", Address: "321 Elm St, Suburbs", Price: 3200, Sqft: 1800, Bedrooms: 3},
	}
}

func TestApply_EmptyCriteriaReturnsAllInOrder(t *testing.T) {
	listings := testListings()

	got := Apply(model.SearchCriteria{}, listings)

	if len(got) != len(listings) {
		t.Fatalf("len = %d, want %d", len(got), len(listings))
	}
	for i := range listings {
		if got[i].ID != listings[i].ID {
			t.Fatalf("order broken at %d: got %s, want %s", i, got[i].ID, listings[i].ID)
		}
	}
}

func TestApply_MinPriceExcludesCheaperListing(t *testing.T) {
	l := model.Listing{ID: "1", Price: 2500}

	got := Apply(model.SearchCriteria{MinPrice: float(3000)}, []model.Listing{l})

	if len(got) != 0 {
		t.Fatalf("listing below min price must be excluded, got %+v", got)
	}
}

func TestApply_Criteria(t *testing.T) {
	tests := []struct {
		name     string
		criteria model.SearchCriteria
		wantIDs  []string
	}{
		{
			name:     "price range",
			criteria: model.SearchCriteria{MinPrice: float(2000), MaxPrice: float(3500)},
			wantIDs:  []string{"1", "4"},
		},
		{
			name:     "sqft range",
			criteria: model.SearchCriteria{MinSqft: num(1000), MaxSqft: num(2000)},
			wantIDs:  []string{"1", "4"},
		},
		{
			name:     "min bedrooms",
			criteria: model.SearchCriteria{MinBedrooms: num(3)},
			wantIDs:  []string{"3", "4"},
		},
		{
			name:     "term matches title case-insensitively",
			criteria: model.SearchCriteria{Term: "LOFT"},
			wantIDs:  []string{"1"},
		},
		{
			name:     "term matches address",
			criteria: model.SearchCriteria{Term: "oak ave"},
			wantIDs:  []string{"2"},
		},
		{
			name:     "all bounds combined",
			criteria: model.SearchCriteria{Term: "downtown", MinPrice: float(2000), MinBedrooms: num(2)},
			wantIDs:  []string{"1"},
		},
		{
			name:     "no matches is a valid empty result",
			criteria: model.SearchCriteria{Term: "castle"},
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.criteria, testListings())

			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d listings, want %d: %+v", len(got), len(tt.wantIDs), got)
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Fatalf("result[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSort_StableByField(t *testing.T) {
	listings := testListings()
	listings[0].CreatedAt = time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)
	listings[1].CreatedAt = time.Date(2023, 7, 3, 0, 0, 0, 0, time.UTC)
	listings[2].CreatedAt = time.Date(2023, 9, 21, 0, 0, 0, 0, time.UTC)
	listings[3].CreatedAt = time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		key     model.SortKey
		desc    bool
		wantIDs []string
	}{
		{name: "price ascending", key: model.SortByPrice, wantIDs: []string{"2", "1", "4", "3"}},
		{name: "price descending", key: model.SortByPrice, desc: true, wantIDs: []string{"3", "4", "1", "2"}},
		{name: "sqft ascending", key: model.SortBySqft, wantIDs: []string{"2", "1", "4", "3"}},
		{name: "newest descending", key: model.SortByNewest, desc: true, wantIDs: []string{"4", "3", "2", "1"}},
		{name: "unknown key keeps order", key: model.SortKey("unknown"), wantIDs: []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := make([]model.Listing, len(listings))
			copy(ls, listings)

			Sort(ls, tt.key, tt.desc)

			for i, id := range tt.wantIDs {
				if ls[i].ID != id {
					t.Fatalf("sorted[%d] = %s, want %s", i, ls[i].ID, id)
				}
			}
		})
	}
}
