package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dkravets/renthub-system/internal/model"
	"github.com/dkravets/renthub-system/internal/repository"
)

type stubRepo struct {
	listings []model.Listing
	tenants  []model.Tenant
	payments []model.PaymentRecord
	months   []model.MonthStat

	recorded   []model.PaymentRecord
	activities []model.Activity
}

func (s *stubRepo) Close() error { return nil }

func (s *stubRepo) ListListings(ctx context.Context) ([]model.Listing, error) {
	return s.listings, nil
}

func (s *stubRepo) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	for _, l := range s.listings {
		if l.ID == id {
			c := l
			return &c, nil
		}
	}
	return nil, repository.ErrListingNotFound
}

func (s *stubRepo) CreateListing(ctx context.Context, l model.Listing) (string, error) {
	s.listings = append(s.listings, l)
	return l.ID, nil
}

func (s *stubRepo) UpdateListing(ctx context.Context, l model.Listing) error { return nil }
func (s *stubRepo) DeleteListing(ctx context.Context, id string) error       { return nil }

func (s *stubRepo) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	return s.tenants, nil
}

func (s *stubRepo) ListPayments(ctx context.Context) ([]model.PaymentRecord, error) {
	return s.payments, nil
}

func (s *stubRepo) RecordPayment(ctx context.Context, rec model.PaymentRecord) error {
	s.recorded = append(s.recorded, rec)
	return nil
}

func (s *stubRepo) ListMonthStats(ctx context.Context) ([]model.MonthStat, error) {
	return s.months, nil
}

func (s *stubRepo) RecordActivity(ctx context.Context, a model.Activity) error {
	s.activities = append(s.activities, a)
	return nil
}

func (s *stubRepo) ListActivities(ctx context.Context, limit int) ([]model.Activity, error) {
	return s.activities, nil
}

func testRepo() *stubRepo {
	return &stubRepo{
		listings: []model.Listing{
			{ID: "1", Title: "Modern Downtown Loft", Address: "123 Main St", Price: 2500, ViewingFee: 75, Status: model.ListingStatusOccupied},
			{ID: "2", Title: "Cozy Studio Apartment", Address: "456 Oak Ave", Price: 1800, ViewingFee: 50, Status: model.ListingStatusAvailable},
			{ID: "3", Title: "Luxury Penthouse Suite", Address: "789 Park Blvd", Price: 4200, ViewingFee: 100, Status: model.ListingStatusAvailable},
		},
		tenants: []model.Tenant{
			{ID: "t1", Name: "John Doe", Email: "john@example.com", Apartment: "Modern Downtown Loft", RentAmount: 2500, Status: model.TenantStatusCurrent},
			{ID: "t2", Name: "Sarah Johnson", Email: "sarah@example.com", Apartment: "Cozy Studio Apartment", RentAmount: 1800, Status: model.TenantStatusCurrent},
			{ID: "t3", Name: "Mike Wilson", Email: "mike@example.com", Apartment: "Luxury Penthouse Suite", RentAmount: 4200, Status: model.TenantStatusOverdue},
		},
		payments: []model.PaymentRecord{
			{ID: "PAY-001", TenantName: "John Doe", Apartment: "Modern Downtown Loft", Type: model.PaymentTypeRent, Amount: 2500, Status: model.PaymentStatusCompleted},
			{ID: "PAY-002", TenantName: "Emma Davis", Apartment: "Modern Downtown Loft", Type: model.PaymentTypeViewing, Amount: 75, Status: model.PaymentStatusCompleted},
			{ID: "PAY-003", TenantName: "Mike Wilson", Apartment: "Luxury Penthouse Suite", Type: model.PaymentTypeRent, Amount: 4200, Status: model.PaymentStatusPending},
		},
		months: []model.MonthStat{
			{Month: "May", Revenue: 31200, Occupancy: 90},
			{Month: "Jun", Revenue: 29800, Occupancy: 87},
		},
	}
}

func TestSearchListingsFilterAndSort(t *testing.T) {
	svc := NewService(testRepo())
	min := 2000.0

	got, err := svc.SearchListings(context.Background(), model.SearchCriteria{MinPrice: &min}, model.SortByPrice, true)
	if err != nil {
		t.Fatalf("SearchListings: %v", err)
	}

	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSubmitApplicationLogsActivity(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo)

	if err := svc.SubmitApplication(context.Background(), "2", nil); err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}

	if len(repo.activities) != 1 {
		t.Fatalf("activities = %d, want 1", len(repo.activities))
	}
	if repo.activities[0].Message != "New rental application for Cozy Studio Apartment" {
		t.Fatalf("unexpected activity message: %q", repo.activities[0].Message)
	}
}

func TestRecordFlowPayment(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo)

	err := svc.RecordFlowPayment(context.Background(), "1", model.PurposeViewing, model.MethodPayPal, &model.PaymentResult{
		ConfirmationID: "paypal_123",
		Amount:         75,
	})
	if err != nil {
		t.Fatalf("RecordFlowPayment: %v", err)
	}

	if len(repo.recorded) != 1 {
		t.Fatalf("recorded %d payments, want 1", len(repo.recorded))
	}
	rec := repo.recorded[0]
	if rec.Type != model.PaymentTypeViewing || rec.Amount != 75 || rec.Status != model.PaymentStatusCompleted {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Apartment != "Modern Downtown Loft" {
		t.Fatalf("apartment = %q, want listing title", rec.Apartment)
	}
	if len(repo.activities) != 1 {
		t.Fatalf("activity feed not updated")
	}
}

func TestRecordFlowPaymentUnknownListing(t *testing.T) {
	svc := NewService(testRepo())

	err := svc.RecordFlowPayment(context.Background(), "missing", model.PurposeRental, model.MethodCard, &model.PaymentResult{Amount: 100})
	if !errors.Is(err, repository.ErrListingNotFound) {
		t.Fatalf("err = %v, want ErrListingNotFound", err)
	}
}

func TestAdminListingsStatusFilter(t *testing.T) {
	svc := NewService(testRepo())

	got, err := svc.AdminListings(context.Background(), "", model.ListingStatusAvailable)
	if err != nil {
		t.Fatalf("AdminListings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d listings, want 2 available", len(got))
	}
}

func TestListingOverview(t *testing.T) {
	svc := NewService(testRepo())

	stats, err := svc.ListingOverview(context.Background())
	if err != nil {
		t.Fatalf("ListingOverview: %v", err)
	}
	if stats.Total != 3 || stats.Available != 2 || stats.Occupied != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.MonthlyPotential != 8500 {
		t.Fatalf("monthly potential = %v, want 8500", stats.MonthlyPotential)
	}
}

func TestSearchTenants(t *testing.T) {
	svc := NewService(testRepo())

	tests := []struct {
		name    string
		term    string
		status  model.TenantStatus
		wantIDs []string
	}{
		{name: "by name", term: "sarah", wantIDs: []string{"t2"}},
		{name: "by apartment", term: "penthouse", wantIDs: []string{"t3"}},
		{name: "by status", status: model.TenantStatusOverdue, wantIDs: []string{"t3"}},
		{name: "no match", term: "nobody", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.SearchTenants(context.Background(), tt.term, tt.status)
			if err != nil {
				t.Fatalf("SearchTenants: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d tenants, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Fatalf("tenant[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestTenantOverview(t *testing.T) {
	svc := NewService(testRepo())

	stats, err := svc.TenantOverview(context.Background())
	if err != nil {
		t.Fatalf("TenantOverview: %v", err)
	}
	if stats.Total != 3 || stats.Current != 2 || stats.Overdue != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.TotalMonthlyRent != 8500 {
		t.Fatalf("total rent = %v, want 8500", stats.TotalMonthlyRent)
	}
}

func TestPaymentOverview(t *testing.T) {
	svc := NewService(testRepo())

	sum, err := svc.PaymentOverview(context.Background())
	if err != nil {
		t.Fatalf("PaymentOverview: %v", err)
	}
	if sum.TotalRevenue != 2575 {
		t.Fatalf("total revenue = %v, want 2575", sum.TotalRevenue)
	}
	if sum.PendingAmount != 4200 {
		t.Fatalf("pending = %v, want 4200", sum.PendingAmount)
	}
	if sum.ViewingRevenue != 75 || sum.RentRevenue != 2500 {
		t.Fatalf("split = %v/%v, want 75/2500", sum.ViewingRevenue, sum.RentRevenue)
	}
}

func TestSearchPayments(t *testing.T) {
	svc := NewService(testRepo())

	got, err := svc.SearchPayments(context.Background(), "emma", "")
	if err != nil {
		t.Fatalf("SearchPayments: %v", err)
	}
	if len(got) != 1 || got[0].ID != "PAY-002" {
		t.Fatalf("unexpected result: %+v", got)
	}

	got, err = svc.SearchPayments(context.Background(), "", model.PaymentTypeRent)
	if err != nil {
		t.Fatalf("SearchPayments: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rent payments, want 2", len(got))
	}
}

func TestAnalytics(t *testing.T) {
	svc := NewService(testRepo())

	report, err := svc.Analytics(context.Background())
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}

	want := (29800.0 - 31200.0) / 31200.0 * 100
	if report.RevenueChange != want {
		t.Fatalf("revenue change = %v, want %v", report.RevenueChange, want)
	}
	if report.OccupancyChange != -3 {
		t.Fatalf("occupancy change = %d, want -3", report.OccupancyChange)
	}
	if len(report.TopProperties) != 3 || report.TopProperties[0].Revenue != 4200 {
		t.Fatalf("unexpected top properties: %+v", report.TopProperties)
	}
}

func TestDashboard(t *testing.T) {
	svc := NewService(testRepo())

	sum, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if sum.AvailableListings != 2 || sum.OccupiedListings != 1 || sum.Tenants != 3 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.CompletedRevenue != 2575 {
		t.Fatalf("completed revenue = %v, want 2575", sum.CompletedRevenue)
	}
}
