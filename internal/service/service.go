// Package service реализует бизнес-логику сервиса аренды жилья.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dkravets/renthub-system/internal/filter"
	"github.com/dkravets/renthub-system/internal/model"
	"github.com/dkravets/renthub-system/internal/wizard"
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error
	ListListings(ctx context.Context) ([]model.Listing, error)
	GetListing(ctx context.Context, id string) (*model.Listing, error)
	CreateListing(ctx context.Context, l model.Listing) (string, error)
	UpdateListing(ctx context.Context, l model.Listing) error
	DeleteListing(ctx context.Context, id string) error
	ListTenants(ctx context.Context) ([]model.Tenant, error)
	ListPayments(ctx context.Context) ([]model.PaymentRecord, error)
	RecordPayment(ctx context.Context, rec model.PaymentRecord) error
	ListMonthStats(ctx context.Context) ([]model.MonthStat, error)
	RecordActivity(ctx context.Context, a model.Activity) error
	ListActivities(ctx context.Context, limit int) ([]model.Activity, error)
}

// Service содержит бизнес-логику сервиса аренды жилья.
type Service struct {
	repo Repository
}

// NewService создаёт новый сервис с указанным репозиторием.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// SearchListings возвращает объявления, отобранные по критериям и отсортированные
// по выбранному полю. Без ключа сортировки порядок каталога сохраняется.
func (s *Service) SearchListings(ctx context.Context, c model.SearchCriteria, key model.SortKey, desc bool) ([]model.Listing, error) {
	listings, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, err
	}

	out := filter.Apply(c, listings)
	if key != "" {
		filter.Sort(out, key, desc)
	}
	return out, nil
}

// GetListing возвращает объявление по идентификатору.
func (s *Service) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	return s.repo.GetListing(ctx, id)
}

// SubmitApplication принимает отправленную заявку на аренду.
// Сама анкета не сохраняется: в ленту действий попадает только факт подачи.
func (s *Service) SubmitApplication(ctx context.Context, listingID string, app *wizard.Application) error {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return err
	}

	return s.repo.RecordActivity(ctx, model.Activity{
		Kind:    "application",
		Message: fmt.Sprintf("New rental application for %s", listing.Title),
		At:      time.Now(),
	})
}

// RecordFlowPayment фиксирует успешный платёж сценария в журнале платежей.
func (s *Service) RecordFlowPayment(ctx context.Context, listingID string, purpose model.PaymentPurpose, method model.PaymentMethod, res *model.PaymentResult) error {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return err
	}

	typ := model.PaymentTypeViewing
	label := "Viewing"
	if purpose == model.PurposeRental {
		typ = model.PaymentTypeRent
		label = "Rent"
	}

	now := time.Now()
	err = s.repo.RecordPayment(ctx, model.PaymentRecord{
		TenantName: "Guest",
		Apartment:  listing.Title,
		Type:       typ,
		Amount:     res.Amount,
		Date:       &now,
		Status:     model.PaymentStatusCompleted,
		Method:     method,
	})
	if err != nil {
		return err
	}

	return s.repo.RecordActivity(ctx, model.Activity{
		Kind:    "payment",
		Message: fmt.Sprintf("%s payment of $%.0f received for %s", label, res.Amount, listing.Title),
		At:      now,
	})
}

// ListingStats содержит сводку по объявлениям для панели администратора.
type ListingStats struct {
	Total            int     `json:"total"`
	Available        int     `json:"available"`
	Occupied         int     `json:"occupied"`
	Maintenance      int     `json:"maintenance"`
	MonthlyPotential float64 `json:"monthly_potential"`
}

// AdminListings возвращает объявления, отобранные по строке поиска и статусу.
func (s *Service) AdminListings(ctx context.Context, term string, status model.ListingStatus) ([]model.Listing, error) {
	listings, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if status != "" && l.Status != status {
			continue
		}
		if !filter.Matches(model.SearchCriteria{Term: term}, l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// ListingOverview возвращает сводку по объявлениям.
func (s *Service) ListingOverview(ctx context.Context) (*ListingStats, error) {
	listings, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ListingStats{Total: len(listings)}
	for _, l := range listings {
		switch l.Status {
		case model.ListingStatusAvailable:
			stats.Available++
		case model.ListingStatusOccupied:
			stats.Occupied++
		case model.ListingStatusMaintenance:
			stats.Maintenance++
		}
		stats.MonthlyPotential += l.Price
	}
	return stats, nil
}

// CreateListing добавляет новое объявление.
func (s *Service) CreateListing(ctx context.Context, l model.Listing) (string, error) {
	return s.repo.CreateListing(ctx, l)
}

// UpdateListing заменяет данные объявления.
func (s *Service) UpdateListing(ctx context.Context, l model.Listing) error {
	return s.repo.UpdateListing(ctx, l)
}

// DeleteListing удаляет объявление.
func (s *Service) DeleteListing(ctx context.Context, id string) error {
	return s.repo.DeleteListing(ctx, id)
}

// TenantStats содержит сводку по арендаторам.
type TenantStats struct {
	Total            int     `json:"total"`
	Current          int     `json:"current"`
	Overdue          int     `json:"overdue"`
	TotalMonthlyRent float64 `json:"total_monthly_rent"`
}

// SearchTenants возвращает арендаторов, отобранных по строке поиска и статусу.
// Поиск без учёта регистра по имени, почте и названию квартиры.
func (s *Service) SearchTenants(ctx context.Context, term string, status model.TenantStatus) ([]model.Tenant, error) {
	tenants, err := s.repo.ListTenants(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	out := make([]model.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if status != "" && t.Status != status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(t.Name), term) &&
			!strings.Contains(strings.ToLower(t.Email), term) &&
			!strings.Contains(strings.ToLower(t.Apartment), term) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// TenantOverview возвращает сводку по арендаторам.
func (s *Service) TenantOverview(ctx context.Context) (*TenantStats, error) {
	tenants, err := s.repo.ListTenants(ctx)
	if err != nil {
		return nil, err
	}

	stats := &TenantStats{Total: len(tenants)}
	for _, t := range tenants {
		switch t.Status {
		case model.TenantStatusCurrent:
			stats.Current++
		case model.TenantStatusOverdue:
			stats.Overdue++
		}
		stats.TotalMonthlyRent += t.RentAmount
	}
	return stats, nil
}

// PaymentSummary содержит агрегаты журнала платежей.
type PaymentSummary struct {
	TotalRevenue   float64 `json:"total_revenue"`
	PendingAmount  float64 `json:"pending_amount"`
	ViewingRevenue float64 `json:"viewing_revenue"`
	RentRevenue    float64 `json:"rent_revenue"`
}

// SearchPayments возвращает записи журнала, отобранные по строке поиска и типу.
func (s *Service) SearchPayments(ctx context.Context, term string, typ model.PaymentType) ([]model.PaymentRecord, error) {
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	out := make([]model.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		if typ != "" && p.Type != typ {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.TenantName), term) &&
			!strings.Contains(strings.ToLower(p.Apartment), term) &&
			!strings.Contains(strings.ToLower(p.ID), term) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// PaymentOverview возвращает агрегаты журнала платежей.
func (s *Service) PaymentOverview(ctx context.Context) (*PaymentSummary, error) {
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		return nil, err
	}

	sum := &PaymentSummary{}
	for _, p := range payments {
		switch p.Status {
		case model.PaymentStatusCompleted:
			sum.TotalRevenue += p.Amount
			if p.Type == model.PaymentTypeViewing {
				sum.ViewingRevenue += p.Amount
			} else {
				sum.RentRevenue += p.Amount
			}
		case model.PaymentStatusPending:
			sum.PendingAmount += p.Amount
		}
	}
	return sum, nil
}

// PropertyPerformance содержит выручку одного объекта для отчёта аналитики.
type PropertyPerformance struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// AnalyticsReport содержит помесячную динамику выручки и заполняемости.
type AnalyticsReport struct {
	Months          []model.MonthStat     `json:"months"`
	RevenueChange   float64               `json:"revenue_change"`
	OccupancyChange int                   `json:"occupancy_change"`
	TopProperties   []PropertyPerformance `json:"top_properties"`
}

// Analytics возвращает отчёт по выручке и заполняемости.
// Изменения считаются между двумя последними месяцами ряда.
func (s *Service) Analytics(ctx context.Context) (*AnalyticsReport, error) {
	months, err := s.repo.ListMonthStats(ctx)
	if err != nil {
		return nil, err
	}

	report := &AnalyticsReport{Months: months}
	if len(months) >= 2 {
		cur := months[len(months)-1]
		prev := months[len(months)-2]
		if prev.Revenue != 0 {
			report.RevenueChange = (cur.Revenue - prev.Revenue) / prev.Revenue * 100
		}
		report.OccupancyChange = cur.Occupancy - prev.Occupancy
	}

	tenants, err := s.repo.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	perf := make([]PropertyPerformance, 0, len(tenants))
	for _, t := range tenants {
		perf = append(perf, PropertyPerformance{Name: t.Apartment, Revenue: t.RentAmount})
	}
	sort.SliceStable(perf, func(i, j int) bool { return perf[i].Revenue > perf[j].Revenue })
	if len(perf) > 3 {
		perf = perf[:3]
	}
	report.TopProperties = perf

	return report, nil
}

// DashboardSummary содержит сводку главного экрана панели администратора.
type DashboardSummary struct {
	AvailableListings int              `json:"available_listings"`
	OccupiedListings  int              `json:"occupied_listings"`
	Tenants           int              `json:"tenants"`
	CompletedRevenue  float64          `json:"completed_revenue"`
	RecentActivity    []model.Activity `json:"recent_activity"`
}

// Dashboard возвращает сводку для главного экрана панели администратора.
func (s *Service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	listingStats, err := s.ListingOverview(ctx)
	if err != nil {
		return nil, err
	}
	tenantStats, err := s.TenantOverview(ctx)
	if err != nil {
		return nil, err
	}
	paymentSummary, err := s.PaymentOverview(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := s.repo.ListActivities(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		AvailableListings: listingStats.Available,
		OccupiedListings:  listingStats.Occupied,
		Tenants:           tenantStats.Total,
		CompletedRevenue:  paymentSummary.TotalRevenue,
		RecentActivity:    activities,
	}, nil
}
