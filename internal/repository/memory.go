// Package repository содержит реализацию хранилища данных в памяти процесса.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkravets/renthub-system/internal/model"
)

// ErrListingNotFound возвращается, если объявление с указанным идентификатором не найдено.
var (
	ErrListingNotFound = errors.New("listing not found")
	// ErrTenantNotFound возвращается, если арендатор не найден.
	ErrTenantNotFound = errors.New("tenant not found")
)

// Memory предоставляет доступ к данным сервиса, целиком размещённым в памяти.
// Все методы безопасны для конкурентного использования.
type Memory struct {
	mu         sync.RWMutex
	listings   []model.Listing
	tenants    []model.Tenant
	payments   []model.PaymentRecord
	months     []model.MonthStat
	activities []model.Activity
}

// NewMemory создаёт хранилище, заполненное демонстрационным набором данных.
func NewMemory() *Memory {
	return &Memory{
		listings:   seedListings(),
		tenants:    seedTenants(),
		payments:   seedPayments(),
		months:     seedMonths(),
		activities: seedActivities(),
	}
}

// Close освобождает ресурсы хранилища.
func (m *Memory) Close() error {
	return nil
}

// ListListings возвращает все объявления в исходном порядке каталога.
func (m *Memory) ListListings(ctx context.Context) ([]model.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Listing, len(m.listings))
	copy(out, m.listings)
	return out, nil
}

// GetListing возвращает объявление по идентификатору.
func (m *Memory) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.listings {
		if l.ID == id {
			c := l
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrListingNotFound, id)
}

// CreateListing добавляет новое объявление и возвращает его идентификатор.
func (m *Memory) CreateListing(ctx context.Context, l model.Listing) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	l.ID = uuid.NewString()
	if l.Status == "" {
		l.Status = model.ListingStatusAvailable
	}
	l.CreatedAt = time.Now()
	m.listings = append(m.listings, l)
	return l.ID, nil
}

// UpdateListing заменяет данные существующего объявления.
func (m *Memory) UpdateListing(ctx context.Context, l model.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.listings {
		if m.listings[i].ID == l.ID {
			l.CreatedAt = m.listings[i].CreatedAt
			m.listings[i] = l
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrListingNotFound, l.ID)
}

// DeleteListing удаляет объявление по идентификатору.
func (m *Memory) DeleteListing(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.listings {
		if m.listings[i].ID == id {
			m.listings = append(m.listings[:i], m.listings[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrListingNotFound, id)
}

// ListTenants возвращает всех арендаторов.
func (m *Memory) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Tenant, len(m.tenants))
	copy(out, m.tenants)
	return out, nil
}

// ListPayments возвращает записи журнала платежей.
func (m *Memory) ListPayments(ctx context.Context) ([]model.PaymentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.PaymentRecord, len(m.payments))
	copy(out, m.payments)
	return out, nil
}

// RecordPayment добавляет запись в журнал платежей.
func (m *Memory) RecordPayment(ctx context.Context, rec model.PaymentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == "" {
		rec.ID = fmt.Sprintf("PAY-%03d", len(m.payments)+1)
	}
	m.payments = append(m.payments, rec)
	return nil
}

// ListMonthStats возвращает помесячную статистику выручки и заполняемости.
func (m *Memory) ListMonthStats(ctx context.Context) ([]model.MonthStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.MonthStat, len(m.months))
	copy(out, m.months)
	return out, nil
}

// RecordActivity добавляет событие в ленту последних действий.
func (m *Memory) RecordActivity(ctx context.Context, a model.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.activities = append(m.activities, a)
	return nil
}

// ListActivities возвращает события ленты, начиная с самых новых.
func (m *Memory) ListActivities(ctx context.Context, limit int) ([]model.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Activity, 0, limit)
	for i := len(m.activities) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.activities[i])
	}
	return out, nil
}
