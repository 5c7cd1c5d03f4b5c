// Package filter реализует отбор и сортировку объявлений по критериям поиска.
package filter

import (
	"sort"
	"strings"

	"github.com/dkravets/renthub-system/internal/model"
)

// Apply возвращает объявления, удовлетворяющие всем заданным критериям.
// Порядок входной последовательности сохраняется; пустой результат не является ошибкой.
func Apply(c model.SearchCriteria, listings []model.Listing) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(c, l) {
			out = append(out, l)
		}
	}
	return out
}

// Matches сообщает, удовлетворяет ли объявление критериям поиска.
// Объявление подходит, когда выполнены все заданные числовые границы,
// поисковая строка без учёта регистра входит в название или адрес,
// а количество спален не меньше заданного минимума.
func Matches(c model.SearchCriteria, l model.Listing) bool {
	if c.MinPrice != nil && l.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && l.Price > *c.MaxPrice {
		return false
	}
	if c.MinSqft != nil && l.Sqft < *c.MinSqft {
		return false
	}
	if c.MaxSqft != nil && l.Sqft > *c.MaxSqft {
		return false
	}
	if c.MinBedrooms != nil && l.Bedrooms < *c.MinBedrooms {
		return false
	}
	if c.Term != "" {
		term := strings.ToLower(c.Term)
		if !strings.Contains(strings.ToLower(l.Title), term) &&
			!strings.Contains(strings.ToLower(l.Address), term) {
			return false
		}
	}
	return true
}

// Sort устойчиво сортирует объявления по выбранному полю.
// При desc = true порядок убывающий. Неизвестный ключ оставляет порядок без изменений.
func Sort(listings []model.Listing, key model.SortKey, desc bool) {
	var less func(a, b model.Listing) bool

	switch key {
	case model.SortByPrice:
		less = func(a, b model.Listing) bool { return a.Price < b.Price }
	case model.SortBySqft:
		less = func(a, b model.Listing) bool { return a.Sqft < b.Sqft }
	case model.SortByNewest:
		less = func(a, b model.Listing) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}

	sort.SliceStable(listings, func(i, j int) bool {
		if desc {
			return less(listings[j], listings[i])
		}
		return less(listings[i], listings[j])
	})
}
