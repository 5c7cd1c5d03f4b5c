// Package geo предоставляет определение местоположения пользователя.
package geo

import (
	"context"
	"errors"
	"time"
)

// ErrPermissionDenied возвращается, когда пользователь запретил доступ к геолокации.
var (
	ErrPermissionDenied = errors.New("geolocation permission denied")
	// ErrPositionUnavailable возвращается, когда местоположение определить не удалось.
	ErrPositionUnavailable = errors.New("geolocation position unavailable")
	// ErrTimeout возвращается, когда определение местоположения не уложилось в отведённое время.
	ErrTimeout = errors.New("geolocation timeout")
)

// Position содержит географические координаты.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Provider определяет контракт поставщика геолокации.
type Provider interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Static возвращает заранее заданные координаты после небольшой задержки,
// имитируя обращение к системному сервису геолокации.
type Static struct {
	pos   Position
	err   error
	delay time.Duration
}

// NewStatic создаёт поставщика с фиксированными координатами.
func NewStatic(pos Position, delay time.Duration) *Static {
	return &Static{pos: pos, delay: delay}
}

// NewFailing создаёт поставщика, всегда завершающегося указанной ошибкой.
func NewFailing(err error) *Static {
	return &Static{err: err}
}

// CurrentPosition возвращает текущие координаты пользователя.
func (s *Static) CurrentPosition(ctx context.Context) (Position, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Position{}, ErrTimeout
		case <-timer.C:
		}
	}

	if s.err != nil {
		return Position{}, s.err
	}
	return s.pos, nil
}
