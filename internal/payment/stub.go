package payment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkravets/renthub-system/internal/model"
)

// Stub имитирует платёжный шлюз: списание всегда успешно
// после фиксированной задержки. Повторное списание с тем же
// ключом идемпотентности возвращает прежнее подтверждение.
type Stub struct {
	delay time.Duration

	mu      sync.Mutex
	charges map[string]string
}

// NewStub создаёт имитацию платёжного шлюза с указанной задержкой обработки.
func NewStub(delay time.Duration) *Stub {
	return &Stub{
		delay:   delay,
		charges: make(map[string]string),
	}
}

// Charge выполняет списание и возвращает идентификатор подтверждения.
// Идентификатор генерируется на стороне шлюза и опознаётся по способу оплаты.
func (s *Stub) Charge(ctx context.Context, key string, amount float64, method model.PaymentMethod) (string, error) {
	s.mu.Lock()
	if conf, ok := s.charges[key]; ok {
		s.mu.Unlock()
		return conf, nil
	}
	s.mu.Unlock()

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	conf := confirmationID(method)

	s.mu.Lock()
	s.charges[key] = conf
	s.mu.Unlock()

	return conf, nil
}

func confirmationID(method model.PaymentMethod) string {
	prefix := "payment"
	if method == model.MethodPayPal {
		prefix = "paypal"
	}
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
