// Package payment предоставляет платёжный шлюз: локальную имитацию
// и HTTP-клиент для внешнего платёжного процессора.
package payment

import "errors"

// ErrDeclined возвращается, когда платёжный процессор отклонил списание.
var (
	ErrDeclined = errors.New("payment declined")
	// ErrUnavailable возвращается, когда платёжный процессор недоступен.
	ErrUnavailable = errors.New("payment gateway unavailable")
)
