// Package session реализует сеансы пользователей, хранимые в памяти процесса.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dkravets/renthub-system/internal/geo"
)

// Session содержит состояние одного сеанса пользователя.
// Признак привилегированности открывает доступ к панели администратора;
// реального обмена учётными данными в системе нет.
type Session struct {
	id string

	mu         sync.Mutex
	privileged bool
	location   *geo.Position
}

// ID возвращает идентификатор сеанса.
func (s *Session) ID() string {
	return s.id
}

// IsPrivileged сообщает, открыт ли сеансу доступ к административным операциям.
func (s *Session) IsPrivileged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.privileged
}

// SetPrivileged выставляет признак привилегированного сеанса.
func (s *Session) SetPrivileged(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.privileged = v
}

// Location возвращает сохранённые координаты пользователя, если они определялись.
func (s *Session) Location() *geo.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return nil
	}
	c := *s.location
	return &c
}

// SetLocation сохраняет координаты пользователя в сеансе.
func (s *Session) SetLocation(pos geo.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = &pos
}

// Store хранит активные сеансы по идентификатору.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore создаёт пустое хранилище сеансов.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create создаёт новый сеанс со случайным идентификатором.
func (st *Store) Create() *Session {
	s := &Session{id: uuid.NewString()}

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()

	return s
}

// Get возвращает сеанс по идентификатору.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	return s, ok
}
