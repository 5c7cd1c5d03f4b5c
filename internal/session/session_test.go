package session

import (
	"testing"

	"github.com/dkravets/renthub-system/internal/geo"
)

func TestStore_CreateAndGet(t *testing.T) {
	st := NewStore()

	s := st.Create()
	if s.ID() == "" {
		t.Fatalf("session id must not be empty")
	}

	got, ok := st.Get(s.ID())
	if !ok {
		t.Fatalf("session %s not found", s.ID())
	}
	if got != s {
		t.Fatalf("Get returned a different session")
	}

	if _, ok := st.Get("missing"); ok {
		t.Fatalf("unknown id must not resolve to a session")
	}
}

func TestSession_PrivilegedFlag(t *testing.T) {
	st := NewStore()
	s := st.Create()

	if s.IsPrivileged() {
		t.Fatalf("new session must not be privileged")
	}

	s.SetPrivileged(true)
	if !s.IsPrivileged() {
		t.Fatalf("privileged flag not set")
	}

	s.SetPrivileged(false)
	if s.IsPrivileged() {
		t.Fatalf("privileged flag not cleared")
	}
}

func TestSession_Location(t *testing.T) {
	st := NewStore()
	s := st.Create()

	if s.Location() != nil {
		t.Fatalf("new session must have no location")
	}

	s.SetLocation(geo.Position{Lat: 40.7128, Lng: -74.006})

	loc := s.Location()
	if loc == nil || loc.Lat != 40.7128 || loc.Lng != -74.006 {
		t.Fatalf("unexpected location: %+v", loc)
	}
}
