package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

// encMode uses Core Deterministic Encoding so equal identities always
// produce identical slot bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("session: CBOR encoder initialization failed: " + err.Error())
	}
}

// Session is one client's view of its slot.
type Session struct {
	store Store
	key   string
}

// New binds key to store.
func New(store Store, key string) *Session {
	return &Session{store: store, key: key}
}

// Key returns the client key the session is bound to.
func (s *Session) Key() string {
	return s.key
}

// Current returns the signed-in admin, or nil when the slot is empty.
func (s *Session) Current(ctx context.Context) (*domain.AdminPublic, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, ErrEmpty) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var admin domain.AdminPublic
	if err := cbor.Unmarshal(raw, &admin); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &admin, nil
}

// Save replaces the slot content with admin.
func (s *Session) Save(ctx context.Context, admin domain.AdminPublic) error {
	raw, err := encMode.Marshal(admin)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.store.Set(ctx, s.key, raw)
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (s *Session) Clear(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.store.Clear(ctx, s.key)
}
