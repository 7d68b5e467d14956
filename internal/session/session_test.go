package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	sess := New(NewMemoryStore(), "client-1")

	current, err := sess.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	admin := domain.AdminPublic{ID: "3", Name: "Alice Uwase", Email: "wasac@example.com", Agency: domain.AgencyWASAC}
	require.NoError(t, sess.Save(ctx, admin))

	current, err = sess.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, admin, *current)

	require.NoError(t, sess.Clear(ctx))
	current, err = sess.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, sess.Clear(ctx))
}

func TestSessionsAreIsolatedByKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	first := New(store, "client-1")
	second := New(store, "client-2")

	require.NoError(t, first.Save(ctx, domain.AdminPublic{ID: "1", Agency: domain.AgencyRTDA}))

	current, err := second.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSessionRejectsCorruptSlot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "client-1", []byte{0xff, 0x00}))

	_, err := New(store, "client-1").Current(ctx)
	assert.Error(t, err)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, []byte) error { return nil }

func (failingStore) Clear(context.Context, string) error { return nil }

func TestSessionPropagatesStoreErrors(t *testing.T) {
	_, err := New(failingStore{}, "client-1").Current(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrEmpty)
}
