package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Moussassoss/citizens-complaints/internal/auth"
	"github.com/Moussassoss/citizens-complaints/internal/events"
	"github.com/Moussassoss/citizens-complaints/internal/repository"
	"github.com/Moussassoss/citizens-complaints/internal/seed"
	"github.com/Moussassoss/citizens-complaints/internal/session"
)

var fixedNow = time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)

type fixture struct {
	complaints repository.ComplaintRepository
	history    repository.StatusHistoryRepository
	sessions   session.Store
	auth       *AuthService
	svc        *ComplaintService
	published  []events.Event
}

func newFixture(t *testing.T, configure ...func(*ComplaintDependencies)) *fixture {
	t.Helper()
	ctx := context.Background()

	data, err := seed.Load("")
	require.NoError(t, err)
	admins, err := repository.NewAdminRepository(data.Admins)
	require.NoError(t, err)
	complaints := repository.NewMemoryComplaintRepository()
	_, err = data.ApplyComplaints(ctx, complaints)
	require.NoError(t, err)

	f := &fixture{
		complaints: complaints,
		history:    repository.NewMemoryStatusHistoryRepository(),
		sessions:   session.NewMemoryStore(),
	}

	dispatcher := events.NewInMemoryDispatcher()
	record := func(_ context.Context, e events.Event) error {
		f.published = append(f.published, e)
		return nil
	}
	dispatcher.Subscribe(events.EventComplaintSubmitted, record)
	dispatcher.Subscribe(events.EventComplaintStatusUpdated, record)

	deps := ComplaintDependencies{
		ComplaintRepo: complaints,
		HistoryRepo:   f.history,
		Dispatcher:    dispatcher,
		Logger:        zap.NewNop(),
		Clock:         func() time.Time { return fixedNow },
	}
	for _, fn := range configure {
		fn(&deps)
	}

	f.auth = NewAuthService(admins, auth.PlainVerifier{}, zap.NewNop())
	f.svc = NewComplaintService(deps)
	return f
}

func (f *fixture) newSession() *session.Session {
	return session.New(f.sessions, uuid.NewString())
}

func (f *fixture) login(t *testing.T, email string) *session.Session {
	t.Helper()
	sess := f.newSession()
	_, err := f.auth.Login(context.Background(), sess, email, "password123")
	require.NoError(t, err)
	return sess
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	n, err := f.complaints.Count(context.Background())
	require.NoError(t, err)
	return n
}

func validInput() ComplaintInput {
	return ComplaintInput{
		CitizenName: "Aline Uwimana",
		Phone:       "+250788123456",
		Email:       "aline@example.com",
		Province:    "Kigali",
		District:    "Gasabo",
		Sector:      "Remera",
		Category:    "Water & Sanitation",
		Description: strings.Repeat("x", 20),
	}
}

type sequenceGenerator struct {
	ids   []string
	calls int
}

func (g *sequenceGenerator) Generate() string {
	id := g.ids[min(g.calls, len(g.ids)-1)]
	g.calls++
	return id
}
