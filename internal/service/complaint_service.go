package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
	"github.com/Moussassoss/citizens-complaints/internal/events"
	"github.com/Moussassoss/citizens-complaints/internal/location"
	"github.com/Moussassoss/citizens-complaints/internal/repository"
	"github.com/Moussassoss/citizens-complaints/internal/routing"
	"github.com/Moussassoss/citizens-complaints/internal/session"
	"github.com/Moussassoss/citizens-complaints/internal/ticketid"
	apperrors "github.com/Moussassoss/citizens-complaints/pkg/util/errorutil"
)

const (
	minDescriptionLength = 20
	maxIDAttempts        = 5
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ComplaintService coordinates the complaint lifecycle: intake, tracking and
// agency-side status handling.
type ComplaintService struct {
	complaints      repository.ComplaintRepository
	history         repository.StatusHistoryRepository
	generator       ticketid.Generator
	locations       *location.Dataset
	dispatcher      events.Dispatcher
	logger          *zap.Logger
	now             func() time.Time
	restrictUpdates bool
}

// ComplaintDependencies bundles collaborators for the complaint service.
// Locations is optional; when set, submissions must name a valid
// province/district/sector path. HistoryRepo is optional too.
type ComplaintDependencies struct {
	ComplaintRepo           repository.ComplaintRepository
	HistoryRepo             repository.StatusHistoryRepository
	Generator               ticketid.Generator
	Locations               *location.Dataset
	Dispatcher              events.Dispatcher
	Logger                  *zap.Logger
	Clock                   func() time.Time
	RestrictUpdatesToAgency bool
}

// ComplaintInput is what a citizen provides. The agency, status, ticket ID
// and timestamp are assigned by the service.
type ComplaintInput struct {
	CitizenName   string
	Phone         string
	Email         string
	Province      string
	District      string
	Sector        string
	Category      domain.Category
	Description   string
	AttachmentURL string
}

// AgencyStats summarizes an agency's complaints by status.
type AgencyStats struct {
	Agency   domain.Agency         `json:"agency"`
	Total    int                   `json:"total"`
	ByStatus map[domain.Status]int `json:"by_status"`
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	svc := &ComplaintService{
		complaints:      deps.ComplaintRepo,
		history:         deps.HistoryRepo,
		generator:       deps.Generator,
		locations:       deps.Locations,
		dispatcher:      deps.Dispatcher,
		logger:          deps.Logger,
		now:             deps.Clock,
		restrictUpdates: deps.RestrictUpdatesToAgency,
	}
	if svc.generator == nil {
		svc.generator = ticketid.NewGenerator(nil, nil)
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Submit validates the input, routes it and stores a new Pending complaint.
func (s *ComplaintService) Submit(ctx context.Context, input ComplaintInput) (*domain.Complaint, error) {
	input = input.normalized()
	if fields := s.validate(input); len(fields) > 0 {
		return nil, apperrors.NewFieldValidationError(fields)
	}

	complaint := &domain.Complaint{
		CitizenName:    input.CitizenName,
		Phone:          input.Phone,
		Email:          input.Email,
		Province:       input.Province,
		District:       input.District,
		Sector:         input.Sector,
		Category:       input.Category,
		Description:    input.Description,
		AttachmentURL:  input.AttachmentURL,
		AssignedAgency: routing.Route(input.Category),
		Status:         domain.StatusPending,
		CreatedAt:      s.now(),
	}

	var err error
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		complaint.TicketID = s.generator.Generate()
		err = s.complaints.Create(ctx, complaint)
		if !errors.Is(err, repository.ErrDuplicateTicketID) {
			break
		}
		s.logger.Warn("ticket id collision", zap.String("ticket_id", complaint.TicketID), zap.Int("attempt", attempt))
	}
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("store complaint: %w", err))
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventComplaintSubmitted,
		TicketID: complaint.TicketID,
		Payload: events.ComplaintSubmittedPayload{
			Category: complaint.Category,
			Agency:   complaint.AssignedAgency,
			Province: complaint.Province,
		},
	})
	return complaint, nil
}

// Track looks a complaint up by its exact ticket ID. No session needed.
func (s *ComplaintService) Track(ctx context.Context, ticketID string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, ticketID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, complaintNotFound(ticketID)
	}
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

// ListForCurrentAgency returns the signed-in admin's agency queue, newest
// first. The filter's Agency is always overwritten with the session's.
func (s *ComplaintService) ListForCurrentAgency(ctx context.Context, sess *session.Session, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	admin, err := requireSession(ctx, sess)
	if err != nil {
		return nil, err
	}
	agency := admin.Agency
	filter.Agency = &agency
	return s.complaints.List(ctx, filter)
}

// AgencyStats counts the signed-in admin's agency queue per status.
func (s *ComplaintService) AgencyStats(ctx context.Context, sess *session.Session) (*AgencyStats, error) {
	admin, err := requireSession(ctx, sess)
	if err != nil {
		return nil, err
	}
	queue, err := repository.ListByAgency(ctx, s.complaints, admin.Agency)
	if err != nil {
		return nil, err
	}
	stats := &AgencyStats{Agency: admin.Agency, Total: len(queue), ByStatus: make(map[domain.Status]int, 3)}
	for _, status := range domain.Statuses() {
		stats.ByStatus[status] = 0
	}
	for _, c := range queue {
		stats.ByStatus[c.Status]++
	}
	return stats, nil
}

// UpdateStatus sets a complaint's status and, when response is non-blank,
// replaces its admin response. Any status may follow any other; a request
// that keeps the status and carries no response changes nothing and is
// rejected.
func (s *ComplaintService) UpdateStatus(ctx context.Context, sess *session.Session, ticketID string, status domain.Status, response string) (*domain.Complaint, error) {
	admin, err := requireSession(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.NewFieldValidationError(map[string]string{
			"status": fmt.Sprintf("must be one of %q, %q or %q", domain.StatusPending, domain.StatusInProgress, domain.StatusResolved),
		})
	}

	current, err := s.complaints.GetByID(ctx, ticketID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, complaintNotFound(ticketID)
	}
	if err != nil {
		return nil, err
	}
	if s.restrictUpdates && current.AssignedAgency != admin.Agency {
		return nil, apperrors.NewForbidden("complaint is assigned to another agency")
	}

	response = strings.TrimSpace(response)
	if status == current.Status && response == "" {
		return nil, apperrors.NewUpdateRejected("status is unchanged and no response was given")
	}

	updated, err := s.complaints.UpdateStatus(ctx, ticketID, status, response)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, complaintNotFound(ticketID)
	}
	if err != nil {
		return nil, err
	}

	s.recordStatusChange(ctx, admin, current.Status, updated, response)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventComplaintStatusUpdated,
		TicketID: ticketID,
		ActorID:  admin.ID,
		Payload: events.ComplaintStatusUpdatedPayload{
			OldStatus:       current.Status,
			NewStatus:       updated.Status,
			Agency:          updated.AssignedAgency,
			ActorAgency:     admin.Agency,
			ResponseChanged: response != "",
		},
	})
	return updated, nil
}

// History returns the status audit trail of a complaint, oldest first.
func (s *ComplaintService) History(ctx context.Context, sess *session.Session, ticketID string) ([]domain.StatusChange, error) {
	if _, err := requireSession(ctx, sess); err != nil {
		return nil, err
	}
	if _, err := s.Track(ctx, ticketID); err != nil {
		return nil, err
	}
	if s.history == nil {
		return []domain.StatusChange{}, nil
	}
	return s.history.ListByTicket(ctx, ticketID)
}

// recordStatusChange appends to the audit trail. The update itself has
// already been applied, so a failure here is logged rather than returned.
func (s *ComplaintService) recordStatusChange(ctx context.Context, admin *domain.AdminPublic, oldStatus domain.Status, updated *domain.Complaint, response string) {
	if s.history == nil {
		return
	}
	entry := &domain.StatusChange{
		ID:          uuid.NewString(),
		TicketID:    updated.TicketID,
		ChangedByID: admin.ID,
		ActorAgency: admin.Agency,
		OldStatus:   oldStatus,
		NewStatus:   updated.Status,
		Response:    response,
		CreatedAt:   s.now(),
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Warn("record status change", zap.String("ticket_id", updated.TicketID), zap.Error(err))
	}
}

func (in ComplaintInput) normalized() ComplaintInput {
	in.CitizenName = strings.TrimSpace(in.CitizenName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Province = strings.TrimSpace(in.Province)
	in.District = strings.TrimSpace(in.District)
	in.Sector = strings.TrimSpace(in.Sector)
	in.Category = domain.Category(strings.TrimSpace(string(in.Category)))
	in.Description = strings.TrimSpace(in.Description)
	in.AttachmentURL = strings.TrimSpace(in.AttachmentURL)
	return in
}

// validate reports every failing field at once.
func (s *ComplaintService) validate(in ComplaintInput) map[string]string {
	fields := map[string]string{}
	if in.CitizenName == "" {
		fields["citizen_name"] = "is required"
	}
	switch {
	case in.Phone == "":
		fields["phone"] = "is required"
	case !phonePattern.MatchString(in.Phone):
		fields["phone"] = "must be 10 to 15 digits, optionally prefixed with +"
	}
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		fields["email"] = "is not a valid email address"
	}
	if in.Province == "" {
		fields["province"] = "is required"
	}
	if in.District == "" {
		fields["district"] = "is required"
	}
	if in.Sector == "" {
		fields["sector"] = "is required"
	}
	switch {
	case in.Category == "":
		fields["category"] = "is required"
	case !routing.KnownCategory(in.Category):
		fields["category"] = "is not a known category"
	}
	switch {
	case in.Description == "":
		fields["description"] = "is required"
	case utf8.RuneCountInString(in.Description) < minDescriptionLength:
		fields["description"] = fmt.Sprintf("must be at least %d characters", minDescriptionLength)
	}

	if s.locations != nil && in.Province != "" && in.District != "" && in.Sector != "" {
		for field, msg := range s.locations.Check(in.Province, in.District, in.Sector) {
			fields[field] = msg
		}
	}
	return fields
}

func complaintNotFound(ticketID string) error {
	return apperrors.NewNotFound("complaint", map[string]any{"ticket_id": ticketID})
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
