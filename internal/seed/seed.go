// Package seed provisions the staff directory and demo complaints at start-up.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Moussassoss/citizens-complaints/internal/auth"
	"github.com/Moussassoss/citizens-complaints/internal/domain"
	"github.com/Moussassoss/citizens-complaints/internal/repository"
	"github.com/Moussassoss/citizens-complaints/internal/routing"
	"github.com/Moussassoss/citizens-complaints/internal/ticketid"
)

//go:embed seed.yaml
var defaultSeed []byte

// Data is a decoded, validated seed file.
type Data struct {
	Admins     []domain.Admin
	Complaints []domain.Complaint
}

type adminRecord struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Agency   string `yaml:"agency"`
}

type complaintRecord struct {
	TicketID       string `yaml:"ticket_id"`
	CitizenName    string `yaml:"citizen_name"`
	Phone          string `yaml:"phone"`
	Email          string `yaml:"email"`
	Province       string `yaml:"province"`
	District       string `yaml:"district"`
	Sector         string `yaml:"sector"`
	Category       string `yaml:"category"`
	Description    string `yaml:"description"`
	AttachmentURL  string `yaml:"attachment_url"`
	AssignedAgency string `yaml:"assigned_agency"`
	Status         string `yaml:"status"`
	AdminResponse  string `yaml:"admin_response"`
	CreatedAt      string `yaml:"created_at"`
}

type document struct {
	Admins     []adminRecord     `yaml:"admins"`
	Complaints []complaintRecord `yaml:"complaints"`
}

// Load reads the seed at path, or the embedded seed when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Parse(defaultSeed)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a seed document.
func Parse(raw []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	data := &Data{
		Admins:     make([]domain.Admin, 0, len(doc.Admins)),
		Complaints: make([]domain.Complaint, 0, len(doc.Complaints)),
	}
	for i, rec := range doc.Admins {
		agency := domain.Agency(rec.Agency)
		if !slices.Contains(routing.Agencies(), agency) {
			return nil, fmt.Errorf("seed admin %d: unknown agency %q", i, rec.Agency)
		}
		if rec.ID == "" || rec.Email == "" {
			return nil, fmt.Errorf("seed admin %d: id and email are required", i)
		}
		data.Admins = append(data.Admins, domain.Admin{
			ID:       rec.ID,
			Name:     rec.Name,
			Email:    rec.Email,
			Password: rec.Password,
			Agency:   agency,
		})
	}
	for _, rec := range doc.Complaints {
		complaint, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("seed complaint %s: %w", rec.TicketID, err)
		}
		data.Complaints = append(data.Complaints, complaint)
	}
	return data, nil
}

func (rec complaintRecord) toDomain() (domain.Complaint, error) {
	if !ticketid.Valid(rec.TicketID) {
		return domain.Complaint{}, errors.New("malformed ticket id")
	}
	agency := domain.Agency(rec.AssignedAgency)
	if !slices.Contains(routing.Agencies(), agency) {
		return domain.Complaint{}, fmt.Errorf("unknown agency %q", rec.AssignedAgency)
	}
	status := domain.Status(rec.Status)
	if !status.Valid() {
		return domain.Complaint{}, fmt.Errorf("unknown status %q", rec.Status)
	}
	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return domain.Complaint{}, fmt.Errorf("created_at: %w", err)
	}
	return domain.Complaint{
		TicketID:       rec.TicketID,
		CitizenName:    rec.CitizenName,
		Phone:          rec.Phone,
		Email:          rec.Email,
		Province:       rec.Province,
		District:       rec.District,
		Sector:         rec.Sector,
		Category:       domain.Category(rec.Category),
		Description:    rec.Description,
		AttachmentURL:  rec.AttachmentURL,
		AssignedAgency: agency,
		Status:         status,
		AdminResponse:  rec.AdminResponse,
		CreatedAt:      createdAt,
	}, nil
}

// HashPasswords replaces every plaintext password with its bcrypt hash.
func (d *Data) HashPasswords(cost int) error {
	for i := range d.Admins {
		hashed, err := auth.HashPassword(d.Admins[i].Password, cost)
		if err != nil {
			return fmt.Errorf("hash password for admin %s: %w", d.Admins[i].ID, err)
		}
		d.Admins[i].Password = hashed
	}
	return nil
}

// ApplyComplaints inserts the seeded complaints. The store lists newest
// insertions first, so records are inserted in reverse to keep file order.
// Tickets that already exist (a persistent store after restart) are skipped.
func (d *Data) ApplyComplaints(ctx context.Context, repo repository.ComplaintRepository) (int, error) {
	inserted := 0
	for i := len(d.Complaints) - 1; i >= 0; i-- {
		complaint := d.Complaints[i]
		err := repo.Create(ctx, &complaint)
		if errors.Is(err, repository.ErrDuplicateTicketID) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed complaint %s: %w", complaint.TicketID, err)
		}
		inserted++
	}
	return inserted, nil
}
