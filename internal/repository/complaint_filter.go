package repository

import (
	"strings"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

// ComplaintFilter narrows complaint listings. Zero values mean "no constraint".
type ComplaintFilter struct {
	Agency     *domain.Agency
	Category   *domain.Category
	Province   *string
	Statuses   []domain.Status
	SearchTerm *string
	Limit      int
	Offset     int
}

// Matches reports whether complaint satisfies every constraint of the filter.
func (f ComplaintFilter) Matches(c *domain.Complaint) bool {
	if f.Agency != nil && c.AssignedAgency != *f.Agency {
		return false
	}
	if f.Category != nil && c.Category != *f.Category {
		return false
	}
	if f.Province != nil && c.Province != *f.Province {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, status := range f.Statuses {
			if c.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if term := f.searchTerm(); term != "" {
		if !strings.Contains(strings.ToLower(c.TicketID), term) &&
			!strings.Contains(strings.ToLower(c.CitizenName), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) {
			return false
		}
	}
	return true
}

func (f ComplaintFilter) searchTerm() string {
	if f.SearchTerm == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*f.SearchTerm))
}

func (f ComplaintFilter) window(total int) (int, int) {
	start := f.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if f.Limit > 0 && start+f.Limit < total {
		end = start + f.Limit
	}
	return start, end
}
