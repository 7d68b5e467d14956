// Package routing decides which agency handles a complaint category.
package routing

import "github.com/Moussassoss/citizens-complaints/internal/domain"

var categoryAgencies = map[domain.Category]domain.Agency{
	domain.CategoryRoads:           domain.AgencyRTDA,
	domain.CategoryElectricity:     domain.AgencyREG,
	domain.CategoryWater:           domain.AgencyWASAC,
	domain.CategoryIdentity:        domain.AgencyNIDA,
	domain.CategoryHealth:          domain.AgencyMINISANTE,
	domain.CategoryImmigration:     domain.AgencyDGIE,
	domain.CategoryLocalGovernment: domain.AgencyDistrictOffice,
	domain.CategoryEducation:       domain.AgencyDistrictOffice,
}

// DefaultAgency receives every category without an explicit owner.
const DefaultAgency = domain.AgencyDistrictOffice

// Route maps a category to its responsible agency. It never fails.
func Route(category domain.Category) domain.Agency {
	if agency, ok := categoryAgencies[category]; ok {
		return agency
	}
	return DefaultAgency
}

// Categories returns the closed category set in display order.
func Categories() []domain.Category {
	return []domain.Category{
		domain.CategoryRoads,
		domain.CategoryElectricity,
		domain.CategoryWater,
		domain.CategoryIdentity,
		domain.CategoryLocalGovernment,
		domain.CategoryEducation,
		domain.CategoryHealth,
		domain.CategoryImmigration,
	}
}

// Agencies returns the closed agency set in display order.
func Agencies() []domain.Agency {
	return []domain.Agency{
		domain.AgencyRTDA,
		domain.AgencyREG,
		domain.AgencyWASAC,
		domain.AgencyNIDA,
		domain.AgencyMINISANTE,
		domain.AgencyDGIE,
		domain.AgencyDistrictOffice,
	}
}

// KnownCategory reports whether category belongs to the closed set.
func KnownCategory(category domain.Category) bool {
	_, ok := categoryAgencies[category]
	return ok
}
