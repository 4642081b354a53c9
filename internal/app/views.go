package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/zoo-service/internal/domain"
)

// The service hands out copies so callers never touch the aggregate outside
// the service lock.

// AnimalView is a point-in-time copy of an animal.
type AnimalView struct {
	ID             uuid.UUID
	Name           string
	Species        string
	Class          domain.AnimalClass
	UnderTreatment bool
	HealthRecords  []HealthRecordView
}

// HealthRecordView is a point-in-time copy of a health record.
type HealthRecordView struct {
	ID          uuid.UUID
	Description string
	Active      bool
	RecordedAt  time.Time
	ResolvedAt  *time.Time
}

// EnclosureView is a point-in-time copy of an enclosure.
type EnclosureView struct {
	ID             uuid.UUID
	Name           string
	Capacity       int
	AllowedSpecies []string
	Animals        []uuid.UUID
	Status         string
}

// StaffView is a point-in-time copy of a staff member.
type StaffView struct {
	ID                 uuid.UUID
	Name               string
	Role               domain.StaffRole
	Specialty          string
	AssignedEnclosures []uuid.UUID
}

func newAnimalView(a *domain.Animal) AnimalView {
	records := make([]HealthRecordView, 0, len(a.HealthRecords))
	for _, r := range a.HealthRecords {
		records = append(records, newHealthRecordView(r))
	}

	return AnimalView{
		ID:             a.ID,
		Name:           a.Name,
		Species:        a.Species,
		Class:          a.Class,
		UnderTreatment: a.UnderTreatment,
		HealthRecords:  records,
	}
}

func newHealthRecordView(r *domain.HealthRecord) HealthRecordView {
	v := HealthRecordView{
		ID:          r.ID,
		Description: r.Description,
		Active:      r.Active,
		RecordedAt:  r.RecordedAt,
	}

	if r.ResolvedAt != nil {
		resolved := *r.ResolvedAt
		v.ResolvedAt = &resolved
	}

	return v
}

func newEnclosureView(e *domain.Enclosure) EnclosureView {
	species := make([]string, len(e.AllowedSpecies))
	copy(species, e.AllowedSpecies)

	return EnclosureView{
		ID:             e.ID,
		Name:           e.Name,
		Capacity:       e.Capacity,
		AllowedSpecies: species,
		Animals:        e.Animals(),
		Status:         e.Status(),
	}
}

func newStaffView(s *domain.Staff) StaffView {
	v := StaffView{
		ID:                 s.ID,
		Name:               s.Name,
		Role:               s.Role,
		AssignedEnclosures: []uuid.UUID{},
	}

	switch {
	case s.Role == domain.RoleZookeeper && s.Zookeeper != nil:
		v.AssignedEnclosures = append(v.AssignedEnclosures, s.Zookeeper.AssignedEnclosures...)
	case s.Role == domain.RoleVeterinarian && s.Veterinarian != nil:
		v.Specialty = s.Veterinarian.Specialty
	}

	return v
}
