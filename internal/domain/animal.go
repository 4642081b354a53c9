package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnimalClass groups animals by taxonomic class.
type AnimalClass string

const (
	ClassMammal  AnimalClass = "mammal"
	ClassBird    AnimalClass = "bird"
	ClassReptile AnimalClass = "reptile"
)

// Valid reports whether c is a known class.
func (c AnimalClass) Valid() bool {
	switch c {
	case ClassMammal, ClassBird, ClassReptile:
		return true
	default:
		return false
	}
}

// Animal is a single animal registered with the zoo.
type Animal struct {
	ID      uuid.UUID
	Name    string
	Species string
	Class   AnimalClass

	// UnderTreatment blocks any enclosure assignment while set.
	UnderTreatment bool

	HealthRecords []*HealthRecord
}

// HealthRecord is an issue recorded against an animal.
// A record stays active until it is resolved.
type HealthRecord struct {
	ID          uuid.UUID
	Description string
	Active      bool
	RecordedAt  time.Time
	ResolvedAt  *time.Time
}

// NewAnimal validates the input and returns an animal with a fresh ID.
func NewAnimal(name, species string, class AnimalClass) (*Animal, error) {
	name = strings.TrimSpace(name)
	species = strings.TrimSpace(species)

	if name == "" {
		return nil, NewValidationError("name", "cannot be empty")
	}

	if species == "" {
		return nil, NewValidationError("species", "cannot be empty")
	}

	if !class.Valid() {
		return nil, NewValidationError("class", "must be one of: mammal bird reptile")
	}

	return &Animal{
		ID:      uuid.New(),
		Name:    name,
		Species: species,
		Class:   class,
	}, nil
}

// RecordHealthIssue appends a new active health record.
func (a *Animal) RecordHealthIssue(description string, at time.Time) (*HealthRecord, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, NewValidationError("description", "cannot be empty")
	}

	record := &HealthRecord{
		ID:          uuid.New(),
		Description: description,
		Active:      true,
		RecordedAt:  at,
	}
	a.HealthRecords = append(a.HealthRecords, record)

	return record, nil
}

// ResolveHealthIssue marks the record as no longer active.
func (a *Animal) ResolveHealthIssue(recordID uuid.UUID, at time.Time) (*HealthRecord, error) {
	for _, r := range a.HealthRecords {
		if r.ID != recordID {
			continue
		}

		if !r.Active {
			return nil, NewValidationError("health_record", "already resolved")
		}

		r.Active = false
		r.ResolvedAt = &at

		return r, nil
	}

	return nil, NewNotFoundError("health record", recordID.String())
}

// ActiveIssues counts the records that are still active.
func (a *Animal) ActiveIssues() int {
	n := 0

	for _, r := range a.HealthRecords {
		if r.Active {
			n++
		}
	}

	return n
}
