package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// StaffRole tags which variant a Staff value carries.
type StaffRole string

const (
	RoleZookeeper    StaffRole = "zookeeper"
	RoleVeterinarian StaffRole = "veterinarian"
)

// Staff is a zoo employee. Role selects the variant and exactly one of the
// role payloads is non-nil, matching Role.
type Staff struct {
	ID   uuid.UUID
	Name string
	Role StaffRole

	Zookeeper    *Zookeeper
	Veterinarian *Veterinarian
}

// Zookeeper feeds the animals and cleans the enclosures assigned to it.
type Zookeeper struct {
	// AssignedEnclosures holds enclosure IDs in assignment order.
	AssignedEnclosures []uuid.UUID
}

// Veterinarian looks after animal health.
type Veterinarian struct {
	Specialty string
}

// NewZookeeper returns a zookeeper responsible for the given enclosures.
func NewZookeeper(name string, enclosures ...uuid.UUID) (*Staff, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "cannot be empty")
	}

	return &Staff{
		ID:        uuid.New(),
		Name:      name,
		Role:      RoleZookeeper,
		Zookeeper: &Zookeeper{AssignedEnclosures: slices.Clone(enclosures)},
	}, nil
}

// NewVeterinarian returns a veterinarian with an optional specialty.
func NewVeterinarian(name, specialty string) (*Staff, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "cannot be empty")
	}

	return &Staff{
		ID:           uuid.New(),
		Name:         name,
		Role:         RoleVeterinarian,
		Veterinarian: &Veterinarian{Specialty: strings.TrimSpace(specialty)},
	}, nil
}

// Feed describes the keeper feeding one animal.
func (s *Staff) Feed(a *Animal) string {
	return fmt.Sprintf("%s fed %s the %s.", s.Name, a.Name, a.Species)
}

// CleanEnclosure describes the keeper cleaning one enclosure.
func (s *Staff) CleanEnclosure(e *Enclosure) string {
	return fmt.Sprintf("%s cleaned %s.", s.Name, e.Name)
}

// AssignEnclosure adds an enclosure to a zookeeper's duties. A zookeeper
// built without its payload gets an empty one first.
func (s *Staff) AssignEnclosure(e *Enclosure) error {
	switch s.Role {
	case RoleZookeeper:
		if s.Zookeeper == nil {
			s.Zookeeper = &Zookeeper{}
		}

		s.Zookeeper.AssignedEnclosures = append(s.Zookeeper.AssignedEnclosures, e.ID)
		return nil
	case RoleVeterinarian:
		return NewValidationError("staff", "only zookeepers can be assigned enclosures")
	default:
		return NewValidationError("role", fmt.Sprintf("unknown role %q", s.Role))
	}
}
