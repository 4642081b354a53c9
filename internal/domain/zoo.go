package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Zoo is the aggregate root. It owns the canonical registries of animals,
// enclosures and staff, each kept in registration order.
//
// Zoo is not safe for concurrent use; the owner serialises access.
type Zoo struct {
	Name string

	animals    []*Animal
	enclosures []*Enclosure
	staff      []*Staff

	// known holds every animal ever registered or placed, so roster IDs
	// still resolve after RemoveAnimal.
	known map[uuid.UUID]*Animal
}

// SpeciesGroup lists the names of all animals of one species.
type SpeciesGroup struct {
	Species string
	Names   []string
}

// EnclosureStatus is one line of the enclosure status report.
type EnclosureStatus struct {
	EnclosureID uuid.UUID
	Name        string
	Status      string
}

// NewZoo returns an empty zoo.
func NewZoo(name string) *Zoo {
	return &Zoo{
		Name:  strings.TrimSpace(name),
		known: make(map[uuid.UUID]*Animal),
	}
}

// AddAnimal registers an animal. Duplicates are not checked.
func (z *Zoo) AddAnimal(a *Animal) {
	z.animals = append(z.animals, a)
	z.known[a.ID] = a
}

// RemoveAnimal unregisters the first animal with the given ID.
// Enclosure rosters are left untouched, so the animal keeps its place and is
// still fed until it is taken out of the enclosure.
func (z *Zoo) RemoveAnimal(id uuid.UUID) error {
	i := slices.IndexFunc(z.animals, func(a *Animal) bool { return a.ID == id })
	if i < 0 {
		return NewNotFoundError("animal", id.String())
	}

	z.animals = slices.Delete(z.animals, i, i+1)

	return nil
}

// AddEnclosure registers an enclosure. Duplicates are not checked.
func (z *Zoo) AddEnclosure(e *Enclosure) {
	z.enclosures = append(z.enclosures, e)
}

// AddStaff registers a staff member. Duplicates are not checked.
func (z *Zoo) AddStaff(s *Staff) {
	z.staff = append(z.staff, s)
}

// AssignAnimalToEnclosure places the animal in the enclosure.
//
// The animal is not removed from any enclosure it already occupies; moving
// an animal means calling RemoveAnimalFromEnclosure first.
func (z *Zoo) AssignAnimalToEnclosure(a *Animal, e *Enclosure) error {
	if a.UnderTreatment {
		return NewValidationError("animal", "animal under treatment cannot be moved")
	}

	if !e.CanAccept(a) {
		return NewValidationError("enclosure", "enclosure cannot accept this animal")
	}

	e.AddAnimal(a)
	z.known[a.ID] = a

	return nil
}

// RemoveAnimalFromEnclosure takes one roster entry for the animal out of the
// enclosure.
func (z *Zoo) RemoveAnimalFromEnclosure(animalID uuid.UUID, e *Enclosure) error {
	if !e.RemoveAnimal(animalID) {
		return NewNotFoundError("animal in enclosure "+e.Name, animalID.String())
	}

	return nil
}

// DailyRoutine returns the day's task descriptions.
//
// Feeding is generated by the first zookeeper only, for every animal on the
// roster of each of that keeper's enclosures. Cleaning is generated by every
// zookeeper, one task per assigned enclosure, in staff order. A zookeeper
// without a role payload has no enclosures and is skipped.
func (z *Zoo) DailyRoutine() []string {
	var keepers []*Staff

	for _, s := range z.staff {
		if s.Role == RoleZookeeper && s.Zookeeper != nil {
			keepers = append(keepers, s)
		}
	}

	tasks := make([]string, 0)

	if len(keepers) > 0 {
		first := keepers[0]

		for _, e := range z.resolveEnclosures(first.Zookeeper.AssignedEnclosures) {
			for _, id := range e.animals {
				if a := z.known[id]; a != nil {
					tasks = append(tasks, first.Feed(a))
				}
			}
		}
	}

	for _, k := range keepers {
		for _, e := range z.resolveEnclosures(k.Zookeeper.AssignedEnclosures) {
			tasks = append(tasks, k.CleanEnclosure(e))
		}
	}

	return tasks
}

// AnimalsBySpecies groups animal names by species. Groups follow the first
// occurrence of each species; names follow registration order.
func (z *Zoo) AnimalsBySpecies() []SpeciesGroup {
	groups := make([]SpeciesGroup, 0)
	index := make(map[string]int)

	for _, a := range z.animals {
		i, ok := index[a.Species]
		if !ok {
			i = len(groups)
			index[a.Species] = i
			groups = append(groups, SpeciesGroup{Species: a.Species})
		}

		groups[i].Names = append(groups[i].Names, a.Name)
	}

	return groups
}

// EnclosureStatusReport returns each enclosure's status in registration order.
func (z *Zoo) EnclosureStatusReport() []EnclosureStatus {
	report := make([]EnclosureStatus, 0, len(z.enclosures))

	for _, e := range z.enclosures {
		report = append(report, EnclosureStatus{
			EnclosureID: e.ID,
			Name:        e.Name,
			Status:      e.Status(),
		})
	}

	return report
}

// HealthReport returns one line per animal with at least one active issue.
func (z *Zoo) HealthReport() []string {
	lines := make([]string, 0)

	for _, a := range z.animals {
		if n := a.ActiveIssues(); n > 0 {
			lines = append(lines, fmt.Sprintf("%s (%s) has %d active issue(s).", a.Name, a.Species, n))
		}
	}

	return lines
}

// Animal looks up a registered animal.
func (z *Zoo) Animal(id uuid.UUID) (*Animal, error) {
	if a := z.findAnimal(id); a != nil {
		return a, nil
	}

	return nil, NewNotFoundError("animal", id.String())
}

// Enclosure looks up a registered enclosure.
func (z *Zoo) Enclosure(id uuid.UUID) (*Enclosure, error) {
	if e := z.findEnclosure(id); e != nil {
		return e, nil
	}

	return nil, NewNotFoundError("enclosure", id.String())
}

// EnclosureByName returns the first enclosure registered under name.
func (z *Zoo) EnclosureByName(name string) (*Enclosure, error) {
	i := slices.IndexFunc(z.enclosures, func(e *Enclosure) bool { return e.Name == name })
	if i < 0 {
		return nil, NewNotFoundError("enclosure", name)
	}

	return z.enclosures[i], nil
}

// StaffMember looks up a registered staff member.
func (z *Zoo) StaffMember(id uuid.UUID) (*Staff, error) {
	i := slices.IndexFunc(z.staff, func(s *Staff) bool { return s.ID == id })
	if i < 0 {
		return nil, NewNotFoundError("staff", id.String())
	}

	return z.staff[i], nil
}

// Animals returns the registered animals in registration order.
func (z *Zoo) Animals() []*Animal {
	return slices.Clone(z.animals)
}

// Enclosures returns the registered enclosures in registration order.
func (z *Zoo) Enclosures() []*Enclosure {
	return slices.Clone(z.enclosures)
}

// Staff returns the registered staff in registration order.
func (z *Zoo) Staff() []*Staff {
	return slices.Clone(z.staff)
}

// RecordHealthIssue opens a new health record for a registered animal.
func (z *Zoo) RecordHealthIssue(animalID uuid.UUID, description string, at time.Time) (*HealthRecord, error) {
	a, err := z.Animal(animalID)
	if err != nil {
		return nil, err
	}

	return a.RecordHealthIssue(description, at)
}

// ResolveHealthIssue closes a health record of a registered animal.
func (z *Zoo) ResolveHealthIssue(animalID, recordID uuid.UUID, at time.Time) (*HealthRecord, error) {
	a, err := z.Animal(animalID)
	if err != nil {
		return nil, err
	}

	return a.ResolveHealthIssue(recordID, at)
}

// SetTreatment flags or clears a registered animal's treatment state.
func (z *Zoo) SetTreatment(animalID uuid.UUID, underTreatment bool) (*Animal, error) {
	a, err := z.Animal(animalID)
	if err != nil {
		return nil, err
	}

	a.UnderTreatment = underTreatment

	return a, nil
}

// AssignEnclosureToKeeper adds a registered enclosure to a zookeeper's duties.
func (z *Zoo) AssignEnclosureToKeeper(staffID, enclosureID uuid.UUID) (*Staff, error) {
	s, err := z.StaffMember(staffID)
	if err != nil {
		return nil, err
	}

	e, err := z.Enclosure(enclosureID)
	if err != nil {
		return nil, err
	}

	if err := s.AssignEnclosure(e); err != nil {
		return nil, err
	}

	return s, nil
}

func (z *Zoo) findAnimal(id uuid.UUID) *Animal {
	for _, a := range z.animals {
		if a.ID == id {
			return a
		}
	}

	return nil
}

func (z *Zoo) findEnclosure(id uuid.UUID) *Enclosure {
	for _, e := range z.enclosures {
		if e.ID == id {
			return e
		}
	}

	return nil
}

// resolveEnclosures maps IDs to registered enclosures, skipping unknown IDs.
func (z *Zoo) resolveEnclosures(ids []uuid.UUID) []*Enclosure {
	out := make([]*Enclosure, 0, len(ids))

	for _, id := range ids {
		if e := z.findEnclosure(id); e != nil {
			out = append(out, e)
		}
	}

	return out
}
