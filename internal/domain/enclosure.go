package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Enclosure is a named habitat with acceptance rules and a roster of the
// animals currently housed in it.
//
// The roster holds animal IDs only; the Zoo owns the animals themselves.
type Enclosure struct {
	ID       uuid.UUID
	Name     string
	Capacity int

	// AllowedSpecies restricts which species may be housed. Empty means any.
	AllowedSpecies []string

	animals []uuid.UUID
}

// NewEnclosure validates the input and returns an empty enclosure.
func NewEnclosure(name string, capacity int, allowedSpecies ...string) (*Enclosure, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "cannot be empty")
	}

	if capacity < 1 {
		return nil, NewValidationError("capacity", "must be at least 1")
	}

	species := make([]string, 0, len(allowedSpecies))
	for _, s := range allowedSpecies {
		if s = strings.TrimSpace(s); s != "" {
			species = append(species, s)
		}
	}

	return &Enclosure{
		ID:             uuid.New(),
		Name:           name,
		Capacity:       capacity,
		AllowedSpecies: species,
	}, nil
}

// CanAccept reports whether the animal's species is allowed and there is
// room left.
func (e *Enclosure) CanAccept(a *Animal) bool {
	if len(e.animals) >= e.Capacity {
		return false
	}

	if len(e.AllowedSpecies) == 0 {
		return true
	}

	return slices.Contains(e.AllowedSpecies, a.Species)
}

// AddAnimal appends the animal to the roster. It performs no checks; callers
// go through Zoo.AssignAnimalToEnclosure for the business rules.
func (e *Enclosure) AddAnimal(a *Animal) {
	e.animals = append(e.animals, a.ID)
}

// RemoveAnimal drops the first roster entry for id and reports whether one
// was found.
func (e *Enclosure) RemoveAnimal(id uuid.UUID) bool {
	i := slices.Index(e.animals, id)
	if i < 0 {
		return false
	}

	e.animals = slices.Delete(e.animals, i, i+1)

	return true
}

// Animals returns a copy of the roster in assignment order.
func (e *Enclosure) Animals() []uuid.UUID {
	return slices.Clone(e.animals)
}

// Houses reports whether id is on the roster.
func (e *Enclosure) Houses(id uuid.UUID) bool {
	return slices.Contains(e.animals, id)
}

// Status describes the enclosure's occupancy.
func (e *Enclosure) Status() string {
	return fmt.Sprintf("%s: %d/%d animals", e.Name, len(e.animals), e.Capacity)
}
