// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
package ports

import (
	"context"
)

// RosterSource supplies the initial population of a zoo.
// Adapters may read it from a file, a remote service, or a fixture.
type RosterSource interface {
	// Load returns the roster. Implementations return an empty roster, not an
	// error, when there is nothing to seed.
	Load(ctx context.Context) (*Roster, error)
}

// Roster is the seed description of a zoo. Enclosures are referenced by name
// because IDs are assigned when the roster is registered.
type Roster struct {
	Enclosures []RosterEnclosure `koanf:"enclosures"`
	Animals    []RosterAnimal    `koanf:"animals"`
	Staff      []RosterStaff     `koanf:"staff"`
}

// RosterEnclosure describes one enclosure to create.
type RosterEnclosure struct {
	Name           string   `koanf:"name"`
	Capacity       int      `koanf:"capacity"`
	AllowedSpecies []string `koanf:"allowed_species"`
}

// RosterAnimal describes one animal to register and optionally house.
type RosterAnimal struct {
	Name           string   `koanf:"name"`
	Species        string   `koanf:"species"`
	Class          string   `koanf:"class"`
	Enclosure      string   `koanf:"enclosure"`
	UnderTreatment bool     `koanf:"under_treatment"`
	HealthIssues   []string `koanf:"health_issues"`
}

// RosterStaff describes one staff member. Enclosures only apply to zookeepers.
type RosterStaff struct {
	Name       string   `koanf:"name"`
	Role       string   `koanf:"role"`
	Specialty  string   `koanf:"specialty"`
	Enclosures []string `koanf:"enclosures"`
}

// Len is the number of entities described by the roster.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}

	return len(r.Enclosures) + len(r.Animals) + len(r.Staff)
}
