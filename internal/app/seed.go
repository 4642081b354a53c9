package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jsamuelsen/zoo-service/internal/domain"
	"github.com/jsamuelsen/zoo-service/internal/ports"
)

// SeedResult summarises what a roster added to the zoo.
type SeedResult struct {
	Enclosures int
	Animals    int
	Staff      int
}

// Seed loads a roster and registers it through the aggregate, so every
// enclosure rule applies to seeded animals too. Enclosures are created first,
// then animals, then staff. The first failing entry aborts the seed; entries
// registered before it stay in the zoo and are counted in the result.
func (s *ZooService) Seed(ctx context.Context, source ports.RosterSource) (SeedResult, error) {
	var result SeedResult

	roster, err := source.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("loading roster: %w", err)
	}

	if roster.Len() == 0 {
		s.log(ctx).InfoContext(ctx, "roster is empty, nothing to seed")
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, re := range roster.Enclosures {
		e, err := domain.NewEnclosure(re.Name, re.Capacity, re.AllowedSpecies...)
		if err != nil {
			return result, fmt.Errorf("roster enclosure %d: %w", i, err)
		}

		s.zoo.AddEnclosure(e)
		result.Enclosures++
	}

	for i, ra := range roster.Animals {
		if err := s.seedAnimal(ra); err != nil {
			return result, fmt.Errorf("roster animal %d (%s): %w", i, ra.Name, err)
		}

		result.Animals++
	}

	for i, rs := range roster.Staff {
		if err := s.seedStaff(rs); err != nil {
			return result, fmt.Errorf("roster staff %d (%s): %w", i, rs.Name, err)
		}

		result.Staff++
	}

	s.log(ctx).InfoContext(ctx, "roster seeded",
		slog.Int("enclosures", result.Enclosures),
		slog.Int("animals", result.Animals),
		slog.Int("staff", result.Staff),
	)

	return result, nil
}

// seedAnimal registers the animal only once every step that can fail has
// passed, so a rejected entry leaves nothing behind. It is housed before
// treatment is flagged, since animals under treatment cannot be assigned.
func (s *ZooService) seedAnimal(ra ports.RosterAnimal) error {
	a, err := domain.NewAnimal(ra.Name, ra.Species, domain.AnimalClass(ra.Class))
	if err != nil {
		return err
	}

	for _, issue := range ra.HealthIssues {
		if _, err := a.RecordHealthIssue(issue, s.now()); err != nil {
			return err
		}
	}

	if ra.Enclosure != "" {
		e, err := s.zoo.EnclosureByName(ra.Enclosure)
		if err != nil {
			return err
		}

		if err := s.zoo.AssignAnimalToEnclosure(a, e); err != nil {
			return err
		}
	}

	a.UnderTreatment = ra.UnderTreatment
	s.zoo.AddAnimal(a)

	return nil
}

func (s *ZooService) seedStaff(rs ports.RosterStaff) error {
	var (
		member *domain.Staff
		err    error
	)

	switch domain.StaffRole(rs.Role) {
	case domain.RoleZookeeper:
		ids := make([]uuid.UUID, 0, len(rs.Enclosures))

		for _, name := range rs.Enclosures {
			e, err := s.zoo.EnclosureByName(name)
			if err != nil {
				return err
			}

			ids = append(ids, e.ID)
		}

		member, err = domain.NewZookeeper(rs.Name, ids...)
	case domain.RoleVeterinarian:
		member, err = domain.NewVeterinarian(rs.Name, rs.Specialty)
	default:
		err = domain.NewValidationError("role", fmt.Sprintf("unknown role %q", rs.Role))
	}

	if err != nil {
		return err
	}

	s.zoo.AddStaff(member)

	return nil
}
