// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen/zoo-service/internal/domain"
	"github.com/jsamuelsen/zoo-service/internal/platform/logging"
	"github.com/jsamuelsen/zoo-service/internal/platform/telemetry"
)

const instrumentationName = "github.com/jsamuelsen/zoo-service/app"

// Assignment outcomes recorded on the zoo.assignments counter.
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeNotFound = "not_found"
)

// ZooService owns a single Zoo aggregate and serialises every operation on it.
// The aggregate itself is not safe for concurrent use; the service mutex is the
// single-writer discipline HTTP handlers rely on.
type ZooService struct {
	mu     sync.Mutex
	zoo    *domain.Zoo
	logger *slog.Logger
	now    func() time.Time

	assignments  metric.Int64Counter
	routineTasks metric.Int64Histogram
}

// ZooServiceConfig contains configuration for the zoo service.
type ZooServiceConfig struct {
	// Name is the zoo's display name.
	Name string

	Logger *slog.Logger

	// Clock overrides time.Now for health record timestamps.
	Clock func() time.Time
}

// AnimalInput describes an animal to register.
type AnimalInput struct {
	Name    string
	Species string
	Class   domain.AnimalClass
}

// EnclosureInput describes an enclosure to register.
type EnclosureInput struct {
	Name           string
	Capacity       int
	AllowedSpecies []string
}

// StaffInput describes a staff member to register. Specialty applies to
// veterinarians, Enclosures to zookeepers.
type StaffInput struct {
	Name       string
	Role       domain.StaffRole
	Specialty  string
	Enclosures []uuid.UUID
}

// NewZooService creates a zoo service with an empty zoo.
func NewZooService(cfg ZooServiceConfig) *ZooService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	meter := otel.Meter(instrumentationName)

	assignments, err := meter.Int64Counter("zoo.assignments",
		metric.WithDescription("Animal to enclosure assignment attempts"),
	)
	if err != nil {
		otel.Handle(err)
	}

	routineTasks, err := meter.Int64Histogram("zoo.daily_routine.tasks",
		metric.WithDescription("Number of tasks in a generated daily routine"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &ZooService{
		zoo:          domain.NewZoo(cfg.Name),
		logger:       logger.With(slog.String("component", "app.ZooService")),
		now:          clock,
		assignments:  assignments,
		routineTasks: routineTasks,
	}
}

// ZooName returns the name of the managed zoo.
func (s *ZooService) ZooName() string {
	return s.zoo.Name
}

// RegisterAnimal creates and registers a new animal.
func (s *ZooService) RegisterAnimal(ctx context.Context, in AnimalInput) (AnimalView, error) {
	a, err := domain.NewAnimal(in.Name, in.Species, in.Class)
	if err != nil {
		return AnimalView{}, fmt.Errorf("creating animal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.zoo.AddAnimal(a)

	s.log(ctx).InfoContext(ctx, "animal registered",
		slog.String("animal_id", a.ID.String()),
		slog.String("name", a.Name),
		slog.String("species", a.Species),
	)

	return newAnimalView(a), nil
}

// RemoveAnimal unregisters an animal. Enclosure rosters are not touched.
func (s *ZooService) RemoveAnimal(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.zoo.RemoveAnimal(id); err != nil {
		return fmt.Errorf("removing animal: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "animal removed", slog.String("animal_id", id.String()))

	return nil
}

// Animal returns one registered animal.
func (s *ZooService) Animal(_ context.Context, id uuid.UUID) (AnimalView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.zoo.Animal(id)
	if err != nil {
		return AnimalView{}, err
	}

	return newAnimalView(a), nil
}

// Animals lists registered animals in registration order.
func (s *ZooService) Animals(_ context.Context) []AnimalView {
	s.mu.Lock()
	defer s.mu.Unlock()

	animals := s.zoo.Animals()
	views := make([]AnimalView, 0, len(animals))

	for _, a := range animals {
		views = append(views, newAnimalView(a))
	}

	return views
}

// RegisterEnclosure creates and registers a new enclosure.
func (s *ZooService) RegisterEnclosure(ctx context.Context, in EnclosureInput) (EnclosureView, error) {
	e, err := domain.NewEnclosure(in.Name, in.Capacity, in.AllowedSpecies...)
	if err != nil {
		return EnclosureView{}, fmt.Errorf("creating enclosure: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.zoo.AddEnclosure(e)

	s.log(ctx).InfoContext(ctx, "enclosure registered",
		slog.String("enclosure_id", e.ID.String()),
		slog.String("name", e.Name),
		slog.Int("capacity", e.Capacity),
	)

	return newEnclosureView(e), nil
}

// Enclosures lists registered enclosures in registration order.
func (s *ZooService) Enclosures(_ context.Context) []EnclosureView {
	s.mu.Lock()
	defer s.mu.Unlock()

	enclosures := s.zoo.Enclosures()
	views := make([]EnclosureView, 0, len(enclosures))

	for _, e := range enclosures {
		views = append(views, newEnclosureView(e))
	}

	return views
}

// RegisterStaff creates and registers a staff member. Zookeeper enclosures
// must already be registered.
func (s *ZooService) RegisterStaff(ctx context.Context, in StaffInput) (StaffView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		member *domain.Staff
		err    error
	)

	switch in.Role {
	case domain.RoleZookeeper:
		for _, id := range in.Enclosures {
			if _, err := s.zoo.Enclosure(id); err != nil {
				return StaffView{}, fmt.Errorf("resolving keeper enclosure: %w", err)
			}
		}

		member, err = domain.NewZookeeper(in.Name, in.Enclosures...)
	case domain.RoleVeterinarian:
		member, err = domain.NewVeterinarian(in.Name, in.Specialty)
	default:
		err = domain.NewValidationError("role", fmt.Sprintf("unknown role %q", in.Role))
	}

	if err != nil {
		return StaffView{}, fmt.Errorf("creating staff member: %w", err)
	}

	s.zoo.AddStaff(member)

	s.log(ctx).InfoContext(ctx, "staff member registered",
		slog.String("staff_id", member.ID.String()),
		slog.String("name", member.Name),
		slog.String("role", string(member.Role)),
	)

	return newStaffView(member), nil
}

// Staff lists registered staff in registration order.
func (s *ZooService) Staff(_ context.Context) []StaffView {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff := s.zoo.Staff()
	views := make([]StaffView, 0, len(staff))

	for _, m := range staff {
		views = append(views, newStaffView(m))
	}

	return views
}

// AssignEnclosureToKeeper adds an enclosure to a zookeeper's duties.
func (s *ZooService) AssignEnclosureToKeeper(ctx context.Context, staffID, enclosureID uuid.UUID) (StaffView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.zoo.AssignEnclosureToKeeper(staffID, enclosureID)
	if err != nil {
		return StaffView{}, fmt.Errorf("assigning enclosure to keeper: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "enclosure assigned to keeper",
		slog.String("staff_id", staffID.String()),
		slog.String("enclosure_id", enclosureID.String()),
	)

	return newStaffView(member), nil
}

// AssignAnimalToEnclosure houses a registered animal in a registered enclosure.
// The animal is not removed from any other enclosure.
func (s *ZooService) AssignAnimalToEnclosure(ctx context.Context, animalID, enclosureID uuid.UUID) (EnclosureView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.log(ctx).With(
		slog.String("animal_id", animalID.String()),
		slog.String("enclosure_id", enclosureID.String()),
	)

	a, err := s.zoo.Animal(animalID)
	if err != nil {
		s.recordAssignment(ctx, outcomeNotFound)
		return EnclosureView{}, fmt.Errorf("assigning animal: %w", err)
	}

	e, err := s.zoo.Enclosure(enclosureID)
	if err != nil {
		s.recordAssignment(ctx, outcomeNotFound)
		return EnclosureView{}, fmt.Errorf("assigning animal: %w", err)
	}

	if err := s.zoo.AssignAnimalToEnclosure(a, e); err != nil {
		s.recordAssignment(ctx, outcomeRejected)
		logger.WarnContext(ctx, "assignment rejected", slog.Any("error", err))

		return EnclosureView{}, fmt.Errorf("assigning animal: %w", err)
	}

	s.recordAssignment(ctx, outcomeAccepted)
	logger.InfoContext(ctx, "animal assigned to enclosure")

	return newEnclosureView(e), nil
}

// RemoveAnimalFromEnclosure takes an animal off an enclosure's roster.
func (s *ZooService) RemoveAnimalFromEnclosure(ctx context.Context, animalID, enclosureID uuid.UUID) (EnclosureView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.zoo.Enclosure(enclosureID)
	if err != nil {
		return EnclosureView{}, fmt.Errorf("removing animal from enclosure: %w", err)
	}

	if err := s.zoo.RemoveAnimalFromEnclosure(animalID, e); err != nil {
		return EnclosureView{}, fmt.Errorf("removing animal from enclosure: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "animal removed from enclosure",
		slog.String("animal_id", animalID.String()),
		slog.String("enclosure_id", enclosureID.String()),
	)

	return newEnclosureView(e), nil
}

// RecordHealthIssue opens a health record for an animal.
func (s *ZooService) RecordHealthIssue(ctx context.Context, animalID uuid.UUID, description string) (HealthRecordView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.zoo.RecordHealthIssue(animalID, description, s.now())
	if err != nil {
		return HealthRecordView{}, fmt.Errorf("recording health issue: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "health issue recorded",
		slog.String("animal_id", animalID.String()),
		slog.String("record_id", r.ID.String()),
	)

	return newHealthRecordView(r), nil
}

// ResolveHealthIssue closes a health record.
func (s *ZooService) ResolveHealthIssue(ctx context.Context, animalID, recordID uuid.UUID) (HealthRecordView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.zoo.ResolveHealthIssue(animalID, recordID, s.now())
	if err != nil {
		return HealthRecordView{}, fmt.Errorf("resolving health issue: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "health issue resolved",
		slog.String("animal_id", animalID.String()),
		slog.String("record_id", recordID.String()),
	)

	return newHealthRecordView(r), nil
}

// SetTreatment starts or ends treatment for an animal.
func (s *ZooService) SetTreatment(ctx context.Context, animalID uuid.UUID, underTreatment bool) (AnimalView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.zoo.SetTreatment(animalID, underTreatment)
	if err != nil {
		return AnimalView{}, fmt.Errorf("setting treatment: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "treatment updated",
		slog.String("animal_id", animalID.String()),
		slog.Bool("under_treatment", underTreatment),
	)

	return newAnimalView(a), nil
}

// DailyRoutine generates the day's feeding and cleaning tasks.
func (s *ZooService) DailyRoutine(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.zoo.DailyRoutine()

	if s.routineTasks != nil {
		s.routineTasks.Record(ctx, int64(len(tasks)))
	}

	s.log(ctx).DebugContext(ctx, "daily routine generated", slog.Int("tasks", len(tasks)))

	return tasks
}

// AnimalsBySpecies groups animal names by species.
func (s *ZooService) AnimalsBySpecies(_ context.Context) []domain.SpeciesGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.zoo.AnimalsBySpecies()
}

// EnclosureStatusReport lists each enclosure's status.
func (s *ZooService) EnclosureStatusReport(_ context.Context) []domain.EnclosureStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.zoo.EnclosureStatusReport()
}

// HealthReport lists animals with active health issues.
func (s *ZooService) HealthReport(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.zoo.HealthReport()
}

// Stats implements telemetry.ZooStatsSource.
func (s *ZooService) Stats() telemetry.ZooStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	animals := s.zoo.Animals()
	stats := telemetry.ZooStats{
		Animals:    len(animals),
		Enclosures: len(s.zoo.Enclosures()),
		Staff:      len(s.zoo.Staff()),
	}

	for _, a := range animals {
		if a.UnderTreatment {
			stats.UnderTreatment++
		}

		stats.ActiveHealthIssues += a.ActiveIssues()
	}

	return stats
}

// Name implements ports.HealthChecker.
func (s *ZooService) Name() string {
	return "zoo"
}

// Check implements ports.HealthChecker. The zoo is in memory, so it is
// healthy as long as the caller has not given up.
func (s *ZooService) Check(ctx context.Context) error {
	return ctx.Err()
}

func (s *ZooService) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

func (s *ZooService) recordAssignment(ctx context.Context, outcome string) {
	if s.assignments == nil {
		return
	}

	s.assignments.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
