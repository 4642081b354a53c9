package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/zoo-service/internal/app"
	"github.com/jsamuelsen/zoo-service/internal/domain"
)

// CreateAnimalRequest is the body of POST /api/v1/animals.
type CreateAnimalRequest struct {
	Name    string `json:"name"    validate:"required,notblank,max=100"`
	Species string `json:"species" validate:"required,notblank,max=100"`
	Class   string `json:"class"   validate:"required,oneof=mammal bird reptile"`
}

// ToInput converts the request to an application input.
func (r *CreateAnimalRequest) ToInput() app.AnimalInput {
	return app.AnimalInput{
		Name:    r.Name,
		Species: r.Species,
		Class:   domain.AnimalClass(r.Class),
	}
}

// CreateEnclosureRequest is the body of POST /api/v1/enclosures. An empty
// allowedSpecies list accepts any species.
type CreateEnclosureRequest struct {
	Name           string   `json:"name"           validate:"required,notblank,max=100"`
	Capacity       int      `json:"capacity"       validate:"required,min=1,max=10000"`
	AllowedSpecies []string `json:"allowedSpecies" validate:"omitempty,max=50,dive,notblank,max=100"`
}

// ToInput converts the request to an application input.
func (r *CreateEnclosureRequest) ToInput() app.EnclosureInput {
	return app.EnclosureInput{
		Name:           r.Name,
		Capacity:       r.Capacity,
		AllowedSpecies: r.AllowedSpecies,
	}
}

// CreateStaffRequest is the body of POST /api/v1/staff. Specialty applies to
// veterinarians and enclosures to zookeepers.
type CreateStaffRequest struct {
	Name       string   `json:"name"       validate:"required,notblank,max=100"`
	Role       string   `json:"role"       validate:"required,oneof=zookeeper veterinarian"`
	Specialty  string   `json:"specialty"  validate:"max=100"`
	Enclosures []string `json:"enclosures" validate:"omitempty,dive,uuid"`
}

// ToInput converts the request to an application input. Enclosure IDs have
// already been validated as UUIDs.
func (r *CreateStaffRequest) ToInput() app.StaffInput {
	ids := make([]uuid.UUID, 0, len(r.Enclosures))
	for _, s := range r.Enclosures {
		ids = append(ids, uuid.MustParse(s))
	}

	return app.StaffInput{
		Name:       r.Name,
		Role:       domain.StaffRole(r.Role),
		Specialty:  r.Specialty,
		Enclosures: ids,
	}
}

// AssignAnimalRequest is the body of POST /api/v1/enclosures/:id/animals.
type AssignAnimalRequest struct {
	AnimalID string `json:"animalId" validate:"required,uuid"`
}

// AssignEnclosureRequest is the body of POST /api/v1/staff/:id/enclosures.
type AssignEnclosureRequest struct {
	EnclosureID string `json:"enclosureId" validate:"required,uuid"`
}

// RecordHealthIssueRequest is the body of POST /api/v1/animals/:id/health-records.
type RecordHealthIssueRequest struct {
	Description string `json:"description" validate:"required,notblank,max=500"`
}

// SetTreatmentRequest is the body of PUT /api/v1/animals/:id/treatment.
type SetTreatmentRequest struct {
	UnderTreatment *bool `json:"underTreatment" validate:"required"`
}

// AnimalResponse is the JSON form of an animal.
type AnimalResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Species        string                 `json:"species"`
	Class          string                 `json:"class"`
	UnderTreatment bool                   `json:"underTreatment"`
	HealthRecords  []HealthRecordResponse `json:"healthRecords"`
}

// HealthRecordResponse is the JSON form of a health record.
type HealthRecordResponse struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Active      bool       `json:"active"`
	RecordedAt  time.Time  `json:"recordedAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

// EnclosureResponse is the JSON form of an enclosure.
type EnclosureResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Capacity       int      `json:"capacity"`
	AllowedSpecies []string `json:"allowedSpecies"`
	Animals        []string `json:"animals"`
	Status         string   `json:"status"`
}

// StaffResponse is the JSON form of a staff member.
type StaffResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Role               string   `json:"role"`
	Specialty          string   `json:"specialty,omitempty"`
	AssignedEnclosures []string `json:"assignedEnclosures"`
}

// ListResponse wraps collection responses.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse builds a list response, never with a null items array.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}

	return ListResponse[T]{Items: items, Count: len(items)}
}

// RoutineResponse is the body of GET /api/v1/routine.
type RoutineResponse struct {
	Tasks []string `json:"tasks"`
}

// SpeciesGroupResponse is one entry of the species report.
type SpeciesGroupResponse struct {
	Species string   `json:"species"`
	Names   []string `json:"names"`
}

// EnclosureStatusResponse is one entry of the enclosure status report.
type EnclosureStatusResponse struct {
	EnclosureID string `json:"enclosureId"`
	Name        string `json:"name"`
	Status      string `json:"status"`
}

// HealthReportResponse is the body of GET /api/v1/reports/health.
type HealthReportResponse struct {
	Issues []string `json:"issues"`
}

// FromAnimalView converts an application view to its JSON form.
func FromAnimalView(v app.AnimalView) AnimalResponse {
	records := make([]HealthRecordResponse, 0, len(v.HealthRecords))
	for _, r := range v.HealthRecords {
		records = append(records, FromHealthRecordView(r))
	}

	return AnimalResponse{
		ID:             v.ID.String(),
		Name:           v.Name,
		Species:        v.Species,
		Class:          string(v.Class),
		UnderTreatment: v.UnderTreatment,
		HealthRecords:  records,
	}
}

// FromHealthRecordView converts an application view to its JSON form.
func FromHealthRecordView(v app.HealthRecordView) HealthRecordResponse {
	return HealthRecordResponse{
		ID:          v.ID.String(),
		Description: v.Description,
		Active:      v.Active,
		RecordedAt:  v.RecordedAt,
		ResolvedAt:  v.ResolvedAt,
	}
}

// FromEnclosureView converts an application view to its JSON form.
func FromEnclosureView(v app.EnclosureView) EnclosureResponse {
	species := v.AllowedSpecies
	if species == nil {
		species = []string{}
	}

	return EnclosureResponse{
		ID:             v.ID.String(),
		Name:           v.Name,
		Capacity:       v.Capacity,
		AllowedSpecies: species,
		Animals:        idStrings(v.Animals),
		Status:         v.Status,
	}
}

// FromStaffView converts an application view to its JSON form.
func FromStaffView(v app.StaffView) StaffResponse {
	return StaffResponse{
		ID:                 v.ID.String(),
		Name:               v.Name,
		Role:               string(v.Role),
		Specialty:          v.Specialty,
		AssignedEnclosures: idStrings(v.AssignedEnclosures),
	}
}

// FromSpeciesGroups converts the species report.
func FromSpeciesGroups(groups []domain.SpeciesGroup) []SpeciesGroupResponse {
	out := make([]SpeciesGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, SpeciesGroupResponse{Species: g.Species, Names: g.Names})
	}

	return out
}

// FromEnclosureStatuses converts the enclosure status report.
func FromEnclosureStatuses(report []domain.EnclosureStatus) []EnclosureStatusResponse {
	out := make([]EnclosureStatusResponse, 0, len(report))
	for _, s := range report {
		out = append(out, EnclosureStatusResponse{
			EnclosureID: s.EnclosureID.String(),
			Name:        s.Name,
			Status:      s.Status,
		})
	}

	return out
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return out
}
