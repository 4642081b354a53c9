package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/zoo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/zoo-service/internal/app"
)

// ZooHandler exposes the zoo service over HTTP.
type ZooHandler struct {
	service *app.ZooService
}

// NewZooHandler creates a new zoo handler.
func NewZooHandler(service *app.ZooService) *ZooHandler {
	return &ZooHandler{service: service}
}

// RegisterRoutes registers the zoo routes on rg, normally /api/v1.
func (h *ZooHandler) RegisterRoutes(rg *gin.RouterGroup) {
	animals := rg.Group("/animals")
	animals.GET("", h.ListAnimals)
	animals.POST("", h.CreateAnimal)
	animals.GET("/:id", h.GetAnimal)
	animals.DELETE("/:id", h.DeleteAnimal)
	animals.POST("/:id/health-records", h.RecordHealthIssue)
	animals.POST("/:id/health-records/:recordId/resolve", h.ResolveHealthIssue)
	animals.PUT("/:id/treatment", h.SetTreatment)

	enclosures := rg.Group("/enclosures")
	enclosures.GET("", h.ListEnclosures)
	enclosures.POST("", h.CreateEnclosure)
	enclosures.POST("/:id/animals", h.AssignAnimal)
	enclosures.DELETE("/:id/animals/:animalId", h.UnassignAnimal)

	staff := rg.Group("/staff")
	staff.GET("", h.ListStaff)
	staff.POST("", h.CreateStaff)
	staff.POST("/:id/enclosures", h.AssignEnclosure)

	rg.GET("/routine", h.DailyRoutine)

	reports := rg.Group("/reports")
	reports.GET("/species", h.SpeciesReport)
	reports.GET("/enclosures", h.EnclosureReport)
	reports.GET("/health", h.HealthReport)
}

// ListAnimals handles GET /api/v1/animals.
//
// @Summary List animals
// @Tags animals
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.AnimalResponse]
// @Router /api/v1/animals [get]
func (h *ZooHandler) ListAnimals(c *gin.Context) {
	views := h.service.Animals(c.Request.Context())

	items := make([]dto.AnimalResponse, 0, len(views))
	for _, v := range views {
		items = append(items, dto.FromAnimalView(v))
	}

	c.JSON(http.StatusOK, dto.NewListResponse(items))
}

// CreateAnimal handles POST /api/v1/animals.
//
// @Summary Register an animal
// @Tags animals
// @Accept json
// @Produce json
// @Param request body dto.CreateAnimalRequest true "Animal"
// @Success 201 {object} dto.AnimalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/animals [post]
func (h *ZooHandler) CreateAnimal(c *gin.Context) {
	var req dto.CreateAnimalRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithBindingError(c, err)
		return
	}

	view, err := h.service.RegisterAnimal(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAnimalView(view))
}

// GetAnimal handles GET /api/v1/animals/:id.
//
// @Summary Get an animal
// @Tags animals
// @Produce json
// @Param id path string true "Animal ID"
// @Success 200 {object} dto.AnimalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/animals/{id} [get]
func (h *ZooHandler) GetAnimal(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.Animal(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAnimalView(view))
}

// DeleteAnimal handles DELETE /api/v1/animals/:id. Enclosure rosters keep
// the animal's ID until it is removed from them explicitly.
func (h *ZooHandler) DeleteAnimal(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveAnimal(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecordHealthIssue handles POST /api/v1/animals/:id/health-records.
func (h *ZooHandler) RecordHealthIssue(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.RecordHealthIssueRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithBindingError(c, err)
		return
	}

	record, err := h.service.RecordHealthIssue(c.Request.Context(), id, req.Description)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromHealthRecordView(record))
}

// ResolveHealthIssue handles POST /api/v1/animals/:id/health-records/:recordId/resolve.
func (h *ZooHandler) ResolveHealthIssue(c *gin.Context) {
	animalID, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	recordID, ok := dto.ParseID(c, "recordId")
	if !ok {
		return
	}

	record, err := h.service.ResolveHealthIssue(c.Request.Context(), animalID, recordID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromHealthRecordView(record))
}

// SetTreatment handles PUT /api/v1/animals/:id/treatment.
func (h *ZooHandler) SetTreatment(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetTreatmentRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithBindingError(c, err)
		return
	}

	view, err := h.service.SetTreatment(c.Request.Context(), id, *req.UnderTreatment)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAnimalView(view))
}

// ListEnclosures handles GET /api/v1/enclosures.
func (h *ZooHandler) ListEnclosures(c *gin.Context) {
	views := h.service.Enclosures(c.Request.Context())

	items := make([]dto.EnclosureResponse, 0, len(views))
	for _, v := range views {
		items = append(items, dto.FromEnclosureView(v))
	}

	c.JSON(http.StatusOK, dto.NewListResponse(items))
}

// CreateEnclosure handles POST /api/v1/enclosures.
//
// @Summary Register an enclosure
// @Tags enclosures
// @Accept json
// @Produce json
// @Param request body dto.CreateEnclosureRequest true "Enclosure"
// @Success 201 {object} dto.EnclosureResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/enclosures [post]
func (h *ZooHandler) CreateEnclosure(c *gin.Context) {
	var req dto.CreateEnclosureRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithBindingError(c, err)
		return
	}

	view, err := h.service.RegisterEnclosure(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromEnclosureView(view))
}

// AssignAnimal handles POST /api/v1/enclosures/:id/animals.
//
// A rejected placement (under treatment, no room, wrong species) is a 400 with
// the rule that failed in the message.
//
// @Summary Place an animal in an enclosure
// @Tags enclosures
// @Accept json
// @Produce json
// @Param id path string true "Enclosure ID"
// @Param request body dto.AssignAnimalRequest true "Animal"
// @Success 200 {object} dto.EnclosureResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/enclosures/{id}/animals [post]
func (h *ZooHandler) AssignAnimal(c *gin.Context) {
	enclosureID, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.AssignAnimalRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithBindingError(c, err)
		return
	}

	view, err := h.service.AssignAnimalToEnclosure(c.Request.Context(), uuid.MustParse(req.AnimalID), enclosureID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromEnclosureView(view))
}

// UnassignAnimal handles DELETE /api/v1/enclosures/:id/animals/:animalId.
func (h *ZooHandler) UnassignAnimal(c *gin.Context) {
	enclosureID, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	animalID, ok := dto.ParseID(c, "animalId")
	if !ok {
		return
	}

	view, err := h.service.RemoveAnimalFromEnclosure(c.Request.Context(), animalID, enclosureID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromEnclosureView(view))
}

// ListStaff handles GET /api/v1/staff.
func (h *ZooHandler) ListStaff(c *gin.Context) {
	views := h.service.Staff(c.Request.Context())

	items := make([]dto.StaffResponse, 0, len(views))
	for _, v := range views {
		items = append(items, dto.FromStaffView(v))
	}

	c.JSON(http.StatusOK, dto.NewListResponse(items))
}

// CreateStaff handles POST /api/v1/staff.
func (h *ZooHandler) CreateStaff(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithBindingError(c, err)
		return
	}

	view, err := h.service.RegisterStaff(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromStaffView(view))
}

// AssignEnclosure handles POST /api/v1/staff/:id/enclosures.
func (h *ZooHandler) AssignEnclosure(c *gin.Context) {
	staffID, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.AssignEnclosureRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithBindingError(c, err)
		return
	}

	view, err := h.service.AssignEnclosureToKeeper(c.Request.Context(), staffID, uuid.MustParse(req.EnclosureID))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStaffView(view))
}

// DailyRoutine handles GET /api/v1/routine.
//
// @Summary Run the daily routine
// @Description Every staff member performs their duties; the task lines are returned in order.
// @Tags routine
// @Produce json
// @Success 200 {object} dto.RoutineResponse
// @Router /api/v1/routine [get]
func (h *ZooHandler) DailyRoutine(c *gin.Context) {
	tasks := h.service.DailyRoutine(c.Request.Context())
	if tasks == nil {
		tasks = []string{}
	}

	c.JSON(http.StatusOK, dto.RoutineResponse{Tasks: tasks})
}

// SpeciesReport handles GET /api/v1/reports/species.
func (h *ZooHandler) SpeciesReport(c *gin.Context) {
	groups := h.service.AnimalsBySpecies(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromSpeciesGroups(groups)))
}

// EnclosureReport handles GET /api/v1/reports/enclosures.
func (h *ZooHandler) EnclosureReport(c *gin.Context) {
	report := h.service.EnclosureStatusReport(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromEnclosureStatuses(report)))
}

// HealthReport handles GET /api/v1/reports/health.
func (h *ZooHandler) HealthReport(c *gin.Context) {
	issues := h.service.HealthReport(c.Request.Context())
	if issues == nil {
		issues = []string{}
	}

	c.JSON(http.StatusOK, dto.HealthReportResponse{Issues: issues})
}
