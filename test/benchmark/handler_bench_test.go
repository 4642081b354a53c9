package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/zoo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/zoo-service/internal/app"
	"github.com/jsamuelsen/zoo-service/internal/domain"
	"github.com/jsamuelsen/zoo-service/internal/ports"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// populatedZoo returns a service with the given number of enclosures, each
// holding five animals and looked after by its own keeper.
func populatedZoo(b *testing.B, enclosures int) *app.ZooService {
	b.Helper()

	ctx := context.Background()
	svc := app.NewZooService(app.ZooServiceConfig{
		Name:   "Bench Zoo",
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})),
	})

	for i := range enclosures {
		e, err := svc.RegisterEnclosure(ctx, app.EnclosureInput{Name: fmt.Sprintf("Enclosure %d", i), Capacity: 5})
		if err != nil {
			b.Fatal(err)
		}

		for j := range 5 {
			a, err := svc.RegisterAnimal(ctx, app.AnimalInput{
				Name:    fmt.Sprintf("Animal %d-%d", i, j),
				Species: fmt.Sprintf("Species %d", j),
				Class:   domain.ClassMammal,
			})
			if err != nil {
				b.Fatal(err)
			}

			if _, err := svc.AssignAnimalToEnclosure(ctx, a.ID, e.ID); err != nil {
				b.Fatal(err)
			}
		}

		if _, err := svc.RegisterStaff(ctx, app.StaffInput{
			Name:       fmt.Sprintf("Keeper %d", i),
			Role:       domain.RoleZookeeper,
			Enclosures: []uuid.UUID{e.ID},
		}); err != nil {
			b.Fatal(err)
		}
	}

	return svc
}

func zooRouter(svc *app.ZooService) *gin.Engine {
	router := gin.New()
	handlers.NewZooHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	return router
}

func BenchmarkDailyRoutine(b *testing.B) {
	for _, size := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("enclosures=%d", size), func(b *testing.B) {
			router := zooRouter(populatedZoo(b, size))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/routine", http.NoBody)

			b.ReportAllocs()

			for b.Loop() {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
			}
		})
	}
}

func BenchmarkListAnimals(b *testing.B) {
	router := zooRouter(populatedZoo(b, 20))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/animals", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

func BenchmarkSpeciesReport(b *testing.B) {
	router := zooRouter(populatedZoo(b, 20))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/species", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

// BenchmarkAssignRejected measures the full-enclosure path, which is the
// common case once a zoo is settled.
func BenchmarkAssignRejected(b *testing.B) {
	svc := populatedZoo(b, 1)
	router := zooRouter(svc)

	ctx := context.Background()
	extra, err := svc.RegisterAnimal(ctx, app.AnimalInput{Name: "Extra", Species: "Lion", Class: domain.ClassMammal})
	if err != nil {
		b.Fatal(err)
	}

	enclosureID := svc.Enclosures(ctx)[0].ID
	body, err := json.Marshal(map[string]string{"animalId": extra.ID.String()})
	if err != nil {
		b.Fatal(err)
	}

	path := "/api/v1/enclosures/" + enclosureID.String() + "/animals"

	b.ReportAllocs()

	for b.Loop() {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			b.Fatalf("expected 400, got %d", w.Code)
		}
	}
}

func BenchmarkReadinessHandler(b *testing.B) {
	registry := ports.NewHealthRegistry()
	if err := registry.Register(populatedZoo(b, 1)); err != nil {
		b.Fatal(err)
	}

	handler := handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.0.0", "abc123", "2026-01-01T00:00:00Z"), nil)
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		handler.Readiness(c)
	}
}
