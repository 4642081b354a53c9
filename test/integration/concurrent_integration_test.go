//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/zoo-service/internal/app"
	"github.com/jsamuelsen/zoo-service/internal/domain"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)

	return resp
}

// TestConcurrent_AssignmentsNeverExceedCapacity races many placements into
// one enclosure over HTTP. Exactly capacity of them may succeed.
func TestConcurrent_AssignmentsNeverExceedCapacity(t *testing.T) {
	s, err := newStack("Concurrent Zoo")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	const (
		capacity   = 5
		candidates = 40
	)

	enclosure, err := s.service.RegisterEnclosure(ctx, app.EnclosureInput{Name: "Savanna", Capacity: capacity})
	require.NoError(t, err)

	ids := make([]string, 0, candidates)
	for i := range candidates {
		a, err := s.service.RegisterAnimal(ctx, app.AnimalInput{
			Name:    fmt.Sprintf("Lion %d", i),
			Species: "Lion",
			Class:   domain.ClassMammal,
		})
		require.NoError(t, err)

		ids = append(ids, a.ID.String())
	}

	url := s.server.URL + "/api/v1/enclosures/" + enclosure.ID.String() + "/animals"

	var (
		wg       sync.WaitGroup
		accepted atomic.Int32
		rejected atomic.Int32
	)

	for _, id := range ids {
		wg.Add(1)

		go func() {
			defer wg.Done()

			resp := postJSON(t, url, map[string]string{"animalId": id})
			_ = resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusOK:
				accepted.Add(1)
			case http.StatusBadRequest:
				rejected.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(capacity), accepted.Load())
	assert.Equal(t, int32(candidates-capacity), rejected.Load())

	enclosures := s.service.Enclosures(ctx)
	require.Len(t, enclosures, 1)
	assert.Len(t, enclosures[0].Animals, capacity)
}

// TestConcurrent_MixedReadsAndWrites keeps readers and writers busy at the
// same time; the race detector does the asserting.
func TestConcurrent_MixedReadsAndWrites(t *testing.T) {
	s, err := newStack("Busy Zoo")
	require.NoError(t, err)
	defer s.Close()

	const workers = 20

	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(2)

		go func() {
			defer wg.Done()

			resp := postJSON(t, s.server.URL+"/api/v1/animals", map[string]string{
				"name":    fmt.Sprintf("Parrot %d", i),
				"species": "Parrot",
				"class":   "bird",
			})
			_ = resp.Body.Close()

			assert.Equal(t, http.StatusCreated, resp.StatusCode)
		}()

		go func() {
			defer wg.Done()

			for _, path := range []string{"/api/v1/animals", "/api/v1/routine", "/api/v1/reports/species", "/-/metrics"} {
				resp, err := http.Get(s.server.URL + path)
				if !assert.NoError(t, err) {
					return
				}

				_ = resp.Body.Close()
				assert.Equal(t, http.StatusOK, resp.StatusCode, path)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, workers, s.service.Stats().Animals)
}
