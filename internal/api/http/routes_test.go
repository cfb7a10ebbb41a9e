package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tapokpy/yandex-weather-bridge/internal/entity"
	"github.com/tapokpy/yandex-weather-bridge/internal/sensor"
	"github.com/tapokpy/yandex-weather-bridge/internal/updater"
	"github.com/tapokpy/yandex-weather-bridge/internal/yandex"
)

type fakeClient struct {
	fact yandex.Fact
	err  error
}

func (c *fakeClient) Fetch(context.Context, float64, float64) (yandex.Fact, error) {
	return c.fact, c.err
}

func newTestApp(t *testing.T, client *fakeClient) (*fiber.App, *updater.WeatherUpdater) {
	t.Helper()

	app := fiber.New()

	u := updater.New(client, 55.75, 37.62, time.Hour)
	if err := u.RequestRefresh(context.Background()); err != nil && client.err == nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}

	registry := entity.NewRegistry()
	t.Cleanup(registry.Close)

	if _, err := sensor.Setup("Home", "entry42", u, registry); err != nil {
		t.Fatalf("unexpected setup error: %v", err)
	}

	RegisterRoutes(app, registry, u)
	return app, u
}

func TestListEntities(t *testing.T) {
	client := &fakeClient{fact: yandex.Fact{Temp: 5, Condition: "clear", WindDir: "n", ObsTime: 1700000000}}
	app, _ := newTestApp(t, client)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entities", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Entities []entity.State `json:"entities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Entities) != len(sensor.Descriptions) {
		t.Fatalf("expected %d entities, got %d", len(sensor.Descriptions), len(body.Entities))
	}
	for _, e := range body.Entities {
		if !e.Available {
			t.Fatalf("expected entity %s to be available", e.ID)
		}
	}
}

func TestGetEntity(t *testing.T) {
	client := &fakeClient{fact: yandex.Fact{Temp: 5, Condition: "clear"}}
	app, _ := newTestApp(t, client)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entities/entry42-temperature", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var state entity.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if state.ID != "entry42-temperature" {
		t.Fatalf("unexpected entity id %q", state.ID)
	}
	if state.State != 5.0 {
		t.Fatalf("unexpected state %v", state.State)
	}
}

func TestGetEntityUnknownID(t *testing.T) {
	client := &fakeClient{fact: yandex.Fact{}}
	app, _ := newTestApp(t, client)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entities/nope", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	client := &fakeClient{fact: yandex.Fact{Temp: 5}}
	app, _ := newTestApp(t, client)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, resp.StatusCode)
	}
}

func TestRefreshEndpointUpstreamFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("upstream down")}
	app, u := newTestApp(t, client)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
	if u.LastUpdateSuccess() {
		t.Fatal("expected success flag to be false after failed refresh")
	}
}
