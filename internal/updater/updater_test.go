package updater

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tapokpy/yandex-weather-bridge/internal/yandex"
)

// fakeClient returns a canned fact or error.
type fakeClient struct {
	fact  yandex.Fact
	err   error
	calls int
}

func (c *fakeClient) Fetch(context.Context, float64, float64) (yandex.Fact, error) {
	c.calls++
	return c.fact, c.err
}

func testFact() yandex.Fact {
	return yandex.Fact{
		Temp:       -3,
		FeelsLike:  -8,
		Icon:       "ovc",
		Condition:  "overcast",
		WindSpeed:  4.2,
		WindDir:    "nw",
		PressureMm: 745,
		PressurePa: 993,
		Humidity:   87,
		ObsTime:    1700000000,
	}
}

func TestRefreshSuccess(t *testing.T) {
	client := &fakeClient{fact: testFact()}
	u := New(client, 55.75, 37.62, time.Hour)

	notified := 0
	unsubscribe := u.AddListener(func() { notified++ })
	defer unsubscribe()

	if u.LastUpdateSuccess() {
		t.Fatal("expected initial success flag to be false")
	}

	if err := u.RequestRefresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !u.LastUpdateSuccess() {
		t.Fatal("expected success flag after refresh")
	}
	if notified != 1 {
		t.Fatalf("expected 1 notification, got %d", notified)
	}

	fact := u.WeatherData()[FactKey]
	if fact[AttrTemperature] != float64(-3) {
		t.Fatalf("unexpected temperature: %v", fact[AttrTemperature])
	}
	if fact[AttrFeelsLikeTemperature] != float64(-8) {
		t.Fatalf("unexpected feels-like: %v", fact[AttrFeelsLikeTemperature])
	}
	if fact[AttrWindBearing] != float64(315) {
		t.Fatalf("unexpected wind bearing: %v", fact[AttrWindBearing])
	}
	if fact[AttrPressure] != float64(993) || fact[AttrPressureMmHg] != float64(745) {
		t.Fatalf("unexpected pressures: %v / %v", fact[AttrPressure], fact[AttrPressureMmHg])
	}
	if fact[AttrCondition] != "cloudy" {
		t.Fatalf("unexpected normalized condition: %v", fact[AttrCondition])
	}
	if fact[AttrYaCondition] != "overcast" {
		t.Fatalf("unexpected raw condition: %v", fact[AttrYaCondition])
	}
	if fact[AttrYaConditionIcon] != "mdi:weather-cloudy" {
		t.Fatalf("unexpected condition icon: %v", fact[AttrYaConditionIcon])
	}
	if fact[AttrWeatherTime] != time.Unix(1700000000, 0).UTC().Format(time.RFC3339) {
		t.Fatalf("unexpected weather time: %v", fact[AttrWeatherTime])
	}
}

// TestRefreshFailureKeepsSnapshot verifies a failed refresh drops the success
// flag but preserves the last good snapshot.
func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	client := &fakeClient{fact: testFact()}
	u := New(client, 55.75, 37.62, time.Hour)

	notified := 0
	unsubscribe := u.AddListener(func() { notified++ })
	defer unsubscribe()

	if err := u.RequestRefresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client.err = errors.New("upstream down")
	if err := u.RequestRefresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	if u.LastUpdateSuccess() {
		t.Fatal("expected success flag to drop")
	}
	if notified != 2 {
		t.Fatalf("expected notifications on both refreshes, got %d", notified)
	}

	// Snapshot survives the failure.
	fact := u.WeatherData()[FactKey]
	if fact[AttrTemperature] != float64(-3) {
		t.Fatalf("expected last good snapshot, got %v", fact[AttrTemperature])
	}
}

func TestUnsubscribeRemovesExactlyOneListener(t *testing.T) {
	client := &fakeClient{fact: testFact()}
	u := New(client, 55.75, 37.62, time.Hour)

	var first, second int
	unsubFirst := u.AddListener(func() { first++ })
	unsubSecond := u.AddListener(func() { second++ })

	if got := u.ListenerCount(); got != 2 {
		t.Fatalf("expected 2 listeners, got %d", got)
	}

	unsubFirst()
	unsubFirst() // safe to call again

	if got := u.ListenerCount(); got != 1 {
		t.Fatalf("expected 1 listener after unsubscribe, got %d", got)
	}

	if err := u.RequestRefresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != 0 {
		t.Fatalf("removed listener was notified %d times", first)
	}
	if second != 1 {
		t.Fatalf("expected remaining listener to be notified once, got %d", second)
	}

	unsubSecond()
	if got := u.ListenerCount(); got != 0 {
		t.Fatalf("expected 0 listeners, got %d", got)
	}
}

// TestWeatherDataIsACopy verifies callers cannot mutate the updater's state
// through the returned snapshot.
func TestWeatherDataIsACopy(t *testing.T) {
	client := &fakeClient{fact: testFact()}
	u := New(client, 55.75, 37.62, time.Hour)

	if err := u.RequestRefresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data := u.WeatherData()
	data[FactKey][AttrTemperature] = 100.0

	if got := u.WeatherData()[FactKey][AttrTemperature]; got != float64(-3) {
		t.Fatalf("snapshot mutated through copy: %v", got)
	}
}

func TestUnknownWindDirectionOmitsBearing(t *testing.T) {
	fact := testFact()
	fact.WindDir = "updraft"
	client := &fakeClient{fact: fact}
	u := New(client, 55.75, 37.62, time.Hour)

	if err := u.RequestRefresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := u.WeatherData()[FactKey][AttrWindBearing]; ok {
		t.Fatal("expected no wind bearing for unknown direction")
	}
}
