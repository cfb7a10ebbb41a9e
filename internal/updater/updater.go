package updater

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tapokpy/yandex-weather-bridge/internal/yandex"
)

// Attribute keys of the "fact" snapshot. Sensors read exactly one of these each.
const (
	AttrTemperature          = "temperature"
	AttrFeelsLikeTemperature = "feels_like_temperature"
	AttrWindSpeed            = "wind_speed"
	AttrWindBearing          = "wind_bearing"
	AttrHumidity             = "humidity"
	AttrPressure             = "pressure"
	AttrPressureMmHg         = "pressure_mmhg"
	AttrCondition            = "condition"
	AttrWeatherTime          = "weather_time"
	AttrYaCondition          = "yandex_condition"
	AttrYaConditionIcon      = "yandex_condition_icon"
)

// FactKey is the snapshot section holding current conditions.
const FactKey = "fact"

// Client abstracts the upstream weather API.
type Client interface {
	Fetch(ctx context.Context, lat, lon float64) (yandex.Fact, error)
}

// WeatherUpdater polls the weather API on an interval, owns the latest decoded
// snapshot, and notifies registered listeners after every refresh attempt.
type WeatherUpdater struct {
	client   Client
	lat, lon float64
	interval time.Duration

	scheduler *gocron.Scheduler

	mu                sync.RWMutex
	data              map[string]map[string]any
	lastUpdateSuccess bool
	listeners         map[int]func()
	nextListenerID    int
}

// New creates a WeatherUpdater for one location. It does not start polling;
// call Start for that.
func New(client Client, lat, lon float64, interval time.Duration) *WeatherUpdater {
	return &WeatherUpdater{
		client:    client,
		lat:       lat,
		lon:       lon,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.UTC),
		data:      map[string]map[string]any{FactKey: {}},
		listeners: make(map[int]func()),
	}
}

// Start performs an initial refresh and schedules the periodic job.
func (u *WeatherUpdater) Start() error {
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := u.RequestRefresh(ctx); err != nil {
			log.Printf("updater: refresh failed: %v", err)
		}
	}

	refresh()

	minutes := int(u.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	if _, err := u.scheduler.Every(minutes).Minutes().Do(refresh); err != nil {
		return err
	}

	u.scheduler.StartAsync()
	return nil
}

// Stop stops the periodic job. Listeners stay registered.
func (u *WeatherUpdater) Stop() {
	if u.scheduler != nil {
		u.scheduler.Stop()
	}
}

// LastUpdateSuccess reports whether the most recent refresh attempt succeeded.
func (u *WeatherUpdater) LastUpdateSuccess() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.lastUpdateSuccess
}

// WeatherData returns a copy of the latest snapshot. Callers never observe a
// torn update and cannot mutate the updater's state through the result.
func (u *WeatherUpdater) WeatherData() map[string]map[string]any {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make(map[string]map[string]any, len(u.data))
	for section, attrs := range u.data {
		cp := make(map[string]any, len(attrs))
		for k, v := range attrs {
			cp[k] = v
		}
		out[section] = cp
	}
	return out
}

// AddListener registers a no-argument notification callback and returns its
// unsubscribe handle. The handle is safe to call more than once.
func (u *WeatherUpdater) AddListener(listener func()) func() {
	u.mu.Lock()
	id := u.nextListenerID
	u.nextListenerID++
	u.listeners[id] = listener
	u.mu.Unlock()

	return func() {
		u.mu.Lock()
		delete(u.listeners, id)
		u.mu.Unlock()
	}
}

// ListenerCount reports the number of registered listeners.
func (u *WeatherUpdater) ListenerCount() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.listeners)
}

// RequestRefresh fetches fresh data out of band. On success the snapshot is
// replaced; on failure the last good snapshot is kept and only the success
// flag drops. Listeners are notified either way so renders stay current.
func (u *WeatherUpdater) RequestRefresh(ctx context.Context) error {
	fact, err := u.client.Fetch(ctx, u.lat, u.lon)

	u.mu.Lock()
	if err != nil {
		u.lastUpdateSuccess = false
	} else {
		u.data[FactKey] = factAttributes(fact)
		u.lastUpdateSuccess = true
	}
	notify := make([]func(), 0, len(u.listeners))
	for _, l := range u.listeners {
		notify = append(notify, l)
	}
	u.mu.Unlock()

	for _, l := range notify {
		l()
	}

	return err
}

// factAttributes flattens the API payload into the snapshot attribute map.
func factAttributes(f yandex.Fact) map[string]any {
	attrs := map[string]any{
		AttrTemperature:          f.Temp,
		AttrFeelsLikeTemperature: f.FeelsLike,
		AttrWindSpeed:            f.WindSpeed,
		AttrHumidity:             f.Humidity,
		AttrPressure:             f.PressurePa,
		AttrPressureMmHg:         f.PressureMm,
		AttrCondition:            string(yandex.MapCondition(f.Condition)),
		AttrYaCondition:          f.Condition,
	}

	if bearing, ok := yandex.WindBearing(f.WindDir); ok {
		attrs[AttrWindBearing] = bearing
	}

	if icon := yandex.ConditionIcon(f.Condition); icon != "" {
		attrs[AttrYaConditionIcon] = icon
	}

	if f.ObsTime > 0 {
		attrs[AttrWeatherTime] = time.Unix(f.ObsTime, 0).UTC().Format(time.RFC3339)
	}

	return attrs
}
