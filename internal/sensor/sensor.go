package sensor

import (
	"context"
	"fmt"
	"strings"

	"github.com/tapokpy/yandex-weather-bridge/internal/entity"
	"github.com/tapokpy/yandex-weather-bridge/internal/updater"
)

const (
	Domain       = "yandex_weather"
	Manufacturer = "Yandex"
	DefaultName  = "Yandex Weather"
	Attribution  = "Data provided by Yandex Weather"
)

// Updater is the coordinator contract the sensors consume.
type Updater interface {
	LastUpdateSuccess() bool
	AddListener(func()) (unsubscribe func())
	RequestRefresh(ctx context.Context) error
	WeatherData() map[string]map[string]any
}

// WeatherSensor is a read-only view over one attribute of the shared weather
// snapshot. It owns no data and performs no fetching; everything is delegated
// to the updater.
type WeatherSensor struct {
	description Description
	updater     Updater

	name     string
	uniqueID string
	device   entity.DeviceInfo
}

// New builds a sensor from a display-name prefix, a unique id, a descriptor,
// and the shared updater. Non-blocking; allocates metadata only.
func New(name, uniqueID string, description Description, u Updater) *WeatherSensor {
	// Group all sensors of one config entry under a single service device,
	// identified by the leading segments of the unique id.
	parts := strings.SplitN(uniqueID, "-", 3)
	ident := parts[0]
	if len(parts) > 1 {
		ident = parts[0] + "-" + parts[1]
	}

	return &WeatherSensor{
		description: description,
		updater:     u,
		name:        fmt.Sprintf("%s %s", name, description.Name),
		uniqueID:    uniqueID,
		device: entity.DeviceInfo{
			Identifiers:  fmt.Sprintf("%s:%s", Domain, ident),
			Manufacturer: Manufacturer,
			Name:         DefaultName,
			EntryType:    "service",
		},
	}
}

func (s *WeatherSensor) UniqueID() string { return s.uniqueID }

func (s *WeatherSensor) Name() string { return s.name }

// Available mirrors the updater's success flag; the sensor keeps no health
// state of its own.
func (s *WeatherSensor) Available() bool {
	return s.updater.LastUpdateSuccess()
}

// NativeValue looks up this sensor's key in the fact snapshot. A missing key
// is reported as absent, never as an error.
func (s *WeatherSensor) NativeValue() (any, bool) {
	v, ok := s.updater.WeatherData()[updater.FactKey][s.description.Key]
	return v, ok
}

// Icon runs the descriptor's resolver over the fact snapshot when one is set,
// falling back to the static icon.
func (s *WeatherSensor) Icon() string {
	if s.description.IconResolver != nil {
		if icon := s.description.IconResolver(s.updater.WeatherData()[updater.FactKey]); icon != "" {
			return icon
		}
	}
	return s.description.Icon
}

// Attach subscribes the state-write callback to the updater and returns the
// unsubscribe handle. Exactly one listener per attach.
func (s *WeatherSensor) Attach(write func()) (detach func()) {
	return s.updater.AddListener(write)
}

// Update requests an out-of-band refresh from the updater.
func (s *WeatherSensor) Update(ctx context.Context) error {
	return s.updater.RequestRefresh(ctx)
}

// State renders the sensor for API consumers. An absent value renders as nil.
func (s *WeatherSensor) State() entity.State {
	value, _ := s.NativeValue()

	return entity.State{
		ID:             s.uniqueID,
		Name:           s.name,
		State:          value,
		Unit:           s.description.Unit,
		DeviceClass:    s.description.DeviceClass,
		StateClass:     s.description.StateClass,
		EntityCategory: s.description.EntityCategory,
		Icon:           s.Icon(),
		Available:      s.Available(),
		EnabledDefault: s.description.EnabledDefault,
		Attribution:    Attribution,
		Device:         s.device,
	}
}

// Setup creates one sensor per descriptor and registers them all, mirroring
// platform setup: sensors are created once and live until registry teardown.
func Setup(entryName, entryID string, u Updater, reg *entity.Registry) ([]*WeatherSensor, error) {
	sensors := make([]*WeatherSensor, 0, len(Descriptions))
	entities := make([]entity.Entity, 0, len(Descriptions))

	for _, description := range Descriptions {
		s := New(entryName, fmt.Sprintf("%s-%s", entryID, description.Key), description, u)
		sensors = append(sensors, s)
		entities = append(entities, s)
	}

	if err := reg.Add(entities...); err != nil {
		return nil, err
	}
	return sensors, nil
}
