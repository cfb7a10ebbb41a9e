package sensor

import (
	"github.com/tapokpy/yandex-weather-bridge/internal/updater"
)

// Display units and classifications, matching the Home Assistant vocabulary.
const (
	UnitCelsius         = "°C"
	UnitPercent         = "%"
	UnitMetersPerSecond = "m/s"
	UnitPressureHpa     = "hPa"
	UnitPressureMmHg    = "mmHg"

	DeviceClassTemperature = "temperature"
	DeviceClassHumidity    = "humidity"
	DeviceClassPressure    = "pressure"
	DeviceClassTimestamp   = "timestamp"

	StateClassMeasurement = "measurement"

	CategoryDiagnostic = "diagnostic"
)

// Description is the static metadata record for one observable attribute.
type Description struct {
	Key            string
	Name           string
	Unit           string
	DeviceClass    string
	StateClass     string
	EntityCategory string
	Icon           string
	EnabledDefault bool

	// IconResolver, when set, derives the icon from the fact snapshot
	// instead of the static Icon field.
	IconResolver func(fact map[string]any) string
}

// Descriptions enumerates every weather sensor this integration exposes.
var Descriptions = []Description{
	{
		Key:         updater.AttrTemperature,
		Name:        "Temperature",
		Unit:        UnitCelsius,
		DeviceClass: DeviceClassTemperature,
		StateClass:  StateClassMeasurement,
	},
	{
		Key:         updater.AttrFeelsLikeTemperature,
		Name:        "Feels like temperature",
		Unit:        UnitCelsius,
		DeviceClass: DeviceClassTemperature,
		StateClass:  StateClassMeasurement,
	},
	{
		Key:        updater.AttrWindSpeed,
		Name:       "Wind speed",
		Unit:       UnitMetersPerSecond,
		StateClass: StateClassMeasurement,
	},
	{
		Key:        updater.AttrWindBearing,
		Name:       "Wind bearing",
		StateClass: StateClassMeasurement,
	},
	{
		Key:         updater.AttrHumidity,
		Name:        "Humidity",
		Unit:        UnitPercent,
		DeviceClass: DeviceClassHumidity,
		StateClass:  StateClassMeasurement,
	},
	{
		Key:         updater.AttrPressure,
		Name:        "Pressure",
		Unit:        UnitPressureHpa,
		DeviceClass: DeviceClassPressure,
		StateClass:  StateClassMeasurement,
	},
	{
		Key:  updater.AttrCondition,
		Name: "Condition",
	},
	{
		Key:            updater.AttrWeatherTime,
		Name:           "Data update time",
		DeviceClass:    DeviceClassTimestamp,
		StateClass:     StateClassMeasurement,
		EntityCategory: CategoryDiagnostic,
		EnabledDefault: true,
	},
	{
		Key:            updater.AttrYaCondition,
		Name:           "Condition",
		EnabledDefault: true,
		IconResolver: func(fact map[string]any) string {
			icon, _ := fact[updater.AttrYaConditionIcon].(string)
			return icon
		},
	},
	{
		Key:  updater.AttrPressureMmHg,
		Name: "Pressure mmHg",
		Unit: UnitPressureMmHg,
		Icon: "mdi:gauge",
		// No device class: the value is already in display units and must
		// not be converted to system pressure units.
		StateClass:     StateClassMeasurement,
		EnabledDefault: true,
	},
}
