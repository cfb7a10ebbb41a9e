package yandex

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown       Condition = "unknown"
	ConditionSunny         Condition = "sunny"
	ConditionPartlyCloudy  Condition = "partlycloudy"
	ConditionCloudy        Condition = "cloudy"
	ConditionRainy         Condition = "rainy"
	ConditionPouring       Condition = "pouring"
	ConditionSnowy         Condition = "snowy"
	ConditionSnowyRainy    Condition = "snowy-rainy"
	ConditionHail          Condition = "hail"
	ConditionLightning     Condition = "lightning"
	ConditionLightningRain Condition = "lightning-rainy"
)

var conditionMap = map[string]Condition{
	"clear":                  ConditionSunny,
	"partly-cloudy":          ConditionPartlyCloudy,
	"cloudy":                 ConditionCloudy,
	"overcast":               ConditionCloudy,
	"drizzle":                ConditionRainy,
	"light-rain":             ConditionRainy,
	"rain":                   ConditionRainy,
	"moderate-rain":          ConditionRainy,
	"heavy-rain":             ConditionPouring,
	"continuous-heavy-rain":  ConditionPouring,
	"showers":                ConditionPouring,
	"wet-snow":               ConditionSnowyRainy,
	"light-snow":             ConditionSnowy,
	"snow":                   ConditionSnowy,
	"snow-showers":           ConditionSnowy,
	"hail":                   ConditionHail,
	"thunderstorm":           ConditionLightning,
	"thunderstorm-with-rain": ConditionLightningRain,
	"thunderstorm-with-hail": ConditionLightningRain,
}

var conditionIcons = map[string]string{
	"clear":                  "mdi:weather-sunny",
	"partly-cloudy":          "mdi:weather-partly-cloudy",
	"cloudy":                 "mdi:weather-cloudy",
	"overcast":               "mdi:weather-cloudy",
	"drizzle":                "mdi:weather-partly-rainy",
	"light-rain":             "mdi:weather-rainy",
	"rain":                   "mdi:weather-rainy",
	"moderate-rain":          "mdi:weather-rainy",
	"heavy-rain":             "mdi:weather-pouring",
	"continuous-heavy-rain":  "mdi:weather-pouring",
	"showers":                "mdi:weather-pouring",
	"wet-snow":               "mdi:weather-snowy-rainy",
	"light-snow":             "mdi:weather-snowy",
	"snow":                   "mdi:weather-snowy",
	"snow-showers":           "mdi:weather-snowy-heavy",
	"hail":                   "mdi:weather-hail",
	"thunderstorm":           "mdi:weather-lightning",
	"thunderstorm-with-rain": "mdi:weather-lightning-rainy",
	"thunderstorm-with-hail": "mdi:weather-lightning-rainy",
}

// Wind direction on the Yandex compass rose, in degrees. "c" means calm.
var windBearings = map[string]float64{
	"n":  0,
	"ne": 45,
	"e":  90,
	"se": 135,
	"s":  180,
	"sw": 225,
	"w":  270,
	"nw": 315,
	"c":  0,
}

// MapCondition normalizes a Yandex condition string.
func MapCondition(condition string) Condition {
	if c, ok := conditionMap[condition]; ok {
		return c
	}
	return ConditionUnknown
}

// ConditionIcon returns the mdi icon for a Yandex condition string,
// or an empty string when the condition is unknown.
func ConditionIcon(condition string) string {
	return conditionIcons[condition]
}

// WindBearing converts a Yandex wind_dir compass value to degrees.
func WindBearing(dir string) (float64, bool) {
	deg, ok := windBearings[dir]
	return deg, ok
}
