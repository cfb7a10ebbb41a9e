package yandex

// Fact is the "fact" (current conditions) block of the informers response.
type Fact struct {
	Temp       float64 `json:"temp"`
	FeelsLike  float64 `json:"feels_like"`
	Icon       string  `json:"icon"`
	Condition  string  `json:"condition"`
	WindSpeed  float64 `json:"wind_speed"`
	WindGust   float64 `json:"wind_gust"`
	WindDir    string  `json:"wind_dir"`
	PressureMm float64 `json:"pressure_mm"`
	PressurePa float64 `json:"pressure_pa"`
	Humidity   float64 `json:"humidity"`
	Daytime    string  `json:"daytime"`
	Season     string  `json:"season"`
	ObsTime    int64   `json:"obs_time"`
}
