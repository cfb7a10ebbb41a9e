package entity

// DeviceInfo groups related entities under one logical device.
type DeviceInfo struct {
	Identifiers  string `json:"identifiers"`
	Manufacturer string `json:"manufacturer"`
	Name         string `json:"name"`
	EntryType    string `json:"entry_type,omitempty"`
}

// State is one rendered entity state, as served to API consumers.
type State struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	State          any        `json:"state"`
	Unit           string     `json:"unit,omitempty"`
	DeviceClass    string     `json:"device_class,omitempty"`
	StateClass     string     `json:"state_class,omitempty"`
	EntityCategory string     `json:"entity_category,omitempty"`
	Icon           string     `json:"icon,omitempty"`
	Available      bool       `json:"available"`
	EnabledDefault bool       `json:"enabled_by_default"`
	Attribution    string     `json:"attribution,omitempty"`
	Device         DeviceInfo `json:"device"`
}

// Entity is anything the registry can hold and render.
//
// Attach is called once when the entity is added; the entity subscribes its
// state-write callback to whatever data source it reads from and returns the
// cleanup that undoes the subscription. The registry runs the cleanup on
// removal, exactly once.
type Entity interface {
	UniqueID() string
	State() State
	Attach(write func()) (detach func())
}
