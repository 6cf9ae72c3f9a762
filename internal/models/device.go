package models

// Device is a single inspected monitoring station. Numbering is
// assigned by the inspection session and is monotonic per session;
// saved devices are concatenated across saves, never deduplicated.
type Device struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
	Number int    `json:"number"`
}

// DeviceStatusNA is the sentinel status for devices inspected without
// a recorded status.
const DeviceStatusNA = "N/A"

// DeviceGroup is the derived aggregation of devices by type, used for
// reporting. Never persisted; recomputed from saved devices on demand.
type DeviceGroup struct {
	Type     string              `json:"type"`
	Quantity int                 `json:"quantity"`
	Status   []DeviceStatusCount `json:"status"`
	List     []string            `json:"list"`
}

// DeviceStatusCount is the per-status breakdown within a device group.
type DeviceStatusCount struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Devices []int  `json:"devices"`
}
