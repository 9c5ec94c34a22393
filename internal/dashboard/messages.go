package dashboard

import "device-tracker/internal/domain/location"

// Outbound message types.
const (
	TypeSignedIn       = "signed_in"
	TypeRedirect       = "redirect"
	TypeMap            = "map"
	TypeDevices        = "devices"
	TypeDeviceAdded    = "device_added"
	TypeConfirmRequest = "confirm_request"
	TypeAlert          = "alert"
	TypeAlertDismissed = "alert_dismissed"
)

// Inbound command types.
const (
	CmdAddDevice    = "add_device"
	CmdDeleteDevice = "delete_device"
	CmdViewDevice   = "view_device"
	CmdConfirm      = "confirm"
	CmdLogout       = "logout"
)

type AlertLevel string

const (
	AlertSuccess AlertLevel = "success"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

// Message is the envelope of everything the session sends to the browser.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Command is a browser action. Only the fields of its Type are set.
type Command struct {
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	DeviceID string `json:"device_id,omitempty"`
	Token    string `json:"token,omitempty"`
	Accepted bool   `json:"accepted,omitempty"`
}

type SignedIn struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type Redirect struct {
	Location string `json:"location"`
	Reason   string `json:"reason,omitempty"`
}

// MapCommand is one Surface call serialised for the browser map.
type MapCommand struct {
	Op       string           `json:"op"`
	ID       string           `json:"id,omitempty"`
	Position *location.Point  `json:"position,omitempty"`
	Zoom     int              `json:"zoom,omitempty"`
	Points   []location.Point `json:"points,omitempty"`
	Label    string           `json:"label,omitempty"`
	Content  string           `json:"content,omitempty"`
	Color    string           `json:"color,omitempty"`
}

type DeviceItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DeviceList struct {
	Devices      []DeviceItem `json:"devices"`
	EmptyMessage string       `json:"empty_message,omitempty"`
}

type DeviceAdded struct {
	DeviceID   string `json:"device_id"`
	AccessCode string `json:"access_code"`
}

type ConfirmRequest struct {
	Token  string `json:"token"`
	Prompt string `json:"prompt"`
}

type Alert struct {
	ID      int        `json:"id"`
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

type AlertDismissed struct {
	ID int `json:"id"`
}
