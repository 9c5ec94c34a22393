package ingestion

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// LocationMessage is one position report as sent by a device.
type LocationMessage struct {
	AccessCode string     `json:"access_code"`
	Latitude   float64    `json:"lat"`
	Longitude  float64    `json:"lng"`
	Accuracy   float64    `json:"accuracy"`
	ReportedAt *time.Time `json:"timestamp,omitempty"`
	DeviceName *string    `json:"device_name,omitempty"`
}

// ParseLocationMessage decodes a JSON payload.
func ParseLocationMessage(payload []byte) (*LocationMessage, error) {
	var msg LocationMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}
	msg.AccessCode = strings.ToUpper(strings.TrimSpace(msg.AccessCode))
	return &msg, nil
}

// accessCodeFromTopic extracts the code segment of a devices/<code>/location topic.
func accessCodeFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "devices" || parts[2] != "location" || parts[1] == "+" {
		return ""
	}
	return strings.ToUpper(parts[1])
}
