package tracking

import "device-tracker/internal/domain/location"

// Surface is the map rendering collaborator. Overlay ids are chosen by the
// caller and stay valid until RemoveOverlay.
type Surface interface {
	SetView(center location.Point, zoom int)
	AddMarker(id string, at location.Point, label string)
	MoveMarker(id string, to location.Point)
	BindPopup(id string, content string)
	AddPolyline(id string, points []location.Point, color string)
	ExtendPolyline(id string, point location.Point)
	RemoveOverlay(id string)
}

// Palette holds the trail colours; one is picked when a trail is created.
var Palette = []string{
	"#FF6633", "#FFB399", "#FF33FF", "#FFFF99", "#00B3E6",
	"#E6B333", "#3366E6", "#999966", "#99FF99", "#B34D4D",
}

func markerOverlay(deviceID string) string { return "marker:" + deviceID }
func trailOverlay(deviceID string) string  { return "trail:" + deviceID }
