package dashboard

import "device-tracker/internal/domain/location"

// mapSurface turns Surface calls into map messages.
type mapSurface struct {
	emit func(MapCommand)
}

func (m *mapSurface) SetView(center location.Point, zoom int) {
	m.emit(MapCommand{Op: "set_view", Position: &center, Zoom: zoom})
}

func (m *mapSurface) AddMarker(id string, at location.Point, label string) {
	m.emit(MapCommand{Op: "add_marker", ID: id, Position: &at, Label: label})
}

func (m *mapSurface) MoveMarker(id string, to location.Point) {
	m.emit(MapCommand{Op: "move_marker", ID: id, Position: &to})
}

func (m *mapSurface) BindPopup(id string, content string) {
	m.emit(MapCommand{Op: "bind_popup", ID: id, Content: content})
}

func (m *mapSurface) AddPolyline(id string, points []location.Point, color string) {
	m.emit(MapCommand{Op: "add_polyline", ID: id, Points: points, Color: color})
}

func (m *mapSurface) ExtendPolyline(id string, point location.Point) {
	m.emit(MapCommand{Op: "extend_polyline", ID: id, Position: &point})
}

func (m *mapSurface) RemoveOverlay(id string) {
	m.emit(MapCommand{Op: "remove_overlay", ID: id})
}
