package dashboard

import (
	"device-tracker/internal/domain/device"
	"device-tracker/internal/feed"
	"device-tracker/internal/store"
)

const emptyDeviceListMessage = "No devices found. Add your first device."

// deviceList mirrors the live device query in arrival order.
type deviceList struct {
	order []string
	items map[string]DeviceItem
}

func newDeviceList() *deviceList {
	return &deviceList{items: make(map[string]DeviceItem)}
}

func (l *deviceList) apply(ev store.Event[device.Device]) {
	switch ev.Op {
	case feed.OpRemoved:
		if _, ok := l.items[ev.Key]; !ok {
			return
		}
		delete(l.items, ev.Key)
		for i, id := range l.order {
			if id == ev.Key {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	default:
		if ev.Doc == nil {
			return
		}
		if _, ok := l.items[ev.Key]; !ok {
			l.order = append(l.order, ev.Key)
		}
		l.items[ev.Key] = DeviceItem{ID: ev.Key, Name: ev.Doc.Name}
	}
}

func (l *deviceList) render() DeviceList {
	out := DeviceList{Devices: make([]DeviceItem, 0, len(l.order))}
	for _, id := range l.order {
		out.Devices = append(out.Devices, l.items[id])
	}
	if len(out.Devices) == 0 {
		out.EmptyMessage = emptyDeviceListMessage
	}
	return out
}
