package window

import "github.com/veandco/go-sdl2/sdl"

// EventType is a window event the viewer reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventToggleWireframe
	EventToggleBounds
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventResize:
		return "resize"
	case EventToggleWireframe:
		return "toggle-wireframe"
	case EventToggleBounds:
		return "toggle-bounds"
	default:
		return "none"
	}
}

// Event is a translated SDL event. Width and Height are set for EventResize.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// PollEvents drains the SDL queue and appends the events the viewer cares
// about to dst.
func (w *Window) PollEvents(dst []Event) []Event {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if e := translate(ev); e.Type != EventNone {
			dst = append(dst, e)
		}
	}
	return dst
}

// translate maps an SDL event. Q toggles wireframe, B toggles leaf bounds
// and Escape quits. Key repeats are ignored.
func translate(ev sdl.Event) Event {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{Type: EventResize, Width: int(e.Data1), Height: int(e.Data2)}
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return Event{}
		}
		switch e.Keysym.Scancode {
		case sdl.SCANCODE_ESCAPE:
			return Event{Type: EventQuit}
		case sdl.SCANCODE_Q:
			return Event{Type: EventToggleWireframe}
		case sdl.SCANCODE_B:
			return Event{Type: EventToggleBounds}
		}
	}
	return Event{}
}
