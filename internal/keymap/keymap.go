// Package keymap maps resolved key combos to application events.
package keymap

// Event is an abstract application event produced by a key press.
type Event int

const (
	Close Event = iota
	NavigateUp
	NavigateDown
	SelectNext
	SelectPrevious
	ToggleShowHidden
	OpenImage
	OpenText
	OpenExecutable
	OpenSystem
	PlayMedia
	ReadPdf
	StartFilter
	YankPath
	DebugEvent
)

// String names events for debug messages and logging.
func (e Event) String() string {
	switch e {
	case Close:
		return "Close"
	case NavigateUp:
		return "NavigateUp"
	case NavigateDown:
		return "NavigateDown"
	case SelectNext:
		return "SelectNext"
	case SelectPrevious:
		return "SelectPrevious"
	case ToggleShowHidden:
		return "ToggleShowHidden"
	case OpenImage:
		return "OpenImage"
	case OpenText:
		return "OpenText"
	case OpenExecutable:
		return "OpenExecutable"
	case OpenSystem:
		return "OpenSystem"
	case PlayMedia:
		return "PlayMedia"
	case ReadPdf:
		return "ReadPdf"
	case StartFilter:
		return "StartFilter"
	case YankPath:
		return "YankPath"
	case DebugEvent:
		return "DebugEvent"
	}
	return "Unknown"
}

// Table maps key combos (bubbletea key strings such as "ctrl+c", "up" or
// "a", which carry the modifier set) to events. Lookup is exact match; the
// last Bind for a combo wins.
type Table struct {
	bindings map[string]Event
}

// New returns an empty table.
func New() *Table {
	return &Table{bindings: make(map[string]Event)}
}

// Bind associates a combo with an event, replacing any previous binding.
func (t *Table) Bind(combo string, ev Event) {
	t.bindings[combo] = ev
}

// Resolve looks up a combo. Unbound combos return false, which is not an
// error; the key press is simply ignored.
func (t *Table) Resolve(combo string) (Event, bool) {
	ev, ok := t.bindings[combo]
	return ev, ok
}

// Defaults returns the stock bindings: quit on esc/ctrl+c, four-way
// navigation on both the arrow keys and wasd, plus the toggle, open, filter,
// yank and debug keys.
func Defaults() *Table {
	t := New()

	t.Bind("esc", Close)
	t.Bind("ctrl+c", Close)

	t.Bind("left", NavigateUp)
	t.Bind("a", NavigateUp)
	t.Bind("right", NavigateDown)
	t.Bind("d", NavigateDown)
	t.Bind("up", SelectPrevious)
	t.Bind("w", SelectPrevious)
	t.Bind("down", SelectNext)
	t.Bind("s", SelectNext)

	t.Bind("h", ToggleShowHidden)
	t.Bind("f", OpenImage)
	t.Bind("p", PlayMedia)
	t.Bind("/", StartFilter)
	t.Bind("y", YankPath)
	t.Bind("q", DebugEvent)

	return t
}
