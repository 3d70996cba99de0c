package wireframe

import (
	"fmt"
	"strings"
)

// ComponentType tags a Component with exactly one semantic UI role.
type ComponentType int

const (
	Navbar ComponentType = iota
	Hero
	Section
	Card
	Form
	Button
	Text
	Image
	Sidebar
	Footer
	Table
	Calendar
	Chart
	Input
	Heading
	BottomNav
	Frame
)

var typeNames = [...]string{
	Navbar:    "navbar",
	Hero:      "hero",
	Section:   "section",
	Card:      "card",
	Form:      "form",
	Button:    "button",
	Text:      "text",
	Image:     "image",
	Sidebar:   "sidebar",
	Footer:    "footer",
	Table:     "table",
	Calendar:  "calendar",
	Chart:     "chart",
	Input:     "input",
	Heading:   "heading",
	BottomNav: "bottom_nav",
	Frame:     "frame",
}

// AllTypes returns every component type in declaration order.
func AllTypes() []ComponentType {
	types := make([]ComponentType, len(typeNames))
	for i := range typeNames {
		types[i] = ComponentType(i)
	}
	return types
}

// Valid reports whether t is one of the declared component types.
func (t ComponentType) Valid() bool {
	return t >= 0 && int(t) < len(typeNames)
}

func (t ComponentType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ComponentType(%d)", int(t))
	}
	return typeNames[t]
}

// ParseComponentType maps a type name such as "navbar" or "BOTTOM_NAV" to
// its ComponentType. Matching is case-insensitive.
func ParseComponentType(s string) (ComponentType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == name {
			return ComponentType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown component type %q", s)
}

// MarshalText encodes the type as its lowercase name.
func (t ComponentType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid component type %d", int(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText accepts any name understood by ParseComponentType.
func (t *ComponentType) UnmarshalText(text []byte) error {
	parsed, err := ParseComponentType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Position is a top-left corner in canvas pixels.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is an extent in canvas pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SourceCV marks components produced by the sketch analysis pipeline.
const SourceCV = "cv"

// Component is one typed UI element placed on the canvas.
type Component struct {
	ID       string         `json:"id"`
	Type     ComponentType  `json:"type"`
	Position Position       `json:"position"`
	Size     Size           `json:"size"`
	Props    map[string]any `json:"props"`

	// Confidence is nil when no score applies.
	Confidence *float64 `json:"confidence"`

	Source string `json:"source"`
}

// Wireframe is a canvas and the components laid out on it, in detection
// order.
type Wireframe struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	CanvasSize      Size        `json:"canvas_size"`
	BackgroundColor string      `json:"background_color"`
	SourceType      string      `json:"source_type"`
	DeviceType      string      `json:"device_type,omitempty"`
	Components      []Component `json:"components"`
}

// Defaults applied to every wireframe built from a sketch.
const (
	DefaultName            = "Sketch Wireframe"
	DefaultBackgroundColor = "#ffffff"
	SourceTypeSketch       = "sketch"
)

// New returns an empty wireframe on a canvas of the given size.
func New(id, name string, canvas Size) *Wireframe {
	if name == "" {
		name = DefaultName
	}
	return &Wireframe{
		ID:              id,
		Name:            name,
		CanvasSize:      canvas,
		BackgroundColor: DefaultBackgroundColor,
		SourceType:      SourceTypeSketch,
		Components:      []Component{},
	}
}

// Add appends c to the component list.
func (w *Wireframe) Add(c Component) {
	w.Components = append(w.Components, c)
}

// Counts returns how many components of each type the wireframe holds.
func (w *Wireframe) Counts() map[ComponentType]int {
	counts := make(map[ComponentType]int)
	for _, c := range w.Components {
		counts[c.Type]++
	}
	return counts
}
