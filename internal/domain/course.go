package domain

import "time"

// LaunchMode controls how a tool opens.
type LaunchMode string

const (
	LaunchEmbed  LaunchMode = "embed"
	LaunchNewTab LaunchMode = "new-tab"
)

// ValidLaunchModes is the canonical set of accepted launch modes.
var ValidLaunchModes = map[LaunchMode]bool{LaunchEmbed: true, LaunchNewTab: true}

// ToolDescriptor points a lesson view at an external interactive tool.
type ToolDescriptor struct {
	Label  string
	Href   string
	Launch LaunchMode
	Height string
}

// Tool descriptor defaults.
const (
	DefaultToolLabel  = "Open Tool"
	DefaultToolHeight = "70vh"
)

// WithDefaults fills unset fields with the launcher defaults.
func (t ToolDescriptor) WithDefaults() ToolDescriptor {
	if t.Label == "" {
		t.Label = DefaultToolLabel
	}
	if t.Launch == "" {
		t.Launch = LaunchEmbed
	}
	if t.Height == "" {
		t.Height = DefaultToolHeight
	}
	return t
}

// CourseUnit is one folder of the course portal.
type CourseUnit struct {
	ID         int
	Title      string
	OrderIndex int
	Items      []*CourseItem
}

// CourseItem links a unit to a lesson or an external page.
type CourseItem struct {
	ID         string
	UnitID     int
	Name       string
	Href       string
	LessonID   string
	Password   string
	OrderIndex int
}

// Locked reports whether the item is password gated.
func (i *CourseItem) Locked() bool { return i.Password != "" }

// Target returns where the item leads: the lesson id when set, else the href.
func (i *CourseItem) Target() string {
	if i.LessonID != "" {
		return i.LessonID
	}
	return i.Href
}

// Tool is an entry of the toolkit catalog.
type Tool struct {
	ID       string
	Name     string
	Href     string
	Password string
}

// Locked reports whether the tool is password gated.
func (t *Tool) Locked() bool { return t.Password != "" }

// UnlockScope distinguishes what an unlock grants access to.
type UnlockScope string

const (
	UnlockItem UnlockScope = "item"
	UnlockTool UnlockScope = "tool"
)

// Unlock records that a gated item or tool was opened with its password.
type Unlock struct {
	Scope      UnlockScope
	TargetID   string
	UnlockedAt time.Time
}

// Visit records one opened lesson tab.
type Visit struct {
	ID       string
	LessonID string
	View     ViewName
	OpenedAt time.Time
}
