package app

import "github.com/misterclayt0n/mapty/internal/models"

type CommandKind string

const (
	AddMarker      CommandKind = "add-marker"
	RenderListItem CommandKind = "render-list-item"
	RemoveItem     CommandKind = "remove-item"
	FullReset      CommandKind = "full-reset"
	HideForm       CommandKind = "hide-form"
	CenterMap      CommandKind = "center-map"
	Alert          CommandKind = "alert"
)

// Command is a render request for the UI shell. Workout, when set, is a
// copy with every derived field filled in.
type Command struct {
	Kind    CommandKind
	Workout *models.Workout
	Coords  models.Coords
	Zoom    int
	Message string
}

type Renderer interface {
	Render(cmd Command)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(cmd Command)

func (f RendererFunc) Render(cmd Command) { f(cmd) }

type discard struct{}

func (discard) Render(Command) {}
