package tui

// Scene identifies one screen of the interface.
type Scene int

const (
	SceneList Scene = iota
	SceneCreate
	SceneEdit
	SceneQuery
)

func (s Scene) String() string {
	switch s {
	case SceneList:
		return "list"
	case SceneCreate:
		return "create"
	case SceneEdit:
		return "edit"
	case SceneQuery:
		return "query"
	}
	return "unknown"
}

// Session is the state shared between scenes.
type Session struct {
	// SelectedFile is the card file chosen in the List scene. Create
	// clears it.
	SelectedFile string
}

// ResumeToken names the scene to re-enter after the scenes are rebuilt.
type ResumeToken struct {
	Scene        Scene
	SelectedFile string
}
