package domain

// LeftPanelView selects what the left panel shows.
type LeftPanelView string

const (
	LeftPanelComponents LeftPanelView = "components"
	LeftPanelManagePost LeftPanelView = "managePost"
)

// Valid reports whether v is a known view.
func (v LeftPanelView) Valid() bool {
	return v == LeftPanelComponents || v == LeftPanelManagePost
}

// BuilderState is the read-only snapshot returned to the frontend after
// every operation. It never aliases the state owner's internals.
// Version grows with every change; a snapshot with a lower version is stale.
type BuilderState struct {
	Version                   uint64        `json:"version"`
	PageComponents            []Component   `json:"pageComponents"`
	SelectedComponentID       string        `json:"selectedComponentId"`
	EditingComponent          *Component    `json:"editingComponent"`
	IsPropertyEditorPanelOpen bool          `json:"isPropertyEditorPanelOpen"`
	Posts                     []Post        `json:"posts"`
	ActivePostID              string        `json:"activePostId"`
	CurrentViewInLeftPanel    LeftPanelView `json:"currentViewInLeftPanel"`
}

// PostSummary is a post list row for the manage-posts view.
type PostSummary struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Status         PostStatus `json:"status"`
	ComponentCount int        `json:"componentCount"`
	UpdatedAt      string     `json:"updatedAt"`
	UpdatedLabel   string     `json:"updatedLabel"`
	Active         bool       `json:"active"`
}
