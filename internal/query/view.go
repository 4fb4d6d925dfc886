package query

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

func (f StatusFilter) IsValid() bool {
	switch f {
	case StatusAll, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

// ViewState holds the three transient filter selections. It is never
// persisted; a fresh session starts with everything visible.
type ViewState struct {
	Status   StatusFilter
	Search   string
	Category string // empty means no category filter
}

func NewViewState() ViewState {
	return ViewState{Status: StatusAll}
}

// SetStatus ignores unknown filter values instead of corrupting the state.
func (v *ViewState) SetStatus(f StatusFilter) {
	if f.IsValid() {
		v.Status = f
	}
}

func (v *ViewState) SetSearch(s string) {
	v.Search = s
}

// ToggleCategory activates the category filter, or clears it when the same
// category is selected again. The filter is never auto-reset when its last
// task disappears; it simply matches nothing until the user clears it.
func (v *ViewState) ToggleCategory(category string) {
	if v.Category == category {
		v.Category = ""
		return
	}
	v.Category = category
}

func (v *ViewState) ClearCategory() {
	v.Category = ""
}
