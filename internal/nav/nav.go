// Package nav holds the modal navigation state machine behind the terminal
// UI. It is pure state: no terminal, no network, no tokens. The TUI layer
// feeds it key intents and the action dispatcher feeds it results.
package nav

// Screen is one of the five modal UI states.
type Screen int

const (
	ScreenServices Screen = iota
	ScreenActions
	ScreenView
	ScreenInput
	ScreenConfirm
)

func (s Screen) String() string {
	switch s {
	case ScreenServices:
		return "services"
	case ScreenActions:
		return "actions"
	case ScreenView:
		return "view"
	case ScreenInput:
		return "input"
	case ScreenConfirm:
		return "confirm"
	}
	return "unknown"
}

// Item is one row in a result listing. Account is set only by the
// cross-account search, which tags rows with their origin. Ref carries a
// parent-scope identifier when drill-in needs one (a task's list, say).
type Item struct {
	ID       string
	Title    string
	Subtitle string
	Account  string
	Ref      string
}

// Field is one entry on the input screen. Placeholder is a hint shown while
// the value is empty.
type Field struct {
	Label       string
	Placeholder string
	Value       string
	Required    bool
	Multiline   bool
}

// State is the whole navigation state. All mutation goes through methods so
// the screen-scoped clearing rules live in one place.
type State struct {
	Screen Screen

	// Account switcher overlay; intercepts input regardless of Screen.
	SwitcherVisible bool
	SwitcherCursor  int
	switcherLen     int

	Services      []string
	ServiceCursor int

	Actions      []string
	ActionCursor int

	Items         []Item
	ItemCursor    int
	Detail        string
	Scroll        int
	NextPageToken string

	Fields      []Field
	FieldCursor int

	ConfirmPrompt string

	Quitting bool
}

func New(services []string) *State {
	return &State{Screen: ScreenServices, Services: services}
}

// MoveUp moves the cursor for whatever list the current screen owns.
// Saturating: a no-op at the top boundary.
func (s *State) MoveUp() {
	if s.SwitcherVisible {
		s.SwitcherCursor = dec(s.SwitcherCursor)
		return
	}
	switch s.Screen {
	case ScreenServices:
		s.ServiceCursor = dec(s.ServiceCursor)
	case ScreenActions:
		s.ActionCursor = dec(s.ActionCursor)
	case ScreenView:
		if s.Detail != "" {
			s.Scroll = dec(s.Scroll)
		} else {
			s.ItemCursor = dec(s.ItemCursor)
		}
	case ScreenInput:
		s.FieldCursor = dec(s.FieldCursor)
	}
}

// MoveDown mirrors MoveUp, saturating at the end of each list.
func (s *State) MoveDown() {
	if s.SwitcherVisible {
		s.SwitcherCursor = incBelow(s.SwitcherCursor, s.switcherLen)
		return
	}
	switch s.Screen {
	case ScreenServices:
		s.ServiceCursor = incBelow(s.ServiceCursor, len(s.Services))
	case ScreenActions:
		s.ActionCursor = incBelow(s.ActionCursor, len(s.Actions))
	case ScreenView:
		if s.Detail != "" {
			s.Scroll++
		} else {
			s.ItemCursor = incBelow(s.ItemCursor, len(s.Items))
		}
	case ScreenInput:
		s.FieldCursor = incBelow(s.FieldCursor, len(s.Fields))
	}
}

func dec(i int) int {
	if i > 0 {
		return i - 1
	}
	return i
}

func incBelow(i, n int) int {
	if i < n-1 {
		return i + 1
	}
	return i
}

// EnterService records the chosen service and moves to the action list.
func (s *State) EnterService(actions []string) {
	s.Actions = actions
	s.ActionCursor = 0
	s.Screen = ScreenActions
}

// ShowItems replaces the listing wholesale: a fresh first page, never an
// accumulation. Detail and scroll are reset with it.
func (s *State) ShowItems(items []Item, nextPageToken string) {
	s.Items = items
	s.ItemCursor = 0
	s.Detail = ""
	s.Scroll = 0
	s.NextPageToken = nextPageToken
	s.Screen = ScreenView
}

// AppendItems extends the listing on load-more and re-derives the token
// from the new response. No dedup against existing rows.
func (s *State) AppendItems(items []Item, nextPageToken string) {
	s.Items = append(s.Items, items...)
	s.NextPageToken = nextPageToken
}

// ShowDetail drills into the selected item. Selecting again while a detail
// is showing is a no-op; the caller must go back first.
func (s *State) ShowDetail(detail string) {
	s.Detail = detail
	s.Scroll = 0
	s.Screen = ScreenView
}

// ShowInput opens the field-collection screen.
func (s *State) ShowInput(fields []Field) {
	s.Fields = fields
	s.FieldCursor = 0
	s.Screen = ScreenInput
}

// RequestConfirm moves to the delete confirmation prompt.
func (s *State) RequestConfirm(prompt string) {
	s.ConfirmPrompt = prompt
	s.Screen = ScreenConfirm
}

// CancelConfirm abandons the pending delete, leaving the view untouched.
func (s *State) CancelConfirm() {
	s.ConfirmPrompt = ""
	s.Screen = ScreenView
}

// RemoveSelectedItem drops the item under the cursor after a confirmed
// delete and returns to the view.
func (s *State) RemoveSelectedItem() {
	if s.ItemCursor < len(s.Items) {
		s.Items = append(s.Items[:s.ItemCursor], s.Items[s.ItemCursor+1:]...)
	}
	if s.ItemCursor >= len(s.Items) && s.ItemCursor > 0 {
		s.ItemCursor--
	}
	s.ConfirmPrompt = ""
	s.Screen = ScreenView
}

// Back leaves the current screen, clearing the state that screen owns so
// nothing stale leaks into a later visit for a different service.
func (s *State) Back() {
	switch s.Screen {
	case ScreenConfirm:
		s.CancelConfirm()
	case ScreenInput:
		s.Fields = nil
		s.FieldCursor = 0
		s.Screen = ScreenActions
	case ScreenView:
		if s.Detail != "" {
			// First back from a detail returns to the listing.
			s.Detail = ""
			s.Scroll = 0
			return
		}
		s.Items = nil
		s.ItemCursor = 0
		s.Scroll = 0
		s.NextPageToken = ""
		s.Screen = ScreenActions
	case ScreenActions:
		s.Actions = nil
		s.ActionCursor = 0
		s.Screen = ScreenServices
	case ScreenServices:
		s.Quitting = true
	}
}

// ReturnToActions is the post-submit transition for side-effecting actions.
// It clears the input screen's state on the way out.
func (s *State) ReturnToActions() {
	s.Fields = nil
	s.FieldCursor = 0
	s.Screen = ScreenActions
}

// MissingRequired reports the label of the first required field left empty,
// or "" when submission may proceed.
func (s *State) MissingRequired() string {
	for _, f := range s.Fields {
		if f.Required && f.Value == "" {
			return f.Label
		}
	}
	return ""
}

// SelectedItem returns the item under the cursor, nil when the listing is
// empty.
func (s *State) SelectedItem() *Item {
	if len(s.Items) == 0 || s.ItemCursor >= len(s.Items) {
		return nil
	}
	return &s.Items[s.ItemCursor]
}

// Clone returns an independent copy of the whole state. Background commands
// work against a clone and the UI swaps it in wholesale when the result
// lands, so the rendering side never observes a half-applied transition.
func (s *State) Clone() *State {
	out := *s
	out.Services = append([]string(nil), s.Services...)
	out.Actions = append([]string(nil), s.Actions...)
	out.Items = append([]Item(nil), s.Items...)
	out.Fields = append([]Field(nil), s.Fields...)
	return &out
}

// ToggleSwitcher shows or hides the account overlay.
func (s *State) ToggleSwitcher(accounts int) {
	s.SwitcherVisible = !s.SwitcherVisible
	s.SwitcherCursor = 0
	s.switcherLen = accounts
}
