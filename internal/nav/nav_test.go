package nav

import "testing"

func newViewState() *State {
	s := New([]string{"mail", "calendar", "drive"})
	s.EnterService([]string{"list", "send"})
	s.ShowItems([]Item{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}}, "tok1")
	return s
}

func TestMove_SaturatesAtBoundaries(t *testing.T) {
	s := New([]string{"mail", "calendar", "drive"})

	s.MoveUp()
	if s.ServiceCursor != 0 {
		t.Fatalf("cursor moved above top: %d", s.ServiceCursor)
	}
	s.MoveDown()
	s.MoveDown()
	s.MoveDown()
	s.MoveDown()
	if s.ServiceCursor != 2 {
		t.Fatalf("cursor should saturate at 2, got %d", s.ServiceCursor)
	}
}

func TestMove_IsScreenAware(t *testing.T) {
	s := newViewState()

	s.MoveDown()
	if s.ItemCursor != 1 {
		t.Fatalf("item cursor = %d, want 1", s.ItemCursor)
	}
	if s.ServiceCursor != 0 || s.ActionCursor != 0 {
		t.Fatalf("other cursors moved: service=%d action=%d", s.ServiceCursor, s.ActionCursor)
	}

	s.ShowDetail("full record")
	s.MoveDown()
	if s.Scroll != 1 {
		t.Fatalf("detail should scroll, got scroll=%d", s.Scroll)
	}
	if s.ItemCursor != 1 {
		t.Fatalf("item cursor moved while in detail: %d", s.ItemCursor)
	}
}

func TestShowItems_ResetsPagination(t *testing.T) {
	s := newViewState()
	s.AppendItems([]Item{{ID: "3"}, {ID: "4"}}, "tok2")
	if len(s.Items) != 4 || s.NextPageToken != "tok2" {
		t.Fatalf("append: %d items, token %q", len(s.Items), s.NextPageToken)
	}

	// Re-running the listing starts over with a fresh first page.
	s.ShowItems([]Item{{ID: "9"}}, "")
	if len(s.Items) != 1 || s.Items[0].ID != "9" {
		t.Fatalf("re-list did not reset: %v", s.Items)
	}
	if s.NextPageToken != "" || s.ItemCursor != 0 {
		t.Fatalf("token=%q cursor=%d after reset", s.NextPageToken, s.ItemCursor)
	}
}

func TestBack_ClearsScreenScopedState(t *testing.T) {
	s := newViewState()
	s.MoveDown()
	s.ShowDetail("record")
	s.MoveDown()

	s.Back()
	if s.Screen != ScreenView || s.Detail != "" || s.Scroll != 0 {
		t.Fatalf("first back should drop detail only: screen=%v detail=%q scroll=%d", s.Screen, s.Detail, s.Scroll)
	}
	if len(s.Items) != 2 {
		t.Fatalf("items cleared too early: %v", s.Items)
	}

	s.Back()
	if s.Screen != ScreenActions {
		t.Fatalf("screen = %v, want actions", s.Screen)
	}
	if s.Items != nil || s.ItemCursor != 0 || s.NextPageToken != "" {
		t.Fatalf("view state leaked: items=%v cursor=%d token=%q", s.Items, s.ItemCursor, s.NextPageToken)
	}

	s.Back()
	if s.Screen != ScreenServices || s.Actions != nil {
		t.Fatalf("action state leaked: screen=%v actions=%v", s.Screen, s.Actions)
	}

	s.Back()
	if !s.Quitting {
		t.Fatal("back from services should quit")
	}
}

func TestBack_FromInputClearsFields(t *testing.T) {
	s := New([]string{"mail"})
	s.EnterService([]string{"send"})
	s.ShowInput([]Field{{Label: "To", Required: true}, {Label: "Body", Multiline: true}})
	s.MoveDown()

	s.Back()
	if s.Screen != ScreenActions || s.Fields != nil || s.FieldCursor != 0 {
		t.Fatalf("input state leaked: screen=%v fields=%v cursor=%d", s.Screen, s.Fields, s.FieldCursor)
	}
}

func TestMissingRequired(t *testing.T) {
	s := New([]string{"mail"})
	s.ShowInput([]Field{
		{Label: "To", Required: true},
		{Label: "Subject"},
		{Label: "Body", Required: true},
	})

	if got := s.MissingRequired(); got != "To" {
		t.Fatalf("MissingRequired = %q, want To", got)
	}
	s.Fields[0].Value = "a@example.com"
	if got := s.MissingRequired(); got != "Body" {
		t.Fatalf("MissingRequired = %q, want Body", got)
	}
	s.Fields[2].Value = "hi"
	if got := s.MissingRequired(); got != "" {
		t.Fatalf("MissingRequired = %q, want empty", got)
	}
}

func TestConfirm_CancelAndRemove(t *testing.T) {
	s := newViewState()
	s.MoveDown()

	s.RequestConfirm("Delete b?")
	if s.Screen != ScreenConfirm {
		t.Fatalf("screen = %v", s.Screen)
	}
	s.CancelConfirm()
	if s.Screen != ScreenView || len(s.Items) != 2 {
		t.Fatalf("cancel changed the view: %v", s.Items)
	}

	s.RequestConfirm("Delete b?")
	s.RemoveSelectedItem()
	if s.Screen != ScreenView || len(s.Items) != 1 || s.Items[0].ID != "1" {
		t.Fatalf("remove: items=%v", s.Items)
	}
	if s.ItemCursor != 0 {
		t.Fatalf("cursor not clamped: %d", s.ItemCursor)
	}
}

func TestSwitcherOverlay_CapturesCursor(t *testing.T) {
	s := newViewState()
	s.ToggleSwitcher(3)

	s.MoveDown()
	s.MoveDown()
	s.MoveDown()
	if s.SwitcherCursor != 2 {
		t.Fatalf("switcher cursor = %d, want saturated 2", s.SwitcherCursor)
	}
	if s.ItemCursor != 0 {
		t.Fatalf("item cursor moved under overlay: %d", s.ItemCursor)
	}

	s.ToggleSwitcher(3)
	if s.SwitcherVisible {
		t.Fatal("overlay still visible")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	s := newViewState()
	c := s.Clone()

	c.Items[0].Title = "changed"
	c.AppendItems([]Item{{ID: "3"}}, "tok2")
	c.ShowDetail("record")

	if s.Screen != ScreenView || s.Detail != "" {
		t.Fatalf("original followed the clone: screen=%v detail=%q", s.Screen, s.Detail)
	}
	if len(s.Items) != 2 || s.Items[0].Title != "a" || s.NextPageToken != "tok1" {
		t.Fatalf("original items changed: %+v token=%q", s.Items, s.NextPageToken)
	}

	// And the other direction: the clone must not alias the original.
	s.EnterService([]string{"other"})
	if len(c.Actions) != 2 || c.Actions[0] != "list" {
		t.Fatalf("clone actions aliased: %v", c.Actions)
	}
}

func TestSelectedItem_EmptyListing(t *testing.T) {
	s := New([]string{"mail"})
	s.EnterService([]string{"list"})
	s.ShowItems(nil, "")
	if s.SelectedItem() != nil {
		t.Fatal("selected item on empty listing")
	}
}
