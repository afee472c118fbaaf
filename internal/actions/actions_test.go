package actions

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gwork/gwork-cli/internal/nav"
)

// fakeSession serves canned responses keyed by the request URL and records
// every call and account switch.
type fakeSession struct {
	active   string
	names    []string
	switches []string
	calls    []string
	respond  func(s *fakeSession, method, url string) (map[string]any, error)
}

func (s *fakeSession) do(method, url string) (map[string]any, error) {
	s.calls = append(s.calls, method+" "+url)
	if s.respond != nil {
		return s.respond(s, method, url)
	}
	return map[string]any{}, nil
}

func (s *fakeSession) Get(_ context.Context, url string) (map[string]any, error) {
	return s.do("GET", url)
}
func (s *fakeSession) Post(_ context.Context, url string, _ any) (map[string]any, error) {
	return s.do("POST", url)
}
func (s *fakeSession) PostEmpty(_ context.Context, url string) (map[string]any, error) {
	return s.do("POST", url)
}
func (s *fakeSession) Put(_ context.Context, url string, _ any) (map[string]any, error) {
	return s.do("PUT", url)
}
func (s *fakeSession) Patch(_ context.Context, url string, _ any) (map[string]any, error) {
	return s.do("PATCH", url)
}
func (s *fakeSession) Delete(_ context.Context, url string) (map[string]any, error) {
	return s.do("DELETE", url)
}
func (s *fakeSession) Upload(_ context.Context, url string, _ any, _ []byte, _ string) (map[string]any, error) {
	return s.do("UPLOAD", url)
}
func (s *fakeSession) Download(_ context.Context, url string) ([]byte, error) {
	_, err := s.do("GET", url)
	return nil, err
}

func (s *fakeSession) ActiveAccountName() string  { return s.active }
func (s *fakeSession) ActiveAccountLabel() string { return "Label " + s.active }
func (s *fakeSession) AccountNames() []string     { return s.names }
func (s *fakeSession) SwitchAccount(name string) error {
	s.switches = append(s.switches, name)
	for _, n := range s.names {
		if n == name {
			s.active = name
			return nil
		}
	}
	return fmt.Errorf("account %q not found", name)
}

func messagesPage(ids []string, next string) map[string]any {
	msgs := make([]any, 0, len(ids))
	for _, id := range ids {
		msgs = append(msgs, map[string]any{"id": id, "snippet": "snippet " + id})
	}
	out := map[string]any{"messages": msgs}
	if next != "" {
		out["nextPageToken"] = next
	}
	return out
}

func newHarness(respond func(s *fakeSession, method, url string) (map[string]any, error)) (*fakeSession, *Dispatcher, *nav.State) {
	fs := &fakeSession{active: "work", names: []string{"work"}, respond: respond}
	st := nav.New(Services())
	st.EnterService(ActionNames(0))
	return fs, New(fs), st
}

func TestExecute_ReadActionLoadsListing(t *testing.T) {
	fs, d, st := newHarness(func(_ *fakeSession, _, _ string) (map[string]any, error) {
		return messagesPage([]string{"m1", "m2"}, "page2"), nil
	})

	status, err := d.Execute(context.Background(), st, 0, 0) // Gmail Inbox
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if st.Screen != nav.ScreenView || len(st.Items) != 2 || st.NextPageToken != "page2" {
		t.Fatalf("screen=%v items=%d token=%q", st.Screen, len(st.Items), st.NextPageToken)
	}
	if status != "2 messages loaded" {
		t.Fatalf("status = %q", status)
	}
	if len(fs.calls) != 1 || !strings.Contains(fs.calls[0], "in%3Ainbox") {
		t.Fatalf("calls = %v", fs.calls)
	}
}

func TestExecute_InputActionDefersCall(t *testing.T) {
	fs, d, st := newHarness(nil)

	if _, err := d.Execute(context.Background(), st, 0, 2); err != nil { // Gmail Compose
		t.Fatalf("execute: %v", err)
	}
	if st.Screen != nav.ScreenInput || len(st.Fields) != 5 {
		t.Fatalf("screen=%v fields=%d", st.Screen, len(st.Fields))
	}
	if len(fs.calls) != 0 {
		t.Fatalf("input action issued calls: %v", fs.calls)
	}
}

func TestSubmit_RejectsMissingRequiredField(t *testing.T) {
	fs, d, st := newHarness(nil)
	if _, err := d.Execute(context.Background(), st, 0, 2); err != nil {
		t.Fatalf("execute: %v", err)
	}
	st.Fields[0].Value = "a@example.com"
	// Subject and Body still empty.

	status, err := d.Submit(context.Background(), st)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != "Subject is required" {
		t.Fatalf("status = %q", status)
	}
	if st.Screen != nav.ScreenInput {
		t.Fatalf("screen changed on rejected submit: %v", st.Screen)
	}
	if len(fs.calls) != 0 {
		t.Fatalf("rejected submit issued calls: %v", fs.calls)
	}
}

func TestSubmit_SendsWhenComplete(t *testing.T) {
	fs, d, st := newHarness(nil)
	if _, err := d.Execute(context.Background(), st, 0, 2); err != nil {
		t.Fatalf("execute: %v", err)
	}
	st.Fields[0].Value = "a@example.com"
	st.Fields[1].Value = "hello"
	st.Fields[4].Value = "body"

	status, err := d.Submit(context.Background(), st)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != "email sent" || st.Screen != nav.ScreenActions {
		t.Fatalf("status=%q screen=%v", status, st.Screen)
	}
	if len(fs.calls) != 1 || !strings.Contains(fs.calls[0], "/messages/send") {
		t.Fatalf("calls = %v", fs.calls)
	}
}

func TestLoadMore_AppendsThenRelistResets(t *testing.T) {
	_, d, st := newHarness(func(_ *fakeSession, _, url string) (map[string]any, error) {
		switch {
		case strings.Contains(url, "pageToken=page2"):
			return messagesPage([]string{"m3"}, ""), nil
		default:
			return messagesPage([]string{"m1", "m2"}, "page2"), nil
		}
	})

	if _, err := d.Execute(context.Background(), st, 0, 0); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := d.LoadMore(context.Background(), st); err != nil {
		t.Fatalf("load more: %v", err)
	}
	if len(st.Items) != 3 || st.NextPageToken != "" {
		t.Fatalf("after load more: %d items, token %q", len(st.Items), st.NextPageToken)
	}

	// A second load-more with no token is a no-op.
	status, err := d.LoadMore(context.Background(), st)
	if err != nil || status != "no more pages" {
		t.Fatalf("status=%q err=%v", status, err)
	}

	// Re-running the listing starts from a fresh first page.
	if _, err := d.Execute(context.Background(), st, 0, 0); err != nil {
		t.Fatalf("re-execute: %v", err)
	}
	if len(st.Items) != 2 {
		t.Fatalf("re-list accumulated: %d items", len(st.Items))
	}
}

func TestUnifiedSearch_RestoresActiveAccount(t *testing.T) {
	fs, d, st := newHarness(func(s *fakeSession, _, url string) (map[string]any, error) {
		if !strings.Contains(url, "/messages?") {
			return map[string]any{}, nil
		}
		if s.active == "personal" {
			return nil, fmt.Errorf("boom")
		}
		return messagesPage([]string{s.active + "-m1"}, ""), nil
	})
	fs.names = []string{"work", "personal", "club"}

	if _, err := d.Execute(context.Background(), st, 0, 11); err != nil { // Unified Search
		t.Fatalf("execute: %v", err)
	}
	st.Fields[0].Value = "report"

	status, err := d.Submit(context.Background(), st)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if fs.active != "work" {
		t.Fatalf("active account not restored: %q", fs.active)
	}
	if len(st.Items) != 2 {
		t.Fatalf("items = %v", st.Items)
	}
	for _, it := range st.Items {
		if it.Account == "" || !strings.HasPrefix(it.Title, "[Label ") {
			t.Fatalf("result not tagged with origin: %+v", it)
		}
	}
	if !strings.Contains(status, "errors:") || !strings.Contains(status, "personal") {
		t.Fatalf("partial failure not surfaced: %q", status)
	}
	// The last switch must be back to the original account.
	if fs.switches[len(fs.switches)-1] != "work" {
		t.Fatalf("switches = %v", fs.switches)
	}
}

func TestPerformDelete_RemovesSelectedItem(t *testing.T) {
	fs, d, st := newHarness(func(_ *fakeSession, _, _ string) (map[string]any, error) {
		return messagesPage([]string{"m1", "m2"}, ""), nil
	})
	if _, err := d.Execute(context.Background(), st, 0, 0); err != nil {
		t.Fatalf("execute: %v", err)
	}
	st.MoveDown()
	st.RequestConfirm("Delete?")

	status, err := d.PerformDelete(context.Background(), st)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if status != "message moved to trash" || len(st.Items) != 1 || st.Items[0].ID != "m1" {
		t.Fatalf("status=%q items=%v", status, st.Items)
	}
	last := fs.calls[len(fs.calls)-1]
	if !strings.Contains(last, "/messages/m2/trash") {
		t.Fatalf("calls = %v", fs.calls)
	}
}

func TestCanDelete_PerService(t *testing.T) {
	_, d, st := newHarness(nil)
	// Docs has no delete.
	if _, err := d.Execute(context.Background(), st, 4, 1); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if d.CanDelete() {
		t.Fatal("docs should not support delete")
	}
	st.ReturnToActions()
	if _, err := d.Execute(context.Background(), st, 0, 2); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !d.CanDelete() {
		t.Fatal("gmail should support delete")
	}
}

func actionIndex(t *testing.T, serviceIdx int, name string) int {
	t.Helper()
	for i, n := range ActionNames(serviceIdx) {
		if n == name {
			return i
		}
	}
	t.Fatalf("action %q not found in service %d", name, serviceIdx)
	return -1
}

// Every table entry must either run immediately or collect input and submit;
// never both, never neither.
func TestActionTables_RunOrSubmit(t *testing.T) {
	for _, svc := range services {
		for _, a := range svc.actions {
			runs := a.Run != nil
			collects := a.Fields != nil && a.Submit != nil
			if runs == collects {
				t.Errorf("%s/%s: want exactly one of Run or Fields+Submit", svc.name, a.Name)
			}
		}
	}
}

func TestSubmit_GroupMembersModifiesGroup(t *testing.T) {
	fs, d, st := newHarness(nil)
	idx := actionIndex(t, 8, "Group Members")
	if _, err := d.Execute(context.Background(), st, 8, idx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	st.Fields[0].Value = "contactGroups/abc"
	st.Fields[1].Value = "people/c1, people/c2"

	status, err := d.Submit(context.Background(), st)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != "group updated: +2 -0" || st.Screen != nav.ScreenActions {
		t.Fatalf("status=%q screen=%v", status, st.Screen)
	}
	if len(fs.calls) != 1 || !strings.Contains(fs.calls[0], "contactGroups/abc/members:modify") {
		t.Fatalf("calls = %v", fs.calls)
	}
}

func TestSubmit_GroupMembersRejectsEmptyChange(t *testing.T) {
	fs, d, st := newHarness(nil)
	idx := actionIndex(t, 8, "Group Members")
	if _, err := d.Execute(context.Background(), st, 8, idx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	st.Fields[0].Value = "contactGroups/abc"

	if _, err := d.Submit(context.Background(), st); err == nil {
		t.Fatal("empty change should be rejected")
	}
	if len(fs.calls) != 0 {
		t.Fatalf("rejected submit issued calls: %v", fs.calls)
	}
}

func TestRun_MyProfileShowsDetail(t *testing.T) {
	fs, d, st := newHarness(func(_ *fakeSession, _, _ string) (map[string]any, error) {
		return map[string]any{"resourceName": "people/me"}, nil
	})
	idx := actionIndex(t, 8, "My Profile")
	status, err := d.Execute(context.Background(), st, 8, idx)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if status != "profile loaded" || st.Screen != nav.ScreenView || !strings.Contains(st.Detail, "people/me") {
		t.Fatalf("status=%q screen=%v detail=%q", status, st.Screen, st.Detail)
	}
	if len(fs.calls) != 1 || !strings.Contains(fs.calls[0], "people/me") {
		t.Fatalf("calls = %v", fs.calls)
	}
}

func TestSubmit_DeployCreatesDeployment(t *testing.T) {
	fs, d, st := newHarness(func(_ *fakeSession, _, _ string) (map[string]any, error) {
		return map[string]any{"deploymentId": "dep-1"}, nil
	})
	idx := actionIndex(t, 9, "Deploy")
	if _, err := d.Execute(context.Background(), st, 9, idx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	st.Fields[0].Value = "s1"
	st.Fields[1].Value = "3"

	status, err := d.Submit(context.Background(), st)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != "deployed: dep-1" || st.Screen != nav.ScreenActions {
		t.Fatalf("status=%q screen=%v", status, st.Screen)
	}
	if len(fs.calls) != 1 || !strings.Contains(fs.calls[0], "POST ") || !strings.Contains(fs.calls[0], "/projects/s1/deployments") {
		t.Fatalf("calls = %v", fs.calls)
	}
}

func TestSubmit_MoveSlideIssuesBatchUpdate(t *testing.T) {
	fs, d, st := newHarness(nil)
	idx := actionIndex(t, 5, "Move Slide")
	if _, err := d.Execute(context.Background(), st, 5, idx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	st.Fields[0].Value = "p1"
	st.Fields[1].Value = "slide1"
	st.Fields[2].Value = "2"

	status, err := d.Submit(context.Background(), st)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != "slide moved" {
		t.Fatalf("status = %q", status)
	}
	if len(fs.calls) != 1 || !strings.Contains(fs.calls[0], "p1:batchUpdate") {
		t.Fatalf("calls = %v", fs.calls)
	}
}

func TestSubmit_NewTaskList(t *testing.T) {
	fs, d, st := newHarness(func(_ *fakeSession, _, _ string) (map[string]any, error) {
		return map[string]any{"id": "list-9"}, nil
	})
	idx := actionIndex(t, 7, "New Task List")
	if _, err := d.Execute(context.Background(), st, 7, idx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	st.Fields[0].Value = "Errands"

	status, err := d.Submit(context.Background(), st)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != "task list created: list-9" {
		t.Fatalf("status = %q", status)
	}
	if len(fs.calls) != 1 || !strings.Contains(fs.calls[0], "/users/@me/lists") {
		t.Fatalf("calls = %v", fs.calls)
	}
}

func TestSubmit_ViewFormResponseShowsDetail(t *testing.T) {
	fs, d, st := newHarness(func(_ *fakeSession, _, _ string) (map[string]any, error) {
		return map[string]any{"responseId": "r1"}, nil
	})
	idx := actionIndex(t, 6, "View Response")
	if _, err := d.Execute(context.Background(), st, 6, idx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	st.Fields[0].Value = "f1"
	st.Fields[1].Value = "r1"

	status, err := d.Submit(context.Background(), st)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status != "response loaded" || st.Screen != nav.ScreenView || !strings.Contains(st.Detail, "r1") {
		t.Fatalf("status=%q screen=%v", status, st.Screen)
	}
	if len(fs.calls) != 1 || !strings.Contains(fs.calls[0], "/f1/responses/r1") {
		t.Fatalf("calls = %v", fs.calls)
	}
}

func TestServicesAndActions_Closed(t *testing.T) {
	svcs := Services()
	if len(svcs) != 10 {
		t.Fatalf("services = %v", svcs)
	}
	if got := ActionNames(0); len(got) != 12 || got[11] != "Unified Search" {
		t.Fatalf("gmail actions = %v", got)
	}
	if ActionNames(99) != nil {
		t.Fatal("out-of-range service should have no actions")
	}
}
