// Package actions is the seam between the generic navigation engine and the
// per-service call builders. Every (service, action) pair is an entry in a
// closed table carrying its own field schema and handlers; there is no
// string-keyed dispatch and no "unknown action" fallback.
package actions

import (
	"context"
	"fmt"

	"github.com/gwork/gwork-cli/internal/gapi"
	"github.com/gwork/gwork-cli/internal/nav"
)

// Session is what the dispatcher needs from the session manager: the verb
// capability plus account identity and switching for the fan-out search.
type Session interface {
	gapi.Doer
	ActiveAccountName() string
	ActiveAccountLabel() string
	AccountNames() []string
	SwitchAccount(name string) error
}

// handler runs one step of an action against the live navigation state and
// returns a short status line.
type handler func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error)

// Action is one entry in a service's table. Fields non-nil means the action
// collects input first and Submit runs on submission; otherwise Run executes
// immediately.
type Action struct {
	Name   string
	Fields []nav.Field
	Run    handler
	Submit handler
}

type service struct {
	name    string
	actions []Action
	detail  handler // drill-in on the selected item
	remove  handler // nil when the service has no delete
}

var services = []service{
	gmailService,
	calendarService,
	driveService,
	sheetsService,
	docsService,
	slidesService,
	formsService,
	tasksService,
	peopleService,
	scriptService,
}

type Dispatcher struct {
	s Session

	gmail    gapi.Gmail
	calendar gapi.Calendar
	drive    gapi.Drive
	sheets   gapi.Sheets
	docs     gapi.Docs
	slides   gapi.Slides
	forms    gapi.Forms
	tasks    gapi.Tasks
	people   gapi.People
	script   gapi.Script

	serviceIdx int
	actionIdx  int
	// more re-issues the current listing's call with the page token and
	// appends; set by listing handlers, cleared by everything else.
	more func(ctx context.Context, st *nav.State) (string, error)
}

func New(s Session) *Dispatcher {
	return &Dispatcher{
		s:        s,
		gmail:    gapi.NewGmail(s),
		calendar: gapi.NewCalendar(s),
		drive:    gapi.NewDrive(s),
		sheets:   gapi.NewSheets(s),
		docs:     gapi.NewDocs(s),
		slides:   gapi.NewSlides(s),
		forms:    gapi.NewForms(s),
		tasks:    gapi.NewTasks(s),
		people:   gapi.NewPeople(s),
		script:   gapi.NewScript(s),
	}
}

// Services returns the display names for the service-select screen.
func Services() []string {
	out := make([]string, len(services))
	for i, s := range services {
		out[i] = s.name
	}
	return out
}

// ActionNames returns the action list for one service.
func ActionNames(serviceIdx int) []string {
	if serviceIdx < 0 || serviceIdx >= len(services) {
		return nil
	}
	acts := services[serviceIdx].actions
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.Name
	}
	return out
}

// Execute runs the selected action: read actions load results into the state
// immediately; input actions open the field screen and defer the call.
func (d *Dispatcher) Execute(ctx context.Context, st *nav.State, serviceIdx, actionIdx int) (string, error) {
	if serviceIdx < 0 || serviceIdx >= len(services) {
		return "", fmt.Errorf("no such service")
	}
	svc := services[serviceIdx]
	if actionIdx < 0 || actionIdx >= len(svc.actions) {
		return "", fmt.Errorf("no such action")
	}
	d.serviceIdx, d.actionIdx = serviceIdx, actionIdx
	d.more = nil

	act := svc.actions[actionIdx]
	if act.Fields != nil {
		fields := make([]nav.Field, len(act.Fields))
		copy(fields, act.Fields)
		st.ShowInput(fields)
		return "", nil
	}
	return act.Run(ctx, d, st)
}

// Submit finishes an input action. Submission is rejected, with the screen
// unchanged and no call issued, while a required field is empty.
func (d *Dispatcher) Submit(ctx context.Context, st *nav.State) (string, error) {
	if missing := st.MissingRequired(); missing != "" {
		return fmt.Sprintf("%s is required", missing), nil
	}
	act := services[d.serviceIdx].actions[d.actionIdx]
	if act.Submit == nil {
		return "", fmt.Errorf("no such action")
	}
	return act.Submit(ctx, d, st)
}

// OpenDetail drills into the item under the cursor. A second select while a
// detail is showing is a no-op.
func (d *Dispatcher) OpenDetail(ctx context.Context, st *nav.State) (string, error) {
	if st.Detail != "" || st.SelectedItem() == nil {
		return "", nil
	}
	return services[d.serviceIdx].detail(ctx, d, st)
}

// CanDelete reports whether the current service supports deleting the
// selected item.
func (d *Dispatcher) CanDelete() bool {
	return services[d.serviceIdx].remove != nil
}

// PerformDelete runs the confirmed delete for the selected item.
func (d *Dispatcher) PerformDelete(ctx context.Context, st *nav.State) (string, error) {
	rm := services[d.serviceIdx].remove
	if rm == nil {
		st.CancelConfirm()
		return "delete not supported here", nil
	}
	return rm(ctx, d, st)
}

// LoadMore fetches the next page of the current listing and appends it.
func (d *Dispatcher) LoadMore(ctx context.Context, st *nav.State) (string, error) {
	if st.NextPageToken == "" || d.more == nil {
		return "no more pages", nil
	}
	return d.more(ctx, st)
}
