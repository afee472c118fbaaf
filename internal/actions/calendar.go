package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gwork/gwork-cli/internal/nav"
)

var calendarService = service{
	name: "Calendar",
	actions: []Action{
		{Name: "Today", Run: calendarWindow(0)},
		{Name: "Week View", Run: calendarWindow(7)},
		{Name: "Events", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.calendar.ListEvents(ctx, "primary", "", "", 50, true, "startTime")
			if err != nil {
				return "", err
			}
			items := calendarEventItems(val)
			st.ShowItems(items, str(val, "nextPageToken"))
			return fmt.Sprintf("%d events", len(items)), nil
		}},
		{
			Name:   "Quick Add",
			Fields: []nav.Field{field("Quick Add", "Meeting with Bob tomorrow at 3pm", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.calendar.QuickAddEvent(ctx, "primary", fieldVal(st, 0)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "event created via quick add", nil
			},
		},
		{Name: "Calendars", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.calendar.ListCalendars(ctx, "")
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, c := range arr(val, "items") {
				items = append(items, nav.Item{ID: str(c, "id"), Title: str(c, "summary"), Subtitle: str(c, "accessRole")})
			}
			st.ShowItems(items, "")
			return fmt.Sprintf("%d calendars", len(items)), nil
		}},
		{
			Name: "Create Event",
			Fields: []nav.Field{
				field("Summary", "Meeting title", true),
				field("Start (RFC3339)", "2026-01-15T10:00:00-05:00", true),
				field("End (RFC3339)", "2026-01-15T11:00:00-05:00", true),
				field("Location", "Conference Room", false),
				field("Description", "Event details", false),
				field("Attendees (comma-sep)", "a@b.com,c@d.com", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				event := map[string]any{
					"summary": fieldVal(st, 0),
					"start":   map[string]any{"dateTime": fieldVal(st, 1)},
					"end":     map[string]any{"dateTime": fieldVal(st, 2)},
				}
				if v := fieldVal(st, 3); v != "" {
					event["location"] = v
				}
				if v := fieldVal(st, 4); v != "" {
					event["description"] = v
				}
				if v := fieldVal(st, 5); v != "" {
					var attendees []map[string]any
					for _, a := range strings.Split(v, ",") {
						attendees = append(attendees, map[string]any{"email": strings.TrimSpace(a)})
					}
					event["attendees"] = attendees
				}
				if _, err := d.calendar.CreateEvent(ctx, "primary", event); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "event created", nil
			},
		},
		{Name: "ACL/Sharing", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.calendar.ListACL(ctx, "primary")
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, a := range arr(val, "items") {
				scope, _ := a["scope"].(map[string]any)
				items = append(items, nav.Item{ID: str(a, "id"), Title: str(scope, "value"), Subtitle: str(a, "role")})
			}
			st.ShowItems(items, "")
			return fmt.Sprintf("%d sharing rules", len(items)), nil
		}},
		{Name: "Settings", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.calendar.ListSettings(ctx)
			if err != nil {
				return "", err
			}
			st.ShowItems(nil, "")
			st.ShowDetail(detailJSON(val))
			return "calendar settings loaded", nil
		}},
		{
			Name: "Free/Busy",
			Fields: []nav.Field{
				field("Calendar ID", "primary", true),
				field("Start (RFC3339)", "2026-01-15T00:00:00Z", true),
				field("End (RFC3339)", "2026-01-16T00:00:00Z", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.calendar.QueryFreeBusy(ctx, map[string]any{
					"timeMin": fieldVal(st, 1),
					"timeMax": fieldVal(st, 2),
					"items":   []map[string]any{{"id": fieldVal(st, 0)}},
				})
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "free/busy loaded", nil
			},
		},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		val, err := d.calendar.GetEvent(ctx, "primary", it.ID)
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "event loaded", nil
	},
	remove: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		if _, err := d.calendar.DeleteEvent(ctx, "primary", it.ID); err != nil {
			return "", err
		}
		st.RemoveSelectedItem()
		return "event deleted", nil
	},
}

// calendarWindow lists the primary calendar from midnight today through the
// end of today plus days.
func calendarWindow(days int) handler {
	return func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		now := time.Now().UTC()
		timeMin := now.Format("2006-01-02") + "T00:00:00Z"
		timeMax := now.AddDate(0, 0, days).Format("2006-01-02") + "T23:59:59Z"
		val, err := d.calendar.ListEvents(ctx, "primary", timeMin, timeMax, 50, true, "startTime")
		if err != nil {
			return "", err
		}
		items := calendarEventItems(val)
		st.ShowItems(items, "")
		span := "today"
		if days > 0 {
			span = "this week"
		}
		return fmt.Sprintf("%d events %s", len(items), span), nil
	}
}

func calendarEventItems(val map[string]any) []nav.Item {
	var items []nav.Item
	for _, e := range arr(val, "items") {
		start, _ := e["start"].(map[string]any)
		when := str(start, "dateTime")
		if when == "" {
			when = str(start, "date")
		}
		title := str(e, "summary")
		if title == "" {
			title = "(no title)"
		}
		items = append(items, nav.Item{ID: str(e, "id"), Title: title, Subtitle: when})
	}
	return items
}
