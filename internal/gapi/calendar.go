package gapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const calendarBase = "https://www.googleapis.com/calendar/v3"

type Calendar struct {
	c Doer
}

func NewCalendar(c Doer) Calendar { return Calendar{c: c} }

func (a Calendar) ListCalendars(ctx context.Context, pageToken string) (map[string]any, error) {
	v := url.Values{}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return a.c.Get(ctx, calendarBase+"/users/me/calendarList"+query(v))
}

func (a Calendar) ListEvents(ctx context.Context, calendarID, timeMin, timeMax string, maxResults int, singleEvents bool, orderBy string) (map[string]any, error) {
	v := url.Values{"maxResults": {strconv.Itoa(maxResults)}}
	if timeMin != "" {
		v.Set("timeMin", timeMin)
	}
	if timeMax != "" {
		v.Set("timeMax", timeMax)
	}
	if singleEvents {
		v.Set("singleEvents", "true")
	}
	if orderBy != "" {
		v.Set("orderBy", orderBy)
	}
	return a.c.Get(ctx, fmt.Sprintf("%s/calendars/%s/events%s", calendarBase, url.PathEscape(calendarID), query(v)))
}

func (a Calendar) GetEvent(ctx context.Context, calendarID, eventID string) (map[string]any, error) {
	return a.c.Get(ctx, fmt.Sprintf("%s/calendars/%s/events/%s", calendarBase, url.PathEscape(calendarID), eventID))
}

func (a Calendar) CreateEvent(ctx context.Context, calendarID string, event map[string]any) (map[string]any, error) {
	return a.c.Post(ctx, fmt.Sprintf("%s/calendars/%s/events", calendarBase, url.PathEscape(calendarID)), event)
}

func (a Calendar) DeleteEvent(ctx context.Context, calendarID, eventID string) (map[string]any, error) {
	return a.c.Delete(ctx, fmt.Sprintf("%s/calendars/%s/events/%s", calendarBase, url.PathEscape(calendarID), eventID))
}

func (a Calendar) QuickAddEvent(ctx context.Context, calendarID, text string) (map[string]any, error) {
	v := url.Values{"text": {text}}
	return a.c.PostEmpty(ctx, fmt.Sprintf("%s/calendars/%s/events/quickAdd%s", calendarBase, url.PathEscape(calendarID), query(v)))
}

func (a Calendar) ListACL(ctx context.Context, calendarID string) (map[string]any, error) {
	return a.c.Get(ctx, fmt.Sprintf("%s/calendars/%s/acl", calendarBase, url.PathEscape(calendarID)))
}

func (a Calendar) ListSettings(ctx context.Context) (map[string]any, error) {
	return a.c.Get(ctx, calendarBase+"/users/me/settings")
}

func (a Calendar) QueryFreeBusy(ctx context.Context, body map[string]any) (map[string]any, error) {
	return a.c.Post(ctx, calendarBase+"/freeBusy", body)
}
