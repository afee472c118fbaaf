package gapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
)

// recorder captures the last call made through the Doer so tests can assert
// on method, URL and body without any network.
type recorder struct {
	method   string
	url      string
	body     any
	mimeType string
	data     []byte
}

func (r *recorder) record(method, url string, body any) (map[string]any, error) {
	r.method, r.url, r.body = method, url, body
	return map[string]any{"ok": true}, nil
}

func (r *recorder) Get(_ context.Context, url string) (map[string]any, error) {
	return r.record("GET", url, nil)
}
func (r *recorder) Post(_ context.Context, url string, body any) (map[string]any, error) {
	return r.record("POST", url, body)
}
func (r *recorder) PostEmpty(_ context.Context, url string) (map[string]any, error) {
	return r.record("POST", url, nil)
}
func (r *recorder) Put(_ context.Context, url string, body any) (map[string]any, error) {
	return r.record("PUT", url, body)
}
func (r *recorder) Patch(_ context.Context, url string, body any) (map[string]any, error) {
	return r.record("PATCH", url, body)
}
func (r *recorder) Delete(_ context.Context, url string) (map[string]any, error) {
	return r.record("DELETE", url, nil)
}
func (r *recorder) Upload(_ context.Context, url string, metadata any, data []byte, mimeType string) (map[string]any, error) {
	r.data, r.mimeType = data, mimeType
	return r.record("UPLOAD", url, metadata)
}
func (r *recorder) Download(_ context.Context, url string) ([]byte, error) {
	r.method, r.url = "GET", url
	return []byte("bytes"), nil
}

func bodyJSON(t *testing.T, body any) string {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return string(b)
}

func TestGmail_ListMessagesURL(t *testing.T) {
	r := &recorder{}
	g := NewGmail(r)

	if _, err := g.ListMessages(context.Background(), "is:unread", 25, "tok"); err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if r.method != "GET" {
		t.Fatalf("method = %q, want GET", r.method)
	}
	for _, want := range []string{"/gmail/v1/users/me/messages", "maxResults=25", "q=is%3Aunread", "pageToken=tok"} {
		if !strings.Contains(r.url, want) {
			t.Errorf("url %q missing %q", r.url, want)
		}
	}
}

func TestGmail_TrashUsesEmptyPost(t *testing.T) {
	r := &recorder{}
	g := NewGmail(r)

	if _, err := g.TrashMessage(context.Background(), "m1"); err != nil {
		t.Fatalf("trash: %v", err)
	}
	if r.method != "POST" || !strings.HasSuffix(r.url, "/messages/m1/trash") {
		t.Fatalf("got %s %s", r.method, r.url)
	}
	if r.body != nil {
		t.Fatalf("trash should carry no body, got %v", r.body)
	}
}

func TestBuildRawEmail_RoundTrips(t *testing.T) {
	raw := BuildRawEmail("a@example.com", "hi", "body text", "c@example.com", "")
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	msg := string(decoded)
	for _, want := range []string{"To: a@example.com\r\n", "Cc: c@example.com\r\n", "Subject: hi\r\n", "\r\n\r\nbody text"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Bcc:") {
		t.Errorf("empty bcc should be omitted:\n%s", msg)
	}
}

func TestCalendar_EscapesCalendarID(t *testing.T) {
	r := &recorder{}
	c := NewCalendar(r)

	if _, err := c.GetEvent(context.Background(), "team@group.calendar.google.com", "e1"); err != nil {
		t.Fatalf("get event: %v", err)
	}
	if !strings.Contains(r.url, "/calendars/team@group.calendar.google.com/events/e1") {
		t.Fatalf("url = %q", r.url)
	}
}

func TestDrive_ListFilesFieldsAndQuery(t *testing.T) {
	r := &recorder{}
	d := NewDrive(r)

	if _, err := d.ListFiles(context.Background(), "trashed=false", 50, "", "modifiedTime desc"); err != nil {
		t.Fatalf("list files: %v", err)
	}
	for _, want := range []string{"/drive/v3/files", "pageSize=50", "q=trashed%3Dfalse", "orderBy=modifiedTime+desc", "nextPageToken"} {
		if !strings.Contains(r.url, want) {
			t.Errorf("url %q missing %q", r.url, want)
		}
	}
}

func TestDrive_UploadUsesUploadEndpoint(t *testing.T) {
	r := &recorder{}
	d := NewDrive(r)

	meta := map[string]any{"name": "notes.txt"}
	if _, err := d.UploadFile(context.Background(), meta, []byte("hello"), "text/plain"); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if r.method != "UPLOAD" || !strings.Contains(r.url, "upload/drive/v3/files?uploadType=multipart") {
		t.Fatalf("got %s %s", r.method, r.url)
	}
	if string(r.data) != "hello" || r.mimeType != "text/plain" {
		t.Fatalf("payload not forwarded: %q %q", r.data, r.mimeType)
	}
}

func TestSheets_AppendEncodesRange(t *testing.T) {
	r := &recorder{}
	s := NewSheets(r)

	if _, err := s.AppendValues(context.Background(), "sid", "Sheet1!A1:B2", [][]any{{"x"}}, "USER_ENTERED"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if !strings.Contains(r.url, "/sid/values/Sheet1%21A1:B2:append") {
		t.Fatalf("url = %q", r.url)
	}
	if !strings.Contains(r.url, "valueInputOption=USER_ENTERED") {
		t.Fatalf("url = %q", r.url)
	}
}

func TestDocs_UpdateTextStyleFieldMask(t *testing.T) {
	r := &recorder{}
	d := NewDocs(r)

	bold := true
	if _, err := d.UpdateTextStyle(context.Background(), "doc1", 1, 5, &bold, nil, nil); err != nil {
		t.Fatalf("update style: %v", err)
	}
	got := bodyJSON(t, r.body)
	if !strings.Contains(got, `"fields":"bold"`) {
		t.Fatalf("body = %s", got)
	}
	if strings.Contains(got, "italic") || strings.Contains(got, "fontSize") {
		t.Fatalf("unset styles leaked into body: %s", got)
	}
}

func TestSlides_CreateSlideLayout(t *testing.T) {
	r := &recorder{}
	s := NewSlides(r)

	if _, err := s.CreateSlide(context.Background(), "p1", "TITLE_AND_BODY"); err != nil {
		t.Fatalf("create slide: %v", err)
	}
	if !strings.HasSuffix(r.url, "/presentations/p1:batchUpdate") {
		t.Fatalf("url = %q", r.url)
	}
	if got := bodyJSON(t, r.body); !strings.Contains(got, `"predefinedLayout":"TITLE_AND_BODY"`) {
		t.Fatalf("body = %s", got)
	}
}

func TestForms_AddChoiceQuestionOptions(t *testing.T) {
	r := &recorder{}
	f := NewForms(r)

	if _, err := f.AddChoiceQuestion(context.Background(), "f1", "Pick one", "RADIO", []string{"a", "b"}, true, 0); err != nil {
		t.Fatalf("add choice: %v", err)
	}
	got := bodyJSON(t, r.body)
	for _, want := range []string{`"type":"RADIO"`, `{"value":"a"}`, `{"value":"b"}`, `"required":true`} {
		if !strings.Contains(got, want) {
			t.Errorf("body %s missing %s", got, want)
		}
	}
}

func TestTasks_CompleteAndUncomplete(t *testing.T) {
	r := &recorder{}
	tk := NewTasks(r)

	if _, err := tk.CompleteTask(context.Background(), "l1", "t1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if r.method != "PATCH" || !strings.HasSuffix(r.url, "/lists/l1/tasks/t1") {
		t.Fatalf("got %s %s", r.method, r.url)
	}
	if got := bodyJSON(t, r.body); !strings.Contains(got, `"status":"completed"`) {
		t.Fatalf("body = %s", got)
	}

	if _, err := tk.UncompleteTask(context.Background(), "l1", "t1"); err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	got := bodyJSON(t, r.body)
	if !strings.Contains(got, `"status":"needsAction"`) || !strings.Contains(got, `"completed":null`) {
		t.Fatalf("body = %s", got)
	}
}

func TestPeople_SearchContactsReadMask(t *testing.T) {
	r := &recorder{}
	p := NewPeople(r)

	if _, err := p.SearchContacts(context.Background(), "ada", 10); err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, want := range []string{"people:searchContacts", "query=ada", "readMask=names%2CemailAddresses"} {
		if !strings.Contains(r.url, want) {
			t.Errorf("url %q missing %q", r.url, want)
		}
	}
}

func TestScript_MakeManifestIsNestedJSON(t *testing.T) {
	m := MakeManifest("America/New_York")
	if m["name"] != "appsscript" || m["type"] != "JSON" {
		t.Fatalf("manifest entry = %v", m)
	}
	var inner map[string]any
	if err := json.Unmarshal([]byte(m["source"].(string)), &inner); err != nil {
		t.Fatalf("manifest source is not JSON: %v", err)
	}
	if inner["timeZone"] != "America/New_York" {
		t.Fatalf("timeZone = %v", inner["timeZone"])
	}
}

func TestScript_RunOmitsEmptyParameters(t *testing.T) {
	r := &recorder{}
	s := NewScript(r)

	if _, err := s.Run(context.Background(), "sid", "main", nil, true); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasSuffix(r.url, "/scripts/sid:run") {
		t.Fatalf("url = %q", r.url)
	}
	got := bodyJSON(t, r.body)
	if strings.Contains(got, "parameters") {
		t.Fatalf("empty parameters should be omitted: %s", got)
	}
	if !strings.Contains(got, `"devMode":true`) {
		t.Fatalf("body = %s", got)
	}
}
