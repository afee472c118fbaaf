package gapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

const scriptBase = "https://script.googleapis.com/v1"

type Script struct {
	c Doer
}

func NewScript(c Doer) Script { return Script{c: c} }

func (s Script) CreateProject(ctx context.Context, title, parentID string) (map[string]any, error) {
	body := map[string]any{"title": title}
	if parentID != "" {
		body["parentId"] = parentID
	}
	return s.c.Post(ctx, scriptBase+"/projects", body)
}

func (s Script) GetProject(ctx context.Context, scriptID string) (map[string]any, error) {
	return s.c.Get(ctx, fmt.Sprintf("%s/projects/%s", scriptBase, scriptID))
}

func (s Script) GetContent(ctx context.Context, scriptID string) (map[string]any, error) {
	return s.c.Get(ctx, fmt.Sprintf("%s/projects/%s/content", scriptBase, scriptID))
}

func (s Script) UpdateContent(ctx context.Context, scriptID string, files []map[string]any) (map[string]any, error) {
	return s.c.Put(ctx, fmt.Sprintf("%s/projects/%s/content", scriptBase, scriptID), map[string]any{
		"scriptId": scriptID,
		"files":    files,
	})
}

func (s Script) ListVersions(ctx context.Context, scriptID string, pageSize int, pageToken string) (map[string]any, error) {
	v := url.Values{"pageSize": {strconv.Itoa(pageSize)}}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return s.c.Get(ctx, fmt.Sprintf("%s/projects/%s/versions%s", scriptBase, scriptID, query(v)))
}

func (s Script) CreateVersion(ctx context.Context, scriptID, description string) (map[string]any, error) {
	return s.c.Post(ctx, fmt.Sprintf("%s/projects/%s/versions", scriptBase, scriptID), map[string]any{
		"description": description,
	})
}

func (s Script) ListDeployments(ctx context.Context, scriptID string, pageSize int, pageToken string) (map[string]any, error) {
	v := url.Values{"pageSize": {strconv.Itoa(pageSize)}}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return s.c.Get(ctx, fmt.Sprintf("%s/projects/%s/deployments%s", scriptBase, scriptID, query(v)))
}

func (s Script) CreateDeployment(ctx context.Context, scriptID string, versionNumber int64, description string) (map[string]any, error) {
	return s.c.Post(ctx, fmt.Sprintf("%s/projects/%s/deployments", scriptBase, scriptID), map[string]any{
		"versionNumber":    versionNumber,
		"manifestFileName": "appsscript",
		"description":      description,
	})
}

func (s Script) DeleteDeployment(ctx context.Context, scriptID, deploymentID string) (map[string]any, error) {
	return s.c.Delete(ctx, fmt.Sprintf("%s/projects/%s/deployments/%s", scriptBase, scriptID, deploymentID))
}

// Run executes a function in a deployed project via the Execution API.
func (s Script) Run(ctx context.Context, scriptID, function string, parameters []any, devMode bool) (map[string]any, error) {
	body := map[string]any{
		"function": function,
		"devMode":  devMode,
	}
	if len(parameters) > 0 {
		body["parameters"] = parameters
	}
	return s.c.Post(ctx, fmt.Sprintf("%s/scripts/%s:run", scriptBase, scriptID), body)
}

func (s Script) ListProcesses(ctx context.Context, pageSize int, pageToken string) (map[string]any, error) {
	v := url.Values{"pageSize": {strconv.Itoa(pageSize)}}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return s.c.Get(ctx, scriptBase+"/processes"+query(v))
}

// MakeServerJSFile wraps a code string in the file shape update-content
// expects.
func MakeServerJSFile(name, source string) map[string]any {
	return map[string]any{"name": name, "type": "SERVER_JS", "source": source}
}

// MakeManifest builds the appsscript.json manifest file entry.
func MakeManifest(timezone string) map[string]any {
	src, _ := json.Marshal(map[string]any{
		"timeZone":         timezone,
		"dependencies":     map[string]any{},
		"exceptionLogging": "STACKDRIVER",
	})
	return map[string]any{"name": "appsscript", "type": "JSON", "source": string(src)}
}
