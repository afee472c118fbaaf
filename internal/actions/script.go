package actions

import (
	"context"
	"fmt"

	"github.com/gwork/gwork-cli/internal/gapi"
	"github.com/gwork/gwork-cli/internal/nav"
)

var scriptService = service{
	name: "Apps Script",
	actions: []Action{
		{Name: "Projects", Run: driveList("mimeType='application/vnd.google-apps.script' and trashed=false", "modifiedTime desc")},
		{
			Name: "Create Project",
			Fields: []nav.Field{
				field("Project Title", "My Script", true),
				field("Parent Doc ID (optional)", "", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.script.CreateProject(ctx, fieldVal(st, 0), fieldVal(st, 1))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "project created: " + str(val, "scriptId"), nil
			},
		},
		{
			Name: "Edit Code",
			Fields: []nav.Field{
				field("Script ID", "paste script ID", true),
				field("File Name", "Code", true),
				multilineField("Source Code", "function main() { Logger.log('Hello'); }", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				files := []map[string]any{
					gapi.MakeServerJSFile(fieldVal(st, 1), st.Fields[2].Value),
					gapi.MakeManifest("America/New_York"),
				}
				if _, err := d.script.UpdateContent(ctx, fieldVal(st, 0), files); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "code updated", nil
			},
		},
		{
			Name:   "Versions",
			Fields: []nav.Field{field("Script ID", "paste script ID", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.script.ListVersions(ctx, fieldVal(st, 0), 20, "")
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "versions loaded", nil
			},
		},
		{
			Name:   "Deployments",
			Fields: []nav.Field{field("Script ID", "paste script ID", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.script.ListDeployments(ctx, fieldVal(st, 0), 20, "")
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "deployments loaded", nil
			},
		},
		{
			Name: "Run Function",
			Fields: []nav.Field{
				field("Script ID", "paste script ID", true),
				field("Function Name", "main", true),
				field("Parameters (JSON array)", "[]", false),
				field("Dev Mode (true/false)", "true", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				var params []any
				if v, ok := jsonVal(st, 2).([]any); ok {
					params = v
				}
				val, err := d.script.Run(ctx, fieldVal(st, 0), fieldVal(st, 1), params, boolVal(st, 3, true))
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "function executed", nil
			},
		},
		{Name: "Processes", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.script.ListProcesses(ctx, 20, "")
			if err != nil {
				return "", err
			}
			st.ShowItems(nil, "")
			st.ShowDetail(detailJSON(val))
			return "processes loaded", nil
		}},
		{
			Name:   "View Code",
			Fields: []nav.Field{field("Script ID", "paste script ID", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.script.GetContent(ctx, fieldVal(st, 0))
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "project content loaded", nil
			},
		},
		{
			Name: "New Version",
			Fields: []nav.Field{
				field("Script ID", "paste script ID", true),
				field("Description", "Stable checkpoint", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.script.CreateVersion(ctx, fieldVal(st, 0), fieldVal(st, 1))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return fmt.Sprintf("version %v created", val["versionNumber"]), nil
			},
		},
		{
			Name: "Deploy",
			Fields: []nav.Field{
				field("Script ID", "paste script ID", true),
				field("Version Number", "1", true),
				field("Description", "Production", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.script.CreateDeployment(ctx, fieldVal(st, 0), intVal(st, 1, 1), fieldVal(st, 2))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "deployed: " + str(val, "deploymentId"), nil
			},
		},
		{
			Name: "Delete Deployment",
			Fields: []nav.Field{
				field("Script ID", "paste script ID", true),
				field("Deployment ID", "paste deployment ID", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.script.DeleteDeployment(ctx, fieldVal(st, 0), fieldVal(st, 1)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "deployment deleted", nil
			},
		},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		val, err := d.script.GetProject(ctx, it.ID)
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "project loaded", nil
	},
}
