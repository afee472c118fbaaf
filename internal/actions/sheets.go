package actions

import (
	"context"
	"fmt"

	"github.com/gwork/gwork-cli/internal/nav"
)

var sheetsService = service{
	name: "Sheets",
	actions: []Action{
		{Name: "Open Sheet", Run: driveList("mimeType='application/vnd.google-apps.spreadsheet' and trashed=false", "modifiedTime desc")},
		{
			Name:   "Create Sheet",
			Fields: []nav.Field{field("Spreadsheet Title", "New Spreadsheet", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.sheets.CreateSpreadsheet(ctx, fieldVal(st, 0))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "spreadsheet created: " + str(val, "spreadsheetId"), nil
			},
		},
		{
			Name: "Read Range",
			Fields: []nav.Field{
				field("Spreadsheet ID", "paste spreadsheet ID", true),
				field("Range", "Sheet1!A1:Z100", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.sheets.GetValues(ctx, fieldVal(st, 0), fieldVal(st, 1))
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "values loaded", nil
			},
		},
		{
			Name: "Write Range",
			Fields: []nav.Field{
				field("Spreadsheet ID", "paste spreadsheet ID", true),
				field("Range", "Sheet1!A1", true),
				multilineField("Values (JSON array)", `[["a","b"],["c","d"]]`, true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				values := jsonVal(st, 2)
				if values == nil {
					return "values must be a JSON array", nil
				}
				if _, err := d.sheets.UpdateValues(ctx, fieldVal(st, 0), fieldVal(st, 1), values, "USER_ENTERED"); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "values written", nil
			},
		},
		{
			Name: "Append Data",
			Fields: []nav.Field{
				field("Spreadsheet ID", "paste spreadsheet ID", true),
				field("Range", "Sheet1!A1", true),
				multilineField("Values (JSON array)", `[["new","row"]]`, true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				values := jsonVal(st, 2)
				if values == nil {
					return "values must be a JSON array", nil
				}
				if _, err := d.sheets.AppendValues(ctx, fieldVal(st, 0), fieldVal(st, 1), values, "USER_ENTERED"); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "data appended", nil
			},
		},
		{
			Name: "Manage Sheets",
			Fields: []nav.Field{
				field("Spreadsheet ID", "paste spreadsheet ID", true),
				field("New Sheet Title", "Sheet2", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				title := fieldVal(st, 1)
				if _, err := d.sheets.AddSheet(ctx, fieldVal(st, 0), title); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return fmt.Sprintf("sheet %q added", title), nil
			},
		},
		{
			Name: "Named Ranges",
			Fields: []nav.Field{
				field("Spreadsheet ID", "paste spreadsheet ID", true),
				field("Range Name", "MyRange", true),
				field("Sheet ID (number)", "0", true),
				field("Start Row", "0", true),
				field("End Row", "10", true),
				field("Start Col", "0", true),
				field("End Col", "5", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.sheets.CreateNamedRange(ctx, fieldVal(st, 0), fieldVal(st, 1),
					intVal(st, 2, 0), intVal(st, 3, 0), intVal(st, 4, 10), intVal(st, 5, 0), intVal(st, 6, 5))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "named range created", nil
			},
		},
		{
			Name: "Sort",
			Fields: []nav.Field{
				field("Spreadsheet ID", "paste spreadsheet ID", true),
				field("Sheet ID (number)", "0", true),
				field("Sort Column Index", "0", true),
				field("Ascending (true/false)", "true", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.sheets.SortRange(ctx, fieldVal(st, 0),
					intVal(st, 1, 0), 0, 1000, 0, 26, intVal(st, 2, 0), boolVal(st, 3, true))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "range sorted", nil
			},
		},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		val, err := d.sheets.GetSpreadsheet(ctx, it.ID)
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "spreadsheet loaded", nil
	},
}
