package actions

import (
	"context"

	"github.com/gwork/gwork-cli/internal/nav"
)

var formsService = service{
	name: "Forms",
	actions: []Action{
		{Name: "Open Form", Run: driveList("mimeType='application/vnd.google-apps.form' and trashed=false", "modifiedTime desc")},
		{
			Name: "Create Form",
			Fields: []nav.Field{
				field("Form Title", "New Form", true),
				field("Document Title", "My Survey", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.forms.CreateForm(ctx, fieldVal(st, 0), fieldVal(st, 1))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "form created: " + str(val, "formId"), nil
			},
		},
		{
			Name: "Add Question",
			Fields: []nav.Field{
				field("Form ID", "paste form ID", true),
				field("Question Title", "Your question here", true),
				field("Type (text/choice/scale/date/time)", "text", true),
				field("Required (true/false)", "true", true),
				field("Options (comma-sep, for choice)", "Option A,Option B,Option C", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				formID, title := fieldVal(st, 0), fieldVal(st, 1)
				required := boolVal(st, 3, true)
				var err error
				switch fieldVal(st, 2) {
				case "choice":
					_, err = d.forms.AddChoiceQuestion(ctx, formID, title, "RADIO", splitComma(fieldVal(st, 4)), required, 0)
				case "scale":
					_, err = d.forms.AddScaleQuestion(ctx, formID, title, 1, 5, "Low", "High", 0)
				case "date":
					_, err = d.forms.AddDateQuestion(ctx, formID, title, required, 0)
				case "time":
					_, err = d.forms.AddTimeQuestion(ctx, formID, title, required, 0)
				default:
					_, err = d.forms.AddTextQuestion(ctx, formID, title, false, required, 0)
				}
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "question added", nil
			},
		},
		{
			Name:   "Responses",
			Fields: []nav.Field{field("Form ID", "paste form ID", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.forms.ListResponses(ctx, fieldVal(st, 0), 50, "")
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "responses loaded", nil
			},
		},
		{
			Name:   "Watches",
			Fields: []nav.Field{field("Form ID", "paste form ID", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.forms.ListWatches(ctx, fieldVal(st, 0))
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "watches loaded", nil
			},
		},
		{
			Name: "Settings",
			Fields: []nav.Field{
				field("Form ID", "paste form ID", true),
				field("Title", "", false),
				field("Description", "", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.forms.UpdateFormInfo(ctx, fieldVal(st, 0), fieldVal(st, 1), fieldVal(st, 2)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "form info updated", nil
			},
		},
		{
			Name: "Grid Questions",
			Fields: []nav.Field{
				field("Form ID", "paste form ID", true),
				field("Title", "Rate the following", true),
				field("Rows (comma-sep)", "Quality,Speed,Price", true),
				field("Columns (comma-sep)", "1,2,3,4,5", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.forms.AddGridQuestion(ctx, fieldVal(st, 0), fieldVal(st, 1),
					splitComma(fieldVal(st, 2)), splitComma(fieldVal(st, 3)), 0)
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "grid question added", nil
			},
		},
		{
			Name: "View Response",
			Fields: []nav.Field{
				field("Form ID", "paste form ID", true),
				field("Response ID", "paste response ID", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.forms.GetResponse(ctx, fieldVal(st, 0), fieldVal(st, 1))
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "response loaded", nil
			},
		},
		{
			Name: "Add Section",
			Fields: []nav.Field{
				field("Form ID", "paste form ID", true),
				field("Section Title", "Part Two", true),
				field("Description", "", false),
				field("Index", "0", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.forms.AddSectionHeader(ctx, fieldVal(st, 0), fieldVal(st, 1), fieldVal(st, 2), intVal(st, 3, 0))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "section added", nil
			},
		},
		{
			Name: "Delete Item",
			Fields: []nav.Field{
				field("Form ID", "paste form ID", true),
				field("Item Index", "0", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.forms.DeleteItem(ctx, fieldVal(st, 0), intVal(st, 1, 0)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "item deleted", nil
			},
		},
		{
			Name: "Move Item",
			Fields: []nav.Field{
				field("Form ID", "paste form ID", true),
				field("From Index", "0", true),
				field("To Index", "1", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.forms.MoveItem(ctx, fieldVal(st, 0), intVal(st, 1, 0), intVal(st, 2, 0)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "item moved", nil
			},
		},
		{
			Name: "Quiz Mode",
			Fields: []nav.Field{
				field("Form ID", "paste form ID", true),
				field("Quiz (true/false)", "true", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				quiz := boolVal(st, 1, true)
				if _, err := d.forms.UpdateSettings(ctx, fieldVal(st, 0), quiz); err != nil {
					return "", err
				}
				st.ReturnToActions()
				if quiz {
					return "quiz mode enabled", nil
				}
				return "quiz mode disabled", nil
			},
		},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		val, err := d.forms.GetForm(ctx, it.ID)
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "form loaded", nil
	},
}
