package actions

import (
	"context"

	"github.com/gwork/gwork-cli/internal/nav"
)

var docsService = service{
	name: "Docs",
	actions: []Action{
		{Name: "Open Doc", Run: driveList("mimeType='application/vnd.google-apps.document' and trashed=false", "modifiedTime desc")},
		{
			Name:   "Create Doc",
			Fields: []nav.Field{field("Document Title", "New Document", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.docs.CreateDocument(ctx, fieldVal(st, 0))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "document created: " + str(val, "documentId"), nil
			},
		},
		{
			Name: "Insert Text",
			Fields: []nav.Field{
				field("Document ID", "paste doc ID", true),
				multilineField("Text", "Hello, World!", true),
				field("Insert at index", "1", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.docs.InsertText(ctx, fieldVal(st, 0), st.Fields[1].Value, intVal(st, 2, 1)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "text inserted", nil
			},
		},
		{
			Name: "Replace Text",
			Fields: []nav.Field{
				field("Document ID", "paste doc ID", true),
				field("Find", "old text", true),
				field("Replace With", "new text", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.docs.ReplaceAllText(ctx, fieldVal(st, 0), fieldVal(st, 1), fieldVal(st, 2), true); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "text replaced", nil
			},
		},
		{
			Name: "Formatting",
			Fields: []nav.Field{
				field("Document ID", "paste doc ID", true),
				field("Start Index", "1", true),
				field("End Index", "10", true),
				field("Bold (true/false)", "true", false),
				field("Italic (true/false)", "", false),
				field("Font Size (pt)", "", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				var bold, italic *bool
				var fontSize *int64
				if v := fieldVal(st, 3); v != "" {
					b := v == "true"
					bold = &b
				}
				if v := fieldVal(st, 4); v != "" {
					b := v == "true"
					italic = &b
				}
				if v := fieldVal(st, 5); v != "" {
					n := intVal(st, 5, 0)
					fontSize = &n
				}
				_, err := d.docs.UpdateTextStyle(ctx, fieldVal(st, 0), intVal(st, 1, 1), intVal(st, 2, 10), bold, italic, fontSize)
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "formatting applied", nil
			},
		},
		{
			Name: "Headers/Footers",
			Fields: []nav.Field{
				field("Document ID", "paste doc ID", true),
				field("Type (header/footer)", "header", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				docID := fieldVal(st, 0)
				if fieldVal(st, 1) == "footer" {
					if _, err := d.docs.CreateFooter(ctx, docID); err != nil {
						return "", err
					}
					st.ReturnToActions()
					return "footer created", nil
				}
				if _, err := d.docs.CreateHeader(ctx, docID); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "header created", nil
			},
		},
		{
			Name: "Tables",
			Fields: []nav.Field{
				field("Document ID", "paste doc ID", true),
				field("Rows", "3", true),
				field("Columns", "3", true),
				field("Insert at index", "1", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.docs.InsertTable(ctx, fieldVal(st, 0), intVal(st, 1, 3), intVal(st, 2, 3), intVal(st, 3, 1))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "table inserted", nil
			},
		},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		val, err := d.docs.GetDocument(ctx, it.ID)
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "document loaded", nil
	},
}
