package actions

import (
	"context"

	"github.com/gwork/gwork-cli/internal/nav"
)

var slidesService = service{
	name: "Slides",
	actions: []Action{
		{Name: "Open Presentation", Run: driveList("mimeType='application/vnd.google-apps.presentation' and trashed=false", "modifiedTime desc")},
		{
			Name:   "Create Presentation",
			Fields: []nav.Field{field("Presentation Title", "New Presentation", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.slides.CreatePresentation(ctx, fieldVal(st, 0))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "presentation created: " + str(val, "presentationId"), nil
			},
		},
		{
			Name: "Add Slide",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Layout", "BLANK", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.slides.CreateSlide(ctx, fieldVal(st, 0), fieldVal(st, 1)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "slide added", nil
			},
		},
		{
			Name: "Edit Text",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Find Text", "placeholder", true),
				field("Replace With", "actual text", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.slides.ReplaceAllText(ctx, fieldVal(st, 0), fieldVal(st, 1), fieldVal(st, 2), true); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "text replaced", nil
			},
		},
		{
			Name: "Shapes",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Page/Slide ID", "page ID", true),
				field("Shape Type", "TEXT_BOX", true),
				field("X (pt)", "100", true),
				field("Y (pt)", "100", true),
				field("Width (pt)", "300", true),
				field("Height (pt)", "100", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.slides.CreateShape(ctx, fieldVal(st, 0), fieldVal(st, 1), fieldVal(st, 2),
					floatVal(st, 5, 300), floatVal(st, 6, 100), floatVal(st, 3, 100), floatVal(st, 4, 100))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "shape created", nil
			},
		},
		{
			Name: "Images",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Page/Slide ID", "page ID", true),
				field("Image URL", "https://example.com/img.png", true),
				field("X (pt)", "100", true),
				field("Y (pt)", "100", true),
				field("Width (pt)", "300", true),
				field("Height (pt)", "200", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.slides.CreateImage(ctx, fieldVal(st, 0), fieldVal(st, 1), fieldVal(st, 2),
					floatVal(st, 5, 300), floatVal(st, 6, 200), floatVal(st, 3, 100), floatVal(st, 4, 100))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "image inserted", nil
			},
		},
		{
			Name: "Tables",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Page/Slide ID", "page ID", true),
				field("Rows", "3", true),
				field("Columns", "3", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.slides.CreateTable(ctx, fieldVal(st, 0), fieldVal(st, 1), intVal(st, 2, 3), intVal(st, 3, 3))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "table created", nil
			},
		},
		{
			Name: "Notes",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Notes Object ID", "notes object ID", true),
				multilineField("Notes Text", "Speaker notes here", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.slides.CreateSpeakerNotes(ctx, fieldVal(st, 0), fieldVal(st, 1), st.Fields[2].Value); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "speaker notes added", nil
			},
		},
		{
			Name: "View Slide",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Page/Slide ID", "page ID", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.slides.GetPage(ctx, fieldVal(st, 0), fieldVal(st, 1))
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "slide loaded", nil
			},
		},
		{
			Name: "Delete Slide",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Slide ID", "slide ID", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.slides.DeleteSlide(ctx, fieldVal(st, 0), fieldVal(st, 1)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "slide deleted", nil
			},
		},
		{
			Name: "Duplicate Slide",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Slide ID", "slide ID", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.slides.DuplicateSlide(ctx, fieldVal(st, 0), fieldVal(st, 1)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "slide duplicated", nil
			},
		},
		{
			Name: "Move Slide",
			Fields: []nav.Field{
				field("Presentation ID", "paste ID", true),
				field("Slide ID", "slide ID", true),
				field("New Index", "0", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.slides.MoveSlide(ctx, fieldVal(st, 0), fieldVal(st, 1), intVal(st, 2, 0)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "slide moved", nil
			},
		},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		val, err := d.slides.GetPresentation(ctx, it.ID)
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "presentation loaded", nil
	},
}
