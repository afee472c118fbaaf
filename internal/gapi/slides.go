package gapi

import (
	"context"
	"fmt"
)

const slidesBase = "https://slides.googleapis.com/v1/presentations"

type Slides struct {
	c Doer
}

func NewSlides(c Doer) Slides { return Slides{c: c} }

func (s Slides) CreatePresentation(ctx context.Context, title string) (map[string]any, error) {
	return s.c.Post(ctx, slidesBase, map[string]any{"title": title})
}

func (s Slides) GetPresentation(ctx context.Context, id string) (map[string]any, error) {
	return s.c.Get(ctx, fmt.Sprintf("%s/%s", slidesBase, id))
}

func (s Slides) GetPage(ctx context.Context, presentationID, pageID string) (map[string]any, error) {
	return s.c.Get(ctx, fmt.Sprintf("%s/%s/pages/%s", slidesBase, presentationID, pageID))
}

func (s Slides) batchUpdate(ctx context.Context, presentationID string, requests []map[string]any) (map[string]any, error) {
	return s.c.Post(ctx, fmt.Sprintf("%s/%s:batchUpdate", slidesBase, presentationID), map[string]any{
		"requests": requests,
	})
}

func (s Slides) CreateSlide(ctx context.Context, presentationID, layout string) (map[string]any, error) {
	req := map[string]any{"createSlide": map[string]any{}}
	if layout != "" {
		req["createSlide"] = map[string]any{
			"slideLayoutReference": map[string]any{"predefinedLayout": layout},
		}
	}
	return s.batchUpdate(ctx, presentationID, []map[string]any{req})
}

func (s Slides) DeleteSlide(ctx context.Context, presentationID, slideID string) (map[string]any, error) {
	return s.batchUpdate(ctx, presentationID, []map[string]any{
		{"deleteObject": map[string]any{"objectId": slideID}},
	})
}

func (s Slides) DuplicateSlide(ctx context.Context, presentationID, slideID string) (map[string]any, error) {
	return s.batchUpdate(ctx, presentationID, []map[string]any{
		{"duplicateObject": map[string]any{"objectId": slideID}},
	})
}

func (s Slides) MoveSlide(ctx context.Context, presentationID, slideID string, newIndex int64) (map[string]any, error) {
	return s.batchUpdate(ctx, presentationID, []map[string]any{
		{"updateSlidesPosition": map[string]any{
			"slideObjectIds": []string{slideID},
			"insertionIndex": newIndex,
		}},
	})
}

func (s Slides) InsertText(ctx context.Context, presentationID, objectID, text string) (map[string]any, error) {
	return s.batchUpdate(ctx, presentationID, []map[string]any{
		{"insertText": map[string]any{
			"objectId":       objectID,
			"text":           text,
			"insertionIndex": 0,
		}},
	})
}

func (s Slides) ReplaceAllText(ctx context.Context, presentationID, find, replace string, matchCase bool) (map[string]any, error) {
	return s.batchUpdate(ctx, presentationID, []map[string]any{
		{"replaceAllText": map[string]any{
			"containsText": map[string]any{"text": find, "matchCase": matchCase},
			"replaceText":  replace,
		}},
	})
}

func (s Slides) CreateShape(ctx context.Context, presentationID, pageID, shapeType string, w, h, x, y float64) (map[string]any, error) {
	return s.batchUpdate(ctx, presentationID, []map[string]any{
		{"createShape": map[string]any{
			"shapeType": shapeType,
			"elementProperties": map[string]any{
				"pageObjectId": pageID,
				"size": map[string]any{
					"width":  map[string]any{"magnitude": w, "unit": "PT"},
					"height": map[string]any{"magnitude": h, "unit": "PT"},
				},
				"transform": map[string]any{
					"scaleX":     1,
					"scaleY":     1,
					"translateX": x,
					"translateY": y,
					"unit":       "PT",
				},
			},
		}},
	})
}

func (s Slides) CreateImage(ctx context.Context, presentationID, pageID, imageURL string, w, h, x, y float64) (map[string]any, error) {
	return s.batchUpdate(ctx, presentationID, []map[string]any{
		{"createImage": map[string]any{
			"url": imageURL,
			"elementProperties": map[string]any{
				"pageObjectId": pageID,
				"size": map[string]any{
					"width":  map[string]any{"magnitude": w, "unit": "PT"},
					"height": map[string]any{"magnitude": h, "unit": "PT"},
				},
				"transform": map[string]any{
					"scaleX":     1,
					"scaleY":     1,
					"translateX": x,
					"translateY": y,
					"unit":       "PT",
				},
			},
		}},
	})
}

func (s Slides) CreateTable(ctx context.Context, presentationID, pageID string, rows, cols int64) (map[string]any, error) {
	return s.batchUpdate(ctx, presentationID, []map[string]any{
		{"createTable": map[string]any{
			"elementProperties": map[string]any{"pageObjectId": pageID},
			"rows":              rows,
			"columns":           cols,
		}},
	})
}

func (s Slides) CreateSpeakerNotes(ctx context.Context, presentationID, notesObjectID, text string) (map[string]any, error) {
	return s.batchUpdate(ctx, presentationID, []map[string]any{
		{"insertText": map[string]any{
			"objectId":       notesObjectID,
			"text":           text,
			"insertionIndex": 0,
		}},
	})
}
