package gapi

import (
	"context"
	"fmt"
	"strings"
)

const docsBase = "https://docs.googleapis.com/v1/documents"

type Docs struct {
	c Doer
}

func NewDocs(c Doer) Docs { return Docs{c: c} }

func (d Docs) CreateDocument(ctx context.Context, title string) (map[string]any, error) {
	return d.c.Post(ctx, docsBase, map[string]any{"title": title})
}

func (d Docs) GetDocument(ctx context.Context, id string) (map[string]any, error) {
	return d.c.Get(ctx, fmt.Sprintf("%s/%s", docsBase, id))
}

func (d Docs) batchUpdate(ctx context.Context, documentID string, requests []map[string]any) (map[string]any, error) {
	return d.c.Post(ctx, fmt.Sprintf("%s/%s:batchUpdate", docsBase, documentID), map[string]any{
		"requests": requests,
	})
}

func (d Docs) InsertText(ctx context.Context, documentID, text string, index int64) (map[string]any, error) {
	return d.batchUpdate(ctx, documentID, []map[string]any{
		{"insertText": map[string]any{
			"location": map[string]any{"index": index},
			"text":     text,
		}},
	})
}

func (d Docs) ReplaceAllText(ctx context.Context, documentID, find, replace string, matchCase bool) (map[string]any, error) {
	return d.batchUpdate(ctx, documentID, []map[string]any{
		{"replaceAllText": map[string]any{
			"containsText": map[string]any{"text": find, "matchCase": matchCase},
			"replaceText":  replace,
		}},
	})
}

// UpdateTextStyle applies optional bold/italic/font-size over a range; nil
// options are left untouched.
func (d Docs) UpdateTextStyle(ctx context.Context, documentID string, start, end int64, bold, italic *bool, fontSize *int64) (map[string]any, error) {
	style := map[string]any{}
	fields := []string{}
	if bold != nil {
		style["bold"] = *bold
		fields = append(fields, "bold")
	}
	if italic != nil {
		style["italic"] = *italic
		fields = append(fields, "italic")
	}
	if fontSize != nil {
		style["fontSize"] = map[string]any{"magnitude": *fontSize, "unit": "PT"}
		fields = append(fields, "fontSize")
	}
	mask := strings.Join(fields, ",")
	if mask == "" {
		mask = "*"
	}
	return d.batchUpdate(ctx, documentID, []map[string]any{
		{"updateTextStyle": map[string]any{
			"range":     map[string]any{"startIndex": start, "endIndex": end},
			"textStyle": style,
			"fields":    mask,
		}},
	})
}

func (d Docs) CreateHeader(ctx context.Context, documentID string) (map[string]any, error) {
	return d.batchUpdate(ctx, documentID, []map[string]any{
		{"createHeader": map[string]any{"type": "DEFAULT"}},
	})
}

func (d Docs) CreateFooter(ctx context.Context, documentID string) (map[string]any, error) {
	return d.batchUpdate(ctx, documentID, []map[string]any{
		{"createFooter": map[string]any{"type": "DEFAULT"}},
	})
}

func (d Docs) InsertTable(ctx context.Context, documentID string, rows, cols, index int64) (map[string]any, error) {
	return d.batchUpdate(ctx, documentID, []map[string]any{
		{"insertTable": map[string]any{
			"rows":     rows,
			"columns":  cols,
			"location": map[string]any{"index": index},
		}},
	})
}
