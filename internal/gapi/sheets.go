package gapi

import (
	"context"
	"fmt"
	"net/url"
)

const sheetsBase = "https://sheets.googleapis.com/v4/spreadsheets"

type Sheets struct {
	c Doer
}

func NewSheets(c Doer) Sheets { return Sheets{c: c} }

func (s Sheets) CreateSpreadsheet(ctx context.Context, title string) (map[string]any, error) {
	return s.c.Post(ctx, sheetsBase, map[string]any{
		"properties": map[string]any{"title": title},
	})
}

func (s Sheets) GetSpreadsheet(ctx context.Context, id string) (map[string]any, error) {
	return s.c.Get(ctx, fmt.Sprintf("%s/%s", sheetsBase, id))
}

func (s Sheets) GetValues(ctx context.Context, spreadsheetID, rng string) (map[string]any, error) {
	return s.c.Get(ctx, fmt.Sprintf("%s/%s/values/%s", sheetsBase, spreadsheetID, url.PathEscape(rng)))
}

func (s Sheets) UpdateValues(ctx context.Context, spreadsheetID, rng string, values any, inputOption string) (map[string]any, error) {
	u := fmt.Sprintf("%s/%s/values/%s?valueInputOption=%s", sheetsBase, spreadsheetID, url.PathEscape(rng), inputOption)
	return s.c.Put(ctx, u, map[string]any{"range": rng, "values": values})
}

func (s Sheets) AppendValues(ctx context.Context, spreadsheetID, rng string, values any, inputOption string) (map[string]any, error) {
	u := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=%s", sheetsBase, spreadsheetID, url.PathEscape(rng), inputOption)
	return s.c.Post(ctx, u, map[string]any{"values": values})
}

// BatchUpdate issues structural requests (add sheet, named ranges, sorts).
func (s Sheets) BatchUpdate(ctx context.Context, spreadsheetID string, requests []map[string]any) (map[string]any, error) {
	return s.c.Post(ctx, fmt.Sprintf("%s/%s:batchUpdate", sheetsBase, spreadsheetID), map[string]any{
		"requests": requests,
	})
}

func (s Sheets) AddSheet(ctx context.Context, spreadsheetID, title string) (map[string]any, error) {
	return s.BatchUpdate(ctx, spreadsheetID, []map[string]any{
		{"addSheet": map[string]any{"properties": map[string]any{"title": title}}},
	})
}

func (s Sheets) CreateNamedRange(ctx context.Context, spreadsheetID, name string, sheetID, startRow, endRow, startCol, endCol int64) (map[string]any, error) {
	return s.BatchUpdate(ctx, spreadsheetID, []map[string]any{
		{"addNamedRange": map[string]any{
			"namedRange": map[string]any{
				"name": name,
				"range": map[string]any{
					"sheetId":          sheetID,
					"startRowIndex":    startRow,
					"endRowIndex":      endRow,
					"startColumnIndex": startCol,
					"endColumnIndex":   endCol,
				},
			},
		}},
	})
}

func (s Sheets) SortRange(ctx context.Context, spreadsheetID string, sheetID, startRow, endRow, startCol, endCol, sortCol int64, ascending bool) (map[string]any, error) {
	order := "DESCENDING"
	if ascending {
		order = "ASCENDING"
	}
	return s.BatchUpdate(ctx, spreadsheetID, []map[string]any{
		{"sortRange": map[string]any{
			"range": map[string]any{
				"sheetId":          sheetID,
				"startRowIndex":    startRow,
				"endRowIndex":      endRow,
				"startColumnIndex": startCol,
				"endColumnIndex":   endCol,
			},
			"sortSpecs": []map[string]any{
				{"dimensionIndex": sortCol, "sortOrder": order},
			},
		}},
	})
}
