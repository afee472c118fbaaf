package gapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const formsBase = "https://forms.googleapis.com/v1/forms"

type Forms struct {
	c Doer
}

func NewForms(c Doer) Forms { return Forms{c: c} }

func (f Forms) CreateForm(ctx context.Context, title, documentTitle string) (map[string]any, error) {
	return f.c.Post(ctx, formsBase, map[string]any{
		"info": map[string]any{"title": title, "documentTitle": documentTitle},
	})
}

func (f Forms) GetForm(ctx context.Context, formID string) (map[string]any, error) {
	return f.c.Get(ctx, fmt.Sprintf("%s/%s", formsBase, formID))
}

func (f Forms) batchUpdate(ctx context.Context, formID string, requests []map[string]any) (map[string]any, error) {
	return f.c.Post(ctx, fmt.Sprintf("%s/%s:batchUpdate", formsBase, formID), map[string]any{
		"requests": requests,
	})
}

func (f Forms) ListResponses(ctx context.Context, formID string, pageSize int, pageToken string) (map[string]any, error) {
	v := url.Values{"pageSize": {strconv.Itoa(pageSize)}}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return f.c.Get(ctx, fmt.Sprintf("%s/%s/responses%s", formsBase, formID, query(v)))
}

func (f Forms) GetResponse(ctx context.Context, formID, responseID string) (map[string]any, error) {
	return f.c.Get(ctx, fmt.Sprintf("%s/%s/responses/%s", formsBase, formID, responseID))
}

func (f Forms) ListWatches(ctx context.Context, formID string) (map[string]any, error) {
	return f.c.Get(ctx, fmt.Sprintf("%s/%s/watches", formsBase, formID))
}

// AddTextQuestion appends a short-answer or paragraph question at the given
// index.
func (f Forms) AddTextQuestion(ctx context.Context, formID, title string, paragraph, required bool, index int64) (map[string]any, error) {
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"createItem": map[string]any{
			"item": map[string]any{
				"title": title,
				"questionItem": map[string]any{
					"question": map[string]any{
						"required":     required,
						"textQuestion": map[string]any{"paragraph": paragraph},
					},
				},
			},
			"location": map[string]any{"index": index},
		}},
	})
}

func (f Forms) AddChoiceQuestion(ctx context.Context, formID, title, choiceType string, options []string, required bool, index int64) (map[string]any, error) {
	opts := make([]map[string]any, 0, len(options))
	for _, o := range options {
		opts = append(opts, map[string]any{"value": o})
	}
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"createItem": map[string]any{
			"item": map[string]any{
				"title": title,
				"questionItem": map[string]any{
					"question": map[string]any{
						"required": required,
						"choiceQuestion": map[string]any{
							"type":    choiceType,
							"options": opts,
						},
					},
				},
			},
			"location": map[string]any{"index": index},
		}},
	})
}

func (f Forms) AddScaleQuestion(ctx context.Context, formID, title string, low, high int64, lowLabel, highLabel string, index int64) (map[string]any, error) {
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"createItem": map[string]any{
			"item": map[string]any{
				"title": title,
				"questionItem": map[string]any{
					"question": map[string]any{
						"scaleQuestion": map[string]any{
							"low":       low,
							"high":      high,
							"lowLabel":  lowLabel,
							"highLabel": highLabel,
						},
					},
				},
			},
			"location": map[string]any{"index": index},
		}},
	})
}

func (f Forms) AddDateQuestion(ctx context.Context, formID, title string, required bool, index int64) (map[string]any, error) {
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"createItem": map[string]any{
			"item": map[string]any{
				"title": title,
				"questionItem": map[string]any{
					"question": map[string]any{
						"required":     required,
						"dateQuestion": map[string]any{"includeYear": true},
					},
				},
			},
			"location": map[string]any{"index": index},
		}},
	})
}

func (f Forms) AddTimeQuestion(ctx context.Context, formID, title string, required bool, index int64) (map[string]any, error) {
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"createItem": map[string]any{
			"item": map[string]any{
				"title": title,
				"questionItem": map[string]any{
					"question": map[string]any{
						"required":     required,
						"timeQuestion": map[string]any{"duration": false},
					},
				},
			},
			"location": map[string]any{"index": index},
		}},
	})
}

// AddGridQuestion builds a radio grid with one row question per row label.
func (f Forms) AddGridQuestion(ctx context.Context, formID, title string, rowLabels, colLabels []string, index int64) (map[string]any, error) {
	cols := make([]map[string]any, 0, len(colLabels))
	for _, c := range colLabels {
		cols = append(cols, map[string]any{"value": c})
	}
	questions := make([]map[string]any, 0, len(rowLabels))
	for _, r := range rowLabels {
		questions = append(questions, map[string]any{
			"rowQuestion": map[string]any{"title": r},
		})
	}
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"createItem": map[string]any{
			"item": map[string]any{
				"title": title,
				"questionGroupItem": map[string]any{
					"grid": map[string]any{
						"columns": map[string]any{"type": "RADIO", "options": cols},
					},
					"questions": questions,
				},
			},
			"location": map[string]any{"index": index},
		}},
	})
}

func (f Forms) AddSectionHeader(ctx context.Context, formID, title, description string, index int64) (map[string]any, error) {
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"createItem": map[string]any{
			"item": map[string]any{
				"title":       title,
				"description": description,
				"pageBreakItem": map[string]any{},
			},
			"location": map[string]any{"index": index},
		}},
	})
}

func (f Forms) DeleteItem(ctx context.Context, formID string, index int64) (map[string]any, error) {
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"deleteItem": map[string]any{
			"location": map[string]any{"index": index},
		}},
	})
}

func (f Forms) MoveItem(ctx context.Context, formID string, from, to int64) (map[string]any, error) {
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"moveItem": map[string]any{
			"originalLocation": map[string]any{"index": from},
			"newLocation":      map[string]any{"index": to},
		}},
	})
}

func (f Forms) UpdateFormInfo(ctx context.Context, formID, title, description string) (map[string]any, error) {
	info := map[string]any{}
	fields := ""
	if title != "" {
		info["title"] = title
		fields = "title"
	}
	if description != "" {
		info["description"] = description
		if fields != "" {
			fields += ","
		}
		fields += "description"
	}
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"updateFormInfo": map[string]any{
			"info":       info,
			"updateMask": fields,
		}},
	})
}

// UpdateSettings toggles quiz mode.
func (f Forms) UpdateSettings(ctx context.Context, formID string, isQuiz bool) (map[string]any, error) {
	return f.batchUpdate(ctx, formID, []map[string]any{
		{"updateSettings": map[string]any{
			"settings":   map[string]any{"quizSettings": map[string]any{"isQuiz": isQuiz}},
			"updateMask": "quizSettings.isQuiz",
		}},
	})
}
