package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"task-tracker/backend/internal/storage"
)

// commentFieldAliases maps accepted alternate payload spellings to the
// canonical field name. The alias only applies when the canonical key is
// absent.
var commentFieldAliases = map[string]string{
	"userName": "user_name",
}

var errMissingTaskPayload = errors.New("request body must contain a task object")
var errMissingCommentPayload = errors.New("request body must contain a comment object")

type taskEnvelope struct {
	Task map[string]json.RawMessage `json:"task"`
}

type commentEnvelope struct {
	Comment map[string]json.RawMessage `json:"comment"`
}

// normalizeAliases folds alias keys into their canonical names and returns
// the rewritten field map. Unknown keys pass through untouched; the param
// builders simply ignore them.
func normalizeAliases(fields map[string]json.RawMessage, aliases map[string]string) map[string]json.RawMessage {
	normalized := make(map[string]json.RawMessage, len(fields))
	for key, value := range fields {
		if canonical, ok := aliases[key]; ok {
			if _, exists := fields[canonical]; !exists {
				normalized[canonical] = value
			}
			continue
		}
		normalized[key] = value
	}
	return normalized
}

func buildTaskParams(fields map[string]json.RawMessage) (storage.TaskParams, error) {
	var params storage.TaskParams
	var err error

	if params.Number, err = stringField(fields, "number"); err != nil {
		return params, err
	}
	if params.Title, err = stringField(fields, "title"); err != nil {
		return params, err
	}
	if params.Status, err = stringField(fields, "status"); err != nil {
		return params, err
	}
	if params.Priority, err = stringField(fields, "priority"); err != nil {
		return params, err
	}
	if params.Assignee, err = stringField(fields, "assignee"); err != nil {
		return params, err
	}
	if params.Description, err = stringField(fields, "description"); err != nil {
		return params, err
	}
	if params.DescriptionRichText, err = stringField(fields, "description_rich_text"); err != nil {
		return params, err
	}

	if raw, ok := fields["due_date"]; ok {
		params.DueDateSet = true
		params.DueDate, err = parseDueDate(raw)
		if err != nil {
			return params, err
		}
	}
	return params, nil
}

func buildCommentParams(fields map[string]json.RawMessage) (storage.CommentParams, error) {
	fields = normalizeAliases(fields, commentFieldAliases)

	var params storage.CommentParams
	var err error

	if params.UserName, err = stringField(fields, "user_name"); err != nil {
		return params, err
	}
	if params.Comment, err = stringField(fields, "comment"); err != nil {
		return params, err
	}
	return params, nil
}

// stringField returns a pointer to the decoded value when the key is
// present, nil when absent. An explicit JSON null decodes to the empty
// string so updates can clear optional fields.
func stringField(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, nil
	}
	if string(raw) == "null" {
		empty := ""
		return &empty, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%s must be a string", key)
	}
	return &value, nil
}

// parseDueDate accepts an RFC3339 timestamp or a date-only value. Date-only
// values are pinned to midday UTC so the rendered date never shifts across
// timezone boundaries.
func parseDueDate(raw json.RawMessage) (*time.Time, error) {
	if string(raw) == "null" {
		return nil, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errors.New("due_date must be a string or null")
	}
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if d, err := time.Parse("2006-01-02", value); err == nil {
		t := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
		return &t, nil
	}
	return nil, errors.New("due_date is not a valid timestamp")
}
