package insight

import (
	"encoding/json"
	"fmt"

	"taskboard.app/server/internal/model"
)

// Parsing is deliberately lenient: the model was asked for a shape, but a
// malformed individual field must not abort the whole parse. Each field falls
// back to its default when absent or of the wrong type. Only an unparseable
// top-level document is an error.

func parseTaskInsight(raw string, task *model.Task) (*TaskInsight, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return &TaskInsight{
		TaskID:      task.ID,
		Title:       task.Title,
		Summary:     stringField(root, "summary", ""),
		Status:      string(task.Status),
		RiskLevel:   Severity(stringField(root, "riskLevel", string(SeverityLow))),
		Alerts:      alertsField(root, "alerts"),
		NextActions: stringsField(root, "nextActions"),
	}, nil
}

func parseUserInsight(raw string, user *model.User, tasks []model.Task) (*UserInsight, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	result := &UserInsight{
		UserID:        user.ID,
		UserName:      user.Name,
		Summary:       stringField(root, "summary", fmt.Sprintf("%d tareas asignadas.", len(tasks))),
		OverallStatus: OverallStatus(stringField(root, "overallStatus", string(StatusOnTrack))),
		RiskLevel:     Severity(stringField(root, "riskLevel", string(SeverityLow))),
		Alerts:        alertsField(root, "alerts"),
		TaskSummaries: []TaskInsight{},
	}

	var rawSummaries []map[string]json.RawMessage
	if el, ok := root["taskSummaries"]; ok && json.Unmarshal(el, &rawSummaries) == nil {
		for _, ts := range rawSummaries {
			id := int64Field(ts, "taskId", 0)
			title := stringField(ts, "title", "")
			status := stringField(ts, "status", "")
			if known := findTask(tasks, id); known != nil {
				if title == "" {
					title = known.Title
				}
				if status == "" {
					status = string(known.Status)
				}
			}
			result.TaskSummaries = append(result.TaskSummaries, TaskInsight{
				TaskID:      id,
				Title:       title,
				Summary:     stringField(ts, "summary", ""),
				Status:      status,
				RiskLevel:   Severity(stringField(ts, "riskLevel", string(SeverityLow))),
				Alerts:      alertsField(ts, "alerts"),
				NextActions: stringsField(ts, "nextActions"),
			})
		}
	}

	return result, nil
}

func findTask(tasks []model.Task, id int64) *model.Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

func stringField(m map[string]json.RawMessage, key, def string) string {
	el, ok := m[key]
	if !ok {
		return def
	}
	var s string
	if err := json.Unmarshal(el, &s); err != nil {
		return def
	}
	return s
}

func int64Field(m map[string]json.RawMessage, key string, def int64) int64 {
	el, ok := m[key]
	if !ok {
		return def
	}
	var n int64
	if err := json.Unmarshal(el, &n); err != nil {
		return def
	}
	return n
}

func stringsField(m map[string]json.RawMessage, key string) []string {
	result := []string{}
	el, ok := m[key]
	if !ok {
		return result
	}
	var items []json.RawMessage
	if err := json.Unmarshal(el, &items); err != nil {
		return result
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			result = append(result, s)
		}
	}
	return result
}

func alertsField(m map[string]json.RawMessage, key string) []Alert {
	result := []Alert{}
	el, ok := m[key]
	if !ok {
		return result
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(el, &items); err != nil {
		return result
	}
	for _, item := range items {
		result = append(result, Alert{
			Code:     stringField(item, "code", "GENERIC"),
			Severity: Severity(stringField(item, "severity", string(SeverityLow))),
			Message:  stringField(item, "message", ""),
		})
	}
	return result
}
