package insight

import (
	"fmt"
	"strings"
	"time"

	"taskboard.app/server/internal/model"
)

// Keyword sets for the chronological comment analysis. Comments are written
// in Spanish by this system's users; entries are stems matched by substring,
// case-insensitively.
var (
	problemKeywords = []string{
		"problema", "error", "retraso", "retras", "dificult", "complic",
		"bloque", "issue", "falla", "fall", "inesperado",
	}
	positiveKeywords = []string{
		"lista", "complet", "terminad", "finaliz", "resuel", "solucion",
		"avanz", "progres", "bien", "ok", "funciona", "deploy", "tiempo", "listo",
	}
	resolutionKeywords = []string{
		"resuel", "solucion", "funciona", "arregl", "fix", "correg",
		"deploy", "listo", "terminad",
	}
)

const chronologyWindow = 10 // comments inspected, newest first
const recentWindow = 3      // comments treated as "current state"

// TaskAlerts evaluates the local task rules. Every applicable rule emits its
// alert; rules are independent. Deterministic given the task snapshot and now.
// Comments must be ordered newest first.
func TaskAlerts(task *model.Task, now time.Time) []Alert {
	var alerts []Alert
	completed := task.Status == model.TaskStatusCompleted

	if task.DueDate != nil && !completed {
		due := *task.DueDate
		if beforeDay(due, now) {
			alerts = append(alerts, Alert{
				Code:     "OVERDUE",
				Severity: SeverityHigh,
				Message:  "La tarea está vencida.",
			})
		} else if due.Sub(now).Hours() <= 48 {
			alerts = append(alerts, Alert{
				Code:     "DUE_SOON",
				Severity: SeverityMedium,
				Message:  "La fecha compromiso es próxima.",
			})
		}
	}

	if len(task.Comments) > 0 && !completed {
		last := task.Comments[0]
		if now.Sub(last.CreatedAt).Hours() >= 7*24 {
			alerts = append(alerts, Alert{
				Code:     "STALE",
				Severity: SeverityMedium,
				Message:  "No hay actualizaciones recientes (>= 7 días).",
			})
		}
	}

	if alert, ok := chronologyAlert(task.Comments, now); ok {
		alerts = append(alerts, alert)
	}

	return alerts
}

// chronologyAlert inspects the newest comments for unresolved problem
// signals. Recency and resolution strictly dominate: a positive or
// resolution signal among the most recent comments suppresses everything,
// and a problem followed by a later resolution comment is dropped.
func chronologyAlert(comments []model.Comment, now time.Time) (Alert, bool) {
	recent := headComments(comments, chronologyWindow)
	if len(recent) == 0 {
		return Alert{}, false
	}

	current := headComments(recent, recentWindow)
	if anyCommentMatches(current, positiveKeywords) || anyCommentMatches(current, resolutionKeywords) {
		return Alert{}, false
	}

	var newestSurviving *model.Comment
	for i := range recent {
		if !matchesAny(recent[i].Body, problemKeywords) {
			continue
		}
		if resolvedLater(recent, i) {
			continue
		}
		newestSurviving = &recent[i]
		break // newest-first order: the first survivor is the newest
	}
	if newestSurviving == nil {
		return Alert{}, false
	}

	days := now.Sub(newestSurviving.CreatedAt).Hours() / 24
	switch {
	case days <= 1:
		return Alert{
			Code:     "RECENT_ISSUES",
			Severity: SeverityMedium,
			Message:  "Se reportaron problemas recientemente, pero verificar estado actual.",
		}, true
	case days <= 3:
		return Alert{
			Code:     "UNRESOLVED_ISSUES",
			Severity: SeverityLow,
			Message:  "Problemas reportados sin claridad sobre resolución.",
		}, true
	}
	return Alert{}, false
}

// resolvedLater reports whether any comment more recent than comments[i]
// contains a resolution keyword.
func resolvedLater(comments []model.Comment, i int) bool {
	for j := 0; j < i; j++ {
		if matchesAny(comments[j].Body, resolutionKeywords) {
			return true
		}
	}
	return false
}

// FallbackTaskSummary builds the deterministic summary used when the AI path
// is unavailable. Clauses are appended only when applicable; nothing is ever
// fabricated.
func FallbackTaskSummary(task *model.Task, now time.Time) string {
	var parts []string
	completed := task.Status == model.TaskStatusCompleted

	if completed {
		parts = append(parts, "Tarea completada.")
	} else {
		parts = append(parts, fmt.Sprintf("Tarea en estado %s.", task.Status))
	}

	if task.DueDate != nil {
		due := *task.DueDate
		switch {
		case beforeDay(due, now) && !completed:
			parts = append(parts, fmt.Sprintf("**VENCIDA** desde %s.", due.Format("2006-01-02")))
		case due.Sub(now).Hours() <= 48 && !completed:
			parts = append(parts, fmt.Sprintf("Vence próximamente: %s.", due.Format("2006-01-02")))
		default:
			parts = append(parts, fmt.Sprintf("Compromiso: %s.", due.Format("2006-01-02")))
		}
	}

	recent := headComments(task.Comments, chronologyWindow)
	if len(recent) > 0 {
		current := headComments(recent, recentWindow)
		switch {
		case anyCommentMatches(current, resolutionKeywords):
			parts = append(parts, "✅ Última actualización indica resolución exitosa.")
		case anyCommentMatches(current, positiveKeywords):
			parts = append(parts, "✅ Última actualización positiva.")
		case anyCommentMatches(recent, problemKeywords):
			parts = append(parts, "⚠️ Los comentarios indican problemas sin resolución clara.")
		}

		daysSinceUpdate := now.Sub(recent[0].CreatedAt).Hours() / 24
		if daysSinceUpdate >= 7 {
			parts = append(parts, fmt.Sprintf("Sin actualizaciones por %d días.", int(daysSinceUpdate)))
		}
	}

	return strings.Join(parts, " ")
}

// FallbackUserInsight builds the user-level insight from local rules alone.
// Per-task summaries are deliberately degenerate one-liners: the full task
// rule engine does not run inside the user aggregate.
func FallbackUserInsight(user *model.User, tasks []model.Task, now time.Time) *UserInsight {
	overdue := 0
	for i := range tasks {
		if isOverdue(&tasks[i], now) {
			overdue++
		}
	}

	var alerts []Alert
	risk := SeverityLow
	status := StatusOnTrack
	if overdue > 0 {
		alerts = append(alerts, Alert{
			Code:     "MANY_OVERDUE",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("Hay %d tareas vencidas.", overdue),
		})
		risk = SeverityHigh
		status = StatusOffTrack
	}

	summaries := make([]TaskInsight, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		summary := fmt.Sprintf("Estado %s.", t.Status)
		if t.Status == model.TaskStatusCompleted {
			summary = "Completada."
		}
		summaries = append(summaries, TaskInsight{
			TaskID:      t.ID,
			Title:       t.Title,
			Summary:     summary,
			Status:      string(t.Status),
			RiskLevel:   risk,
			Alerts:      []Alert{},
			NextActions: []string{},
		})
	}

	return &UserInsight{
		UserID:        user.ID,
		UserName:      user.Name,
		Summary:       fmt.Sprintf("%d tareas asignadas.", len(tasks)),
		OverallStatus: status,
		RiskLevel:     risk,
		Alerts:        alerts,
		TaskSummaries: summaries,
	}
}

// UserAlerts evaluates the local user-level rules (currently only the
// overdue-count rule). Computed on every request so the merge step has local
// signals even when the AI path succeeds.
func UserAlerts(tasks []model.Task, now time.Time) []Alert {
	overdue := 0
	for i := range tasks {
		if isOverdue(&tasks[i], now) {
			overdue++
		}
	}
	if overdue == 0 {
		return nil
	}
	return []Alert{{
		Code:     "MANY_OVERDUE",
		Severity: SeverityHigh,
		Message:  fmt.Sprintf("Hay %d tareas vencidas.", overdue),
	}}
}

// RiskFromAlerts derives overall risk from the highest severity present.
func RiskFromAlerts(alerts []Alert) Severity {
	risk := SeverityLow
	for _, a := range alerts {
		switch a.Severity {
		case SeverityHigh:
			return SeverityHigh
		case SeverityMedium:
			risk = SeverityMedium
		}
	}
	return risk
}

// MergeAlerts unions two alert lists by code (case-insensitive). When a code
// appears in both, the local alert wins: the local chronological rules are
// treated as more trustworthy than the model's judgement. Order is ai-first,
// then unseen local codes, so merging is deterministic.
func MergeAlerts(ai, local []Alert) []Alert {
	merged := make([]Alert, 0, len(ai)+len(local))
	index := make(map[string]int, len(ai))

	for _, a := range ai {
		key := strings.ToLower(a.Code)
		if at, seen := index[key]; seen {
			merged[at] = a
			continue
		}
		index[key] = len(merged)
		merged = append(merged, a)
	}
	for _, a := range local {
		key := strings.ToLower(a.Code)
		if at, seen := index[key]; seen {
			merged[at] = a
			continue
		}
		index[key] = len(merged)
		merged = append(merged, a)
	}

	return merged
}

func isOverdue(task *model.Task, now time.Time) bool {
	return task.DueDate != nil &&
		beforeDay(*task.DueDate, now) &&
		task.Status != model.TaskStatusCompleted
}

// beforeDay reports whether a's calendar day is strictly before b's.
func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

func headComments(comments []model.Comment, n int) []model.Comment {
	if len(comments) <= n {
		return comments
	}
	return comments[:n]
}

func anyCommentMatches(comments []model.Comment, keywords []string) bool {
	for i := range comments {
		if matchesAny(comments[i].Body, keywords) {
			return true
		}
	}
	return false
}

func matchesAny(body string, keywords []string) bool {
	lower := strings.ToLower(body)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
