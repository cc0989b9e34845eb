package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"taskboard.app/server/common/logger"
	"taskboard.app/server/core/config"
	"taskboard.app/server/internal/model"
)

// Markers appended to every summary so readers can tell whether the AI path
// was exercised for this result.
const (
	aiActiveMarker   = "🤖 IA Activa"
	aiInactiveMarker = "Servicio de IA no activo"
)

const (
	minTimeout  = 3 * time.Second
	minCacheTTL = time.Hour
)

// TaskSource is the slice of the task store the service consumes. Tasks come
// back with responsible user and comments (newest first) attached.
type TaskSource interface {
	GetByID(ctx context.Context, id int64) (*model.Task, error)
}

// UserSource is the slice of the user store the service consumes. Users come
// back with their tasks (and each task's comments) attached.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Cache is the TTL cache contract the service depends on. Implementations
// must be safe for concurrent use; eviction is TTL-based only. There is no
// single-flight de-duplication: two concurrent misses for the same key may
// each invoke the provider independently.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
	Remove(ctx context.Context, key string)
}

// Service generates task and user insights, caching results per entity.
//
// Every AI-path failure (timeout, rate limit, network, malformed response) is
// absorbed here and replaced by the deterministic local analysis; the only
// error callers ever see is store.ErrNotFound for an unknown entity.
type Service interface {
	TaskInsight(ctx context.Context, taskID int64, forceRefresh bool) (*TaskInsight, error)
	UserInsight(ctx context.Context, userID int64, forceRefresh bool) (*UserInsight, error)
	InvalidateTask(ctx context.Context, taskID int64)
	InvalidateUser(ctx context.Context, userID int64)
}

type service struct {
	tasks    TaskSource
	users    UserSource
	provider Provider
	cache    Cache
	limits   config.LimitsConfig
}

func NewService(tasks TaskSource, users UserSource, provider Provider, cache Cache, limits config.LimitsConfig) Service {
	return &service{
		tasks:    tasks,
		users:    users,
		provider: provider,
		cache:    cache,
		limits:   limits,
	}
}

func taskKey(id int64) string {
	return fmt.Sprintf("insight:task:%d", id)
}

func userKey(id int64) string {
	return fmt.Sprintf("insight:user:%d", id)
}

func (s *service) InvalidateTask(ctx context.Context, taskID int64) {
	s.cache.Remove(ctx, taskKey(taskID))
}

func (s *service) InvalidateUser(ctx context.Context, userID int64) {
	s.cache.Remove(ctx, userKey(userID))
}

func (s *service) TaskInsight(ctx context.Context, taskID int64, forceRefresh bool) (*TaskInsight, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TaskID:    logger.Ptr(taskID),
		Component: "taskboard.insight.service",
	})

	key := taskKey(taskID)
	if !forceRefresh {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached TaskInsight
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			slog.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
		}
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	localAlerts := TaskAlerts(task, now)

	var result *TaskInsight
	aiActive := false

	raw, err := s.generate(ctx, taskSystemPrompt, buildTaskUserPrompt(task, s.limits.MaxCommentsPerTask))
	if err == nil && raw != "" {
		parsed, perr := parseTaskInsight(raw, task)
		if perr != nil {
			slog.WarnContext(ctx, "ai task insight unparseable, using local fallback", "error", perr)
		} else {
			result = parsed
			aiActive = true
		}
	}

	if result == nil {
		result = &TaskInsight{
			TaskID:    task.ID,
			Title:     task.Title,
			Summary:   FallbackTaskSummary(task, now),
			Status:    string(task.Status),
			RiskLevel: RiskFromAlerts(localAlerts),
			Alerts:    localAlerts,
			// Only the AI proposes next actions; local analysis never guesses.
			NextActions: []string{},
		}
	}

	result = &TaskInsight{
		TaskID:      result.TaskID,
		Title:       result.Title,
		Summary:     decorate(result.Summary, aiActive),
		Status:      result.Status,
		RiskLevel:   result.RiskLevel,
		Alerts:      MergeAlerts(result.Alerts, localAlerts),
		NextActions: result.NextActions,
	}

	s.storeResult(ctx, key, result)
	return result, nil
}

func (s *service) UserInsight(ctx context.Context, userID int64, forceRefresh bool) (*UserInsight, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(userID),
		Component: "taskboard.insight.service",
	})

	key := userKey(userID)
	if !forceRefresh {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached UserInsight
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			slog.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	maxTasks := s.limits.MaxTasksPerUser
	if maxTasks < 1 {
		maxTasks = 1
	}
	// When trimming to the cap, drop finished work first so active and
	// overdue tasks always make it into the analysis.
	tasks := user.Tasks
	if len(tasks) > maxTasks {
		tasks = append([]model.Task(nil), tasks...)
		sort.SliceStable(tasks, func(i, j int) bool {
			ci := tasks[i].Status == model.TaskStatusCompleted
			cj := tasks[j].Status == model.TaskStatusCompleted
			return !ci && cj
		})
		tasks = tasks[:maxTasks]
	}

	now := time.Now().UTC()
	localAlerts := UserAlerts(tasks, now)

	var result *UserInsight
	aiActive := false

	raw, err := s.generate(ctx, userSystemPrompt, buildUserUserPrompt(user, tasks))
	if err == nil && raw != "" {
		parsed, perr := parseUserInsight(raw, user, tasks)
		if perr != nil {
			slog.WarnContext(ctx, "ai user insight unparseable, using local fallback", "error", perr)
		} else {
			result = parsed
			aiActive = true
		}
	}

	if result == nil {
		result = FallbackUserInsight(user, tasks, now)
	}

	result = &UserInsight{
		UserID:        result.UserID,
		UserName:      result.UserName,
		Summary:       decorate(result.Summary, aiActive),
		OverallStatus: result.OverallStatus,
		RiskLevel:     result.RiskLevel,
		Alerts:        MergeAlerts(result.Alerts, localAlerts),
		TaskSummaries: result.TaskSummaries,
	}

	s.storeResult(ctx, key, result)
	return result, nil
}

// generate runs the provider call inside the failure boundary: every failure
// is logged and returned, and the callers above treat any error the same way
// they treat an unconfigured provider. No retry; the next request (or a
// forced refresh) is the retry mechanism.
func (s *service) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	sc := logger.StartSpan(ctx, "insight.provider_call")
	defer sc.End()
	ctx = sc.Context()

	timeout := time.Duration(s.limits.TimeoutSeconds) * time.Second
	if timeout < minTimeout {
		timeout = minTimeout
	}

	raw, err := s.provider.Generate(ctx, systemPrompt, userPrompt, timeout)
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "ai provider call failed, using local fallback", "error", err)
		return "", err
	}
	return raw, nil
}

func decorate(summary string, aiActive bool) string {
	marker := aiInactiveMarker
	if aiActive {
		marker = aiActiveMarker
	}
	return summary + " | " + marker
}

func (s *service) storeResult(ctx context.Context, key string, result any) {
	raw, err := json.Marshal(result)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode insight for cache", "key", key, "error", err)
		return
	}

	ttl := time.Duration(s.limits.CacheTTLHours) * time.Hour
	if ttl < minCacheTTL {
		ttl = minCacheTTL
	}
	s.cache.Set(ctx, key, raw, ttl)
}
