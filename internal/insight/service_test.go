package insight_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"taskboard.app/server/core/config"
	"taskboard.app/server/internal/insight"
	"taskboard.app/server/internal/model"
	"taskboard.app/server/internal/store"
)

var _ = Describe("Service", func() {
	var (
		ctx      context.Context
		tasks    *mockTaskStore
		users    *mockUserStore
		provider *stubProvider
		cache    *memCache
		limits   config.LimitsConfig
		svc      insight.Service
	)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	newSvc := func() insight.Service {
		return insight.NewService(tasks, users, provider, cache, limits)
	}

	BeforeEach(func() {
		ctx = context.Background()
		provider = &stubProvider{}
		cache = newMemCache()
		limits = config.LimitsConfig{
			MaxCommentsPerTask: 20,
			MaxTasksPerUser:    20,
			CacheTTLHours:      24,
			TimeoutSeconds:     15,
		}

		tasks = &mockTaskStore{
			getByIDFn: func(_ context.Context, id int64) (*model.Task, error) {
				if id != 42 {
					return nil, store.ErrNotFound
				}
				return &model.Task{
					ID:      42,
					Title:   "Migrar base de datos",
					Status:  model.TaskStatusInProgress,
					DueDate: &yesterday,
				}, nil
			},
		}
		users = &mockUserStore{
			getByIDFn: func(_ context.Context, id int64) (*model.User, error) {
				if id != 7 {
					return nil, store.ErrNotFound
				}
				return &model.User{
					ID:   7,
					Name: "Alice",
					Tasks: []model.Task{
						{ID: 42, Title: "Migrar base de datos", Status: model.TaskStatusInProgress, DueDate: &yesterday},
						{ID: 43, Title: "Revisar PRs", Status: model.TaskStatusNew},
					},
				}, nil
			},
		}
		svc = newSvc()
	})

	Describe("TaskInsight", func() {
		It("propagates the not-found error for an unknown task", func() {
			_, err := svc.TaskInsight(ctx, 999, false)

			Expect(err).To(MatchError(store.ErrNotFound))
			Expect(cache.keys()).To(BeEmpty())
		})

		Context("with an unconfigured provider", func() {
			It("falls back to local analysis and marks the AI as inactive", func() {
				result, err := svc.TaskInsight(ctx, 42, false)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Summary).To(HaveSuffix(" | Servicio de IA no activo"))
				Expect(result.Summary).To(ContainSubstring("**VENCIDA**"))
				Expect(result.NextActions).To(BeEmpty())
				Expect(alertCodes(result.Alerts)).To(ContainElement("OVERDUE"))
				Expect(provider.callCount()).To(Equal(1))
			})
		})

		Context("with a failing provider", func() {
			It("absorbs timeouts into the local fallback", func() {
				provider.err = insight.ErrTimeout

				result, err := svc.TaskInsight(ctx, 42, false)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Summary).To(HaveSuffix(" | Servicio de IA no activo"))
				Expect(result.NextActions).To(BeEmpty())
			})

			It("absorbs rate limiting the same way", func() {
				provider.err = insight.ErrRateLimited

				result, err := svc.TaskInsight(ctx, 42, false)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Summary).To(HaveSuffix(" | Servicio de IA no activo"))
			})
		})

		Context("with a working provider", func() {
			BeforeEach(func() {
				provider.response = `{
					"summary": "La migración avanza con retrasos.",
					"riskLevel": "medium",
					"alerts": [
						{"code": "overdue", "severity": "low", "message": "El modelo cree que no es grave."},
						{"code": "SCOPE_CREEP", "severity": "medium", "message": "El alcance creció."}
					],
					"nextActions": ["Confirmar ventana de mantenimiento"]
				}`
			})

			It("returns the parsed insight with the active marker", func() {
				result, err := svc.TaskInsight(ctx, 42, false)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Summary).To(Equal("La migración avanza con retrasos. | 🤖 IA Activa"))
				Expect(result.NextActions).To(ConsistOf("Confirmar ventana de mantenimiento"))
			})

			It("lets the local alert win on a code conflict and keeps the rest", func() {
				result, err := svc.TaskInsight(ctx, 42, false)

				Expect(err).NotTo(HaveOccurred())
				Expect(alertCodes(result.Alerts)).To(ConsistOf("OVERDUE", "SCOPE_CREEP"))
				for _, a := range result.Alerts {
					if a.Code == "OVERDUE" {
						Expect(a.Severity).To(Equal(insight.SeverityHigh))
						Expect(a.Message).To(Equal("La tarea está vencida."))
					}
				}
			})

			It("caches the decorated result and serves it without another provider call", func() {
				first, err := svc.TaskInsight(ctx, 42, false)
				Expect(err).NotTo(HaveOccurred())

				second, err := svc.TaskInsight(ctx, 42, false)
				Expect(err).NotTo(HaveOccurred())

				Expect(provider.callCount()).To(Equal(1))
				Expect(second).To(Equal(first))
				Expect(cache.keys()).To(ConsistOf("insight:task:42"))
			})

			It("regenerates on forceRefresh even with a live cache entry", func() {
				_, err := svc.TaskInsight(ctx, 42, false)
				Expect(err).NotTo(HaveOccurred())

				_, err = svc.TaskInsight(ctx, 42, true)
				Expect(err).NotTo(HaveOccurred())

				Expect(provider.callCount()).To(Equal(2))
			})
		})

		Context("with a malformed provider response", func() {
			It("falls back when the document is not JSON", func() {
				provider.response = "lo siento, no puedo responder en JSON"

				result, err := svc.TaskInsight(ctx, 42, false)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Summary).To(HaveSuffix(" | Servicio de IA no activo"))
			})

			It("defaults individual fields of the wrong type instead of failing", func() {
				provider.response = `{"summary": "Todo en orden.", "riskLevel": 12, "alerts": "ninguna", "nextActions": 3}`

				result, err := svc.TaskInsight(ctx, 42, false)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Summary).To(Equal("Todo en orden. | 🤖 IA Activa"))
				Expect(result.RiskLevel).To(Equal(insight.SeverityLow))
				Expect(result.NextActions).To(BeEmpty())
				// Merge still contributes the local alerts.
				Expect(alertCodes(result.Alerts)).To(ConsistOf("OVERDUE"))
			})
		})

		It("enforces the one-hour floor on the cache TTL", func() {
			limits.CacheTTLHours = 0
			svc = newSvc()

			_, err := svc.TaskInsight(ctx, 42, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(cache.ttlOf("insight:task:42")).To(Equal(time.Hour))
		})

		It("uses the configured TTL when above the floor", func() {
			_, err := svc.TaskInsight(ctx, 42, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(cache.ttlOf("insight:task:42")).To(Equal(24 * time.Hour))
		})
	})

	Describe("UserInsight", func() {
		It("propagates the not-found error for an unknown user", func() {
			_, err := svc.UserInsight(ctx, 999, false)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("builds the local fallback aggregate when the provider is unconfigured", func() {
			result, err := svc.UserInsight(ctx, 7, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.UserName).To(Equal("Alice"))
			Expect(result.Summary).To(Equal("2 tareas asignadas. | Servicio de IA no activo"))
			Expect(result.OverallStatus).To(Equal(insight.StatusOffTrack))
			Expect(alertCodes(result.Alerts)).To(ConsistOf("MANY_OVERDUE"))
			Expect(result.TaskSummaries).To(HaveLen(2))
		})

		It("merges the local overdue alert into a successful AI aggregate", func() {
			provider.response = `{
				"summary": "Alice tiene carga alta.",
				"overallStatus": "at_risk",
				"riskLevel": "medium",
				"alerts": [{"code": "WORKLOAD", "severity": "medium", "message": "Demasiadas tareas activas."}],
				"taskSummaries": []
			}`

			result, err := svc.UserInsight(ctx, 7, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Summary).To(Equal("Alice tiene carga alta. | 🤖 IA Activa"))
			Expect(result.OverallStatus).To(Equal(insight.StatusAtRisk))
			Expect(alertCodes(result.Alerts)).To(ConsistOf("WORKLOAD", "MANY_OVERDUE"))
		})

		It("fills task summary titles from the known tasks when the model omits them", func() {
			provider.response = `{
				"summary": "Resumen.",
				"taskSummaries": [{"taskId": 42, "summary": "Va lenta."}]
			}`

			result, err := svc.UserInsight(ctx, 7, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.TaskSummaries).To(HaveLen(1))
			Expect(result.TaskSummaries[0].Title).To(Equal("Migrar base de datos"))
			Expect(result.TaskSummaries[0].Status).To(Equal(string(model.TaskStatusInProgress)))
		})

		It("caches under the user key and reuses the entry", func() {
			_, err := svc.UserInsight(ctx, 7, false)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.UserInsight(ctx, 7, false)
			Expect(err).NotTo(HaveOccurred())

			Expect(provider.callCount()).To(Equal(1))
			Expect(cache.keys()).To(ConsistOf("insight:user:7"))
		})

		It("caps the tasks handed to the prompt and the aggregate", func() {
			many := make([]model.Task, 30)
			for i := range many {
				many[i] = model.Task{ID: int64(i + 1), Title: fmt.Sprintf("Tarea %d", i+1), Status: model.TaskStatusNew}
			}
			users.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
				return &model.User{ID: 7, Name: "Alice", Tasks: many}, nil
			}
			limits.MaxTasksPerUser = 5
			svc = newSvc()

			result, err := svc.UserInsight(ctx, 7, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.TaskSummaries).To(HaveLen(5))
		})

		It("keeps active and overdue work when trimming to the cap", func() {
			users.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
				return &model.User{ID: 7, Name: "Alice", Tasks: []model.Task{
					{ID: 1, Title: "Cerrada", Status: model.TaskStatusCompleted},
					{ID: 2, Title: "Cerrada también", Status: model.TaskStatusCompleted},
					{ID: 3, Title: "Vencida", Status: model.TaskStatusInProgress, DueDate: &yesterday},
					{ID: 4, Title: "Nueva", Status: model.TaskStatusNew},
				}}, nil
			}
			limits.MaxTasksPerUser = 2
			svc = newSvc()

			result, err := svc.UserInsight(ctx, 7, false)

			Expect(err).NotTo(HaveOccurred())

			ids := make([]int64, 0, len(result.TaskSummaries))
			for _, ts := range result.TaskSummaries {
				ids = append(ids, ts.TaskID)
			}
			Expect(ids).To(Equal([]int64{3, 4}))

			Expect(result.RiskLevel).To(Equal(insight.SeverityHigh))
			Expect(alertCodes(result.Alerts)).To(ContainElement("MANY_OVERDUE"))
		})
	})

	Describe("invalidation", func() {
		It("removes exactly the task entry, leaving other entries intact", func() {
			tasks.getByIDFn = func(_ context.Context, id int64) (*model.Task, error) {
				return &model.Task{ID: id, Title: "t", Status: model.TaskStatusNew}, nil
			}

			_, err := svc.TaskInsight(ctx, 5, false)
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.TaskInsight(ctx, 6, false)
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.UserInsight(ctx, 7, false)
			Expect(err).NotTo(HaveOccurred())

			svc.InvalidateTask(ctx, 5)

			Expect(cache.keys()).To(ConsistOf("insight:task:6", "insight:user:7"))
		})

		It("removes the user entry on user invalidation", func() {
			_, err := svc.UserInsight(ctx, 7, false)
			Expect(err).NotTo(HaveOccurred())

			svc.InvalidateUser(ctx, 7)

			Expect(cache.keys()).To(BeEmpty())
		})

		It("is a no-op for keys that are not cached", func() {
			svc.InvalidateTask(ctx, 12345)
			Expect(cache.keys()).To(BeEmpty())
		})
	})
})
