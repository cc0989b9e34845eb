package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"taskboard.app/server/internal/http/handler"
	"taskboard.app/server/internal/model"
	"taskboard.app/server/internal/service"
	"taskboard.app/server/internal/store"
)

var _ = Describe("TaskHandler", func() {
	var (
		router *gin.Engine
		svc    *mockTaskService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockTaskService{}
		h := handler.NewTaskHandler(svc)
		router.GET("/tasks", h.List)
		router.POST("/tasks", h.Create)
		router.GET("/tasks/:id", h.GetByID)
		router.PATCH("/tasks/:id/status", h.UpdateStatus)
		router.POST("/tasks/:id/comments", h.AddComment)
	})

	Describe("GetByID", func() {
		It("returns 404 for a missing task", func() {
			svc.getFn = func(_ context.Context, _ int64) (*model.Task, error) {
				return nil, store.ErrNotFound
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/999", nil))

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a non-numeric id", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/abc", nil))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("renders snowflake IDs as strings", func() {
			svc.getFn = func(_ context.Context, id int64) (*model.Task, error) {
				return &model.Task{ID: id, Title: "Preparar demo", Status: model.TaskStatusNew}, nil
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/1924557308579874816", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(Equal("1924557308579874816"))
			Expect(resp["status"]).To(Equal("New"))
		})
	})

	Describe("List", func() {
		It("rejects an unknown status filter", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks?status=Paused", nil))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("passes query, status and pagination through to the service", func() {
			var got store.TaskFilter
			svc.listFn = func(_ context.Context, filter store.TaskFilter) ([]model.Task, int, error) {
				got = filter
				return nil, 0, nil
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks?q=deploy&status=New&page=2&size=10", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(got.Query).To(Equal("deploy"))
			Expect(*got.Status).To(Equal(model.TaskStatusNew))
			Expect(got.Page).To(Equal(2))
			Expect(got.Size).To(Equal(10))
		})
	})

	Describe("Create", func() {
		It("returns 400 when the title is missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(`{"description":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 when the service rejects the input", func() {
			svc.createFn = func(_ context.Context, _ service.TaskInput) (*model.Task, error) {
				return nil, service.ErrInvalid
			}

			req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(`{"title":"t","status":"Paused"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 201 with the created task", func() {
			svc.createFn = func(_ context.Context, input service.TaskInput) (*model.Task, error) {
				return &model.Task{ID: 1, Title: input.Title, Status: model.TaskStatusNotAssigned}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(`{"title":"Preparar demo"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
		})
	})

	Describe("UpdateStatus", func() {
		It("forwards the status change", func() {
			var gotID int64
			var gotStatus model.TaskStatus
			svc.updateStatusFn = func(_ context.Context, id int64, status model.TaskStatus) error {
				gotID, gotStatus = id, status
				return nil
			}

			req := httptest.NewRequest(http.MethodPatch, "/tasks/7/status", bytes.NewBufferString(`{"status":"Completed"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotID).To(Equal(int64(7)))
			Expect(gotStatus).To(Equal(model.TaskStatusCompleted))
		})
	})

	Describe("AddComment", func() {
		It("returns 201 with the created comment", func() {
			svc.addCommentFn = func(_ context.Context, taskID int64, body, createdBy string) (*model.Comment, error) {
				return &model.Comment{ID: 2, TaskID: taskID, Body: body, CreatedBy: createdBy}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/tasks/7/comments",
				bytes.NewBufferString(`{"body":"ya funciona","created_by":"Bob"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["body"]).To(Equal("ya funciona"))
		})

		It("returns 404 when the task does not exist", func() {
			svc.addCommentFn = func(_ context.Context, _ int64, _, _ string) (*model.Comment, error) {
				return nil, store.ErrNotFound
			}

			req := httptest.NewRequest(http.MethodPost, "/tasks/999/comments",
				bytes.NewBufferString(`{"body":"hola","created_by":"Bob"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
