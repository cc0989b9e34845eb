package store

import (
	"context"
	"fmt"
	"log/slog"

	"taskboard.app/server/common/id"
	"taskboard.app/server/internal/model"
)

// Seed inserts a small starter data set for development environments.
// It is a no-op when any user already exists.
func Seed(ctx context.Context, stores *Stores) error {
	var count int
	if err := stores.pool.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("checking seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	alice := &model.User{ID: id.New(), Name: "Alice"}
	bob := &model.User{ID: id.New(), Name: "Bob"}

	users := stores.Users()
	for _, u := range []*model.User{alice, bob} {
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Name, err)
		}
	}

	backlog := "Crear lista inicial de tareas"
	cicd := "Pipeline básico"
	mvc := "Proyecto base"

	tasks := []*model.Task{
		{
			ID:                id.New(),
			Title:             "Definir backlog MVP",
			Description:       &backlog,
			Status:            model.TaskStatusNew,
			ResponsibleUserID: &alice.ID,
		},
		{
			ID:                id.New(),
			Title:             "Configurar CI/CD",
			Description:       &cicd,
			Status:            model.TaskStatusInProgress,
			ResponsibleUserID: &bob.ID,
		},
		{
			ID:          id.New(),
			Title:       "Crear estructura del proyecto",
			Description: &mvc,
			Status:      model.TaskStatusNotAssigned,
		},
	}

	taskStore := stores.Tasks()
	for _, t := range tasks {
		if err := taskStore.Create(ctx, t); err != nil {
			return fmt.Errorf("seeding task %q: %w", t.Title, err)
		}
	}

	slog.InfoContext(ctx, "seeded starter data", "users", 2, "tasks", len(tasks))
	return nil
}
