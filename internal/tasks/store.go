package tasks

import (
	"database/sql"
	"errors"
	"time"

	"github.com/tarefahub-io/tarefahub/internal/database"
	"github.com/tarefahub-io/tarefahub/internal/models"
)

// ErrTaskNotFound is returned when a task does not exist or is owned by a
// different user. Callers cannot tell the two cases apart.
var ErrTaskNotFound = errors.New("task not found")

// Store defines task storage operations. Every query is scoped by the
// owner id.
type Store interface {
	ListByOwner(ownerID int64) ([]models.Task, error)
	Create(task *models.Task) error
	Update(ownerID, taskID int64, upd Update) (*models.Task, error)
	Delete(ownerID, taskID int64) error
}

// Update carries a partial task update. Nil fields are left untouched.
type Update struct {
	Titulo    *string
	Descricao *string
	Status    *models.TaskStatus
}

// SQLStore implements Store over database/sql
type SQLStore struct {
	db     *sql.DB
	dbType string
}

// NewStore creates a new SQLStore
func NewStore(db *sql.DB, dbType string) *SQLStore {
	return &SQLStore{db: db, dbType: dbType}
}

const taskColumns = "id, usuario_id, titulo, descricao, status, created_at, updated_at"

// ListByOwner returns all tasks owned by ownerID, oldest first.
func (s *SQLStore) ListByOwner(ownerID int64) ([]models.Task, error) {
	query := database.Rebind(s.dbType,
		"SELECT "+taskColumns+" FROM tarefas WHERE usuario_id = ? ORDER BY id ASC")

	rows, err := s.db.Query(query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Create persists a new task. The status defaults to pendente when unset.
func (s *SQLStore) Create(task *models.Task) error {
	if task.Status == "" {
		task.Status = models.StatusPendente
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if s.dbType == "postgres" {
		return s.db.QueryRow(
			"INSERT INTO tarefas (usuario_id, titulo, descricao, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
			task.UsuarioID, task.Titulo, task.Descricao, task.Status, task.CreatedAt, task.UpdatedAt,
		).Scan(&task.ID)
	}

	result, err := s.db.Exec(
		"INSERT INTO tarefas (usuario_id, titulo, descricao, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		task.UsuarioID, task.Titulo, task.Descricao, task.Status, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// getOwned fetches a task by id constrained to its owner.
func (s *SQLStore) getOwned(ownerID, taskID int64) (*models.Task, error) {
	query := database.Rebind(s.dbType,
		"SELECT "+taskColumns+" FROM tarefas WHERE id = ? AND usuario_id = ?")

	var t models.Task
	err := scanTask(s.db.QueryRow(query, taskID, ownerID), &t)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update applies a partial update to a task owned by ownerID and returns
// the updated record.
func (s *SQLStore) Update(ownerID, taskID int64, upd Update) (*models.Task, error) {
	task, err := s.getOwned(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Titulo != nil {
		task.Titulo = *upd.Titulo
	}
	if upd.Descricao != nil {
		task.Descricao = upd.Descricao
	}
	if upd.Status != nil {
		task.Status = *upd.Status
	}
	task.UpdatedAt = time.Now()

	query := database.Rebind(s.dbType,
		"UPDATE tarefas SET titulo = ?, descricao = ?, status = ?, updated_at = ? WHERE id = ? AND usuario_id = ?")

	res, err := s.db.Exec(query, task.Titulo, task.Descricao, task.Status, task.UpdatedAt, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// Delete removes a task owned by ownerID.
func (s *SQLStore) Delete(ownerID, taskID int64) error {
	query := database.Rebind(s.dbType, "DELETE FROM tarefas WHERE id = ? AND usuario_id = ?")

	res, err := s.db.Exec(query, taskID, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner, t *models.Task) error {
	return row.Scan(
		&t.ID,
		&t.UsuarioID,
		&t.Titulo,
		&t.Descricao,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}
