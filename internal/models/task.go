package models

import (
	"time"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	StatusPendente  TaskStatus = "pendente"
	StatusConcluida TaskStatus = "concluida"
)

// ValidStatus reports whether s is one of the accepted task states.
func ValidStatus(s TaskStatus) bool {
	return s == StatusPendente || s == StatusConcluida
}

// MaxTituloLen bounds the task title, matching the column width.
const MaxTituloLen = 200

// Task represents a single task owned by exactly one user. JSON field
// names follow the public API wire format.
type Task struct {
	ID        int64      `json:"id" db:"id"`
	UsuarioID int64      `json:"usuario_id" db:"usuario_id"`
	Titulo    string     `json:"titulo" db:"titulo"`
	Descricao *string    `json:"descricao" db:"descricao"`
	Status    TaskStatus `json:"status" db:"status"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
