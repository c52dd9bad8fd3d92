package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tarefahub-io/tarefahub/internal/models"
	"github.com/tarefahub-io/tarefahub/internal/tasks"
)

type taskRequest struct {
	Titulo    *string `json:"titulo"`
	Descricao *string `json:"descricao"`
	Status    *string `json:"status"`
}

func validateTitulo(titulo string) (string, bool) {
	titulo = strings.TrimSpace(titulo)
	if titulo == "" || len(titulo) > models.MaxTituloLen {
		return "", false
	}
	return titulo, true
}

// ListTasksHandler returns every task owned by the caller.
func (api *Api) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerID(r)

	list, err := api.tasks.ListByOwner(userID)
	if err != nil {
		respondServerError(w, "task list failed", err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// CreateTaskHandler persists a new task owned by the caller. Status always
// starts as pendente.
func (api *Api) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerID(r)

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Titulo == nil {
		respondValidation(w, map[string]string{"titulo": "required"})
		return
	}
	titulo, ok := validateTitulo(*req.Titulo)
	if !ok {
		respondValidation(w, map[string]string{"titulo": "required, at most 200 characters"})
		return
	}

	task := &models.Task{
		UsuarioID: userID,
		Titulo:    titulo,
		Descricao: req.Descricao,
	}
	if err := api.tasks.Create(task); err != nil {
		respondServerError(w, "task create failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTaskHandler applies a partial update to a task owned by the
// caller. A task owned by someone else is reported exactly like a missing
// one.
func (api *Api) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerID(r)

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The title is required on update, matching the original API contract.
	if req.Titulo == nil {
		respondValidation(w, map[string]string{"titulo": "required"})
		return
	}
	titulo, ok := validateTitulo(*req.Titulo)
	if !ok {
		respondValidation(w, map[string]string{"titulo": "required, at most 200 characters"})
		return
	}

	upd := tasks.Update{
		Titulo:    &titulo,
		Descricao: req.Descricao,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !models.ValidStatus(status) {
			respondValidation(w, map[string]string{"status": "must be pendente or concluida"})
			return
		}
		upd.Status = &status
	}

	task, err := api.tasks.Update(userID, taskID, upd)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		respondServerError(w, "task update failed", err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTaskHandler removes a task owned by the caller.
func (api *Api) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerID(r)

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	if err := api.tasks.Delete(userID, taskID); err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		respondServerError(w, "task delete failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}
