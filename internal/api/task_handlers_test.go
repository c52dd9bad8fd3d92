package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarefahub-io/tarefahub/internal/models"
)

type taskJSON struct {
	ID        int64   `json:"id"`
	UsuarioID int64   `json:"usuario_id"`
	Titulo    string  `json:"titulo"`
	Descricao *string `json:"descricao"`
	Status    string  `json:"status"`
}

func TestTasksRequireAuth(t *testing.T) {
	server := newTestServer(t)

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tarefas"},
		{http.MethodPost, "/tarefas"},
		{http.MethodPut, "/tarefas/1"},
		{http.MethodDelete, "/tarefas/1"},
	}

	for _, ep := range endpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			resp := doJSON(t, server, ep.method, ep.path, "", nil, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestTaskLifecycle(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, "Ana", "ana@x.com", "secret1")

	// Create
	var created taskJSON
	resp := doJSON(t, server, http.MethodPost, "/tarefas", token, map[string]interface{}{
		"titulo":    "Comprar pão",
		"descricao": "na padaria da esquina",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Comprar pão", created.Titulo)
	require.NotNil(t, created.Descricao)
	assert.Equal(t, "na padaria da esquina", *created.Descricao)
	assert.Equal(t, string(models.StatusPendente), created.Status)

	// List shows it
	var list []taskJSON
	resp = doJSON(t, server, http.MethodGet, "/tarefas", token, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// Update status
	var updated taskJSON
	resp = doJSON(t, server, http.MethodPut, fmt.Sprintf("/tarefas/%d", created.ID), token, map[string]interface{}{
		"titulo": "Comprar pão",
		"status": "concluida",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(models.StatusConcluida), updated.Status)

	resp = doJSON(t, server, http.MethodGet, "/tarefas", token, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, string(models.StatusConcluida), list[0].Status)

	// Delete
	var ack map[string]string
	resp = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/tarefas/%d", created.ID), token, nil, &ack)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, ack["message"])

	resp = doJSON(t, server, http.MethodGet, "/tarefas", token, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list)
}

func TestCreateTask_Validation(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, "Ana", "ana@x.com", "secret1")

	t.Run("MissingTitulo", func(t *testing.T) {
		resp := doJSON(t, server, http.MethodPost, "/tarefas", token, map[string]interface{}{
			"descricao": "sem título",
		}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("BlankTitulo", func(t *testing.T) {
		resp := doJSON(t, server, http.MethodPost, "/tarefas", token, map[string]interface{}{
			"titulo": "   ",
		}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestUpdateTask_Validation(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, "Ana", "ana@x.com", "secret1")

	var created taskJSON
	resp := doJSON(t, server, http.MethodPost, "/tarefas", token, map[string]interface{}{
		"titulo": "Tarefa",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("TituloRequired", func(t *testing.T) {
		resp := doJSON(t, server, http.MethodPut, fmt.Sprintf("/tarefas/%d", created.ID), token, map[string]interface{}{
			"status": "concluida",
		}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		resp := doJSON(t, server, http.MethodPut, fmt.Sprintf("/tarefas/%d", created.ID), token, map[string]interface{}{
			"titulo": "Tarefa",
			"status": "em_andamento",
		}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestTaskIsolationBetweenUsers(t *testing.T) {
	server := newTestServer(t)
	anaToken := registerUser(t, server, "Ana", "ana@x.com", "secret1")
	brunoToken := registerUser(t, server, "Bruno", "bruno@x.com", "secret2")

	var anaTask taskJSON
	resp := doJSON(t, server, http.MethodPost, "/tarefas", anaToken, map[string]interface{}{
		"titulo": "da Ana",
	}, &anaTask)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Bruno never sees Ana's tasks.
	var brunoList []taskJSON
	resp = doJSON(t, server, http.MethodGet, "/tarefas", brunoToken, nil, &brunoList)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, brunoList)

	// Update and delete of someone else's task look exactly like a
	// nonexistent id.
	ownedPath := fmt.Sprintf("/tarefas/%d", anaTask.ID)
	missingPath := fmt.Sprintf("/tarefas/%d", anaTask.ID+999)

	var ownedBody, missingBody map[string]string
	resp = doJSON(t, server, http.MethodPut, ownedPath, brunoToken, map[string]interface{}{"titulo": "x"}, &ownedBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, server, http.MethodPut, missingPath, brunoToken, map[string]interface{}{"titulo": "x"}, &missingBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, missingBody, ownedBody)

	resp = doJSON(t, server, http.MethodDelete, ownedPath, brunoToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Ana's task survived Bruno's attempts.
	var anaList []taskJSON
	resp = doJSON(t, server, http.MethodGet, "/tarefas", anaToken, nil, &anaList)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, anaList, 1)
	assert.Equal(t, "da Ana", anaList[0].Titulo)
}

func TestTask_NonNumericID(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, "Ana", "ana@x.com", "secret1")

	resp := doJSON(t, server, http.MethodPut, "/tarefas/abc", token, map[string]interface{}{"titulo": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, server, http.MethodDelete, "/tarefas/abc", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
