package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tarefahub-io/tarefahub/internal/auth"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Nome     string `json:"nome"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler authenticates a user and returns a bearer token with a
// minimal user projection. Unknown email and wrong password produce the
// same response.
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]string{}
	if creds.Email == "" {
		fields["email"] = "required"
	}
	if creds.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		respondValidation(w, fields)
		return
	}

	user, err := api.users.Authenticate(creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondServerError(w, "login failed", err)
		return
	}

	token, err := api.tokens.GenerateToken(user.ID)
	if err != nil {
		respondServerError(w, "token generation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}

// RegisterHandler creates a new account and signs the user in. The
// display name is accepted as "nome" with "name" as a fallback.
func (api *Api) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	nome := req.Nome
	if nome == "" {
		nome = req.Name
	}

	fields := map[string]string{}
	if !auth.ValidateNome(nome) {
		fields["nome"] = "required, at most 100 characters"
	}
	if !auth.ValidateEmail(req.Email) {
		fields["email"] = "must be a valid email"
	}
	if !auth.ValidatePassword(req.Password) {
		fields["password"] = "must be at least 6 characters"
	}
	if len(fields) > 0 {
		respondValidation(w, fields)
		return
	}

	user, err := api.users.Register(nome, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyTaken) {
			respondValidation(w, map[string]string{"email": "already registered"})
			return
		}
		respondServerError(w, "registration failed", err)
		return
	}

	token, err := api.tokens.GenerateToken(user.ID)
	if err != nil {
		respondServerError(w, "token generation failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}

// LogoutHandler acknowledges the logout. There is no server-side session
// to invalidate; the token stays valid until it expires.
func (api *Api) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// CurrentUserHandler resolves the token's subject and returns the user
// projection. Serves both /me and /auth/verificar.
func (api *Api) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "token not provided")
		return
	}

	user, err := api.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondServerError(w, "user lookup failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user.Public()})
}
