package auth

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/tarefahub-io/tarefahub/internal/database"
	"github.com/tarefahub-io/tarefahub/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmailAlreadyTaken = errors.New("email already taken")
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
}

// SQLUserStore implements UserStore over database/sql
type SQLUserStore struct {
	db     *sql.DB
	dbType string
}

// NewUserStore creates a new SQLUserStore
func NewUserStore(db *sql.DB, dbType string) *SQLUserStore {
	return &SQLUserStore{db: db, dbType: dbType}
}

// Create stores a new user. ErrEmailAlreadyTaken is returned when the
// email is already registered.
func (s *SQLUserStore) Create(user *models.User) error {
	var exists bool
	err := s.db.QueryRow(
		database.Rebind(s.dbType, "SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = ?)"),
		user.Email,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyTaken
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if s.dbType == "postgres" {
		return s.db.QueryRow(
			"INSERT INTO usuarios (nome, email, senha_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id",
			user.Nome, user.Email, user.SenhaHash, user.CreatedAt, user.UpdatedAt,
		).Scan(&user.ID)
	}

	result, err := s.db.Exec(
		"INSERT INTO usuarios (nome, email, senha_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		user.Nome, user.Email, user.SenhaHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetByEmail retrieves a user by email
func (s *SQLUserStore) GetByEmail(email string) (*models.User, error) {
	return s.get("SELECT id, nome, email, senha_hash, created_at, updated_at FROM usuarios WHERE email = ?", email)
}

// GetByID retrieves a user by ID
func (s *SQLUserStore) GetByID(id int64) (*models.User, error) {
	return s.get("SELECT id, nome, email, senha_hash, created_at, updated_at FROM usuarios WHERE id = ?", id)
}

func (s *SQLUserStore) get(query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(database.Rebind(s.dbType, query), arg).Scan(
		&user.ID,
		&user.Nome,
		&user.Email,
		&user.SenhaHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Service bundles credential operations over a UserStore.
type Service struct {
	store UserStore
}

// NewService creates a new credential service.
func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *Service) Register(nome, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Nome:      strings.TrimSpace(nome),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		SenhaHash: string(hashed),
	}
	if err := s.store.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the submitted credentials. Only a verified hash
// comparison counts as a match; unknown email and wrong password are not
// distinguishable through the returned error.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// GetByID resolves a user by id.
func (s *Service) GetByID(id int64) (*models.User, error) {
	return s.store.GetByID(id)
}
