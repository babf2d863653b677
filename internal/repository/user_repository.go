package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fulcrum-wms/packer/internal/models"
)

// UserRepository handles database operations for user accounts. Identity
// only — authentication and roles are out of scope for this service.
type UserRepository struct {
	db sqlx.ExtContext
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var u models.User
	if err := sqlx.GetContext(ctx, r.db, &u, query, id); err != nil {
		return nil, fmt.Errorf("repository: get user %s: %w", id, err)
	}
	return &u, nil
}
