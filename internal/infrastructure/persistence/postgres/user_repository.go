package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, is_active, created_at`

const insertUserSQL = `
INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

const insertVolunteerSQL = `
INSERT INTO volunteers (id, user_id, wilaya, commune, motivation, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6);
`

const insertOrganizationSQL = `
INSERT INTO organizations (id, user_id, name, type, wilaya, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) CreateVolunteerAccount(ctx context.Context, user *domain.User, profile *domain.Volunteer) error {
	return r.createAccount(ctx, user, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertVolunteerSQL,
			profile.ID.UUID, user.ID.UUID, profile.Wilaya, profile.Commune, profile.Motivation, profile.CreatedAt)
		return err
	})
}

func (r *UserRepository) CreateOrganizationAccount(ctx context.Context, user *domain.User, profile *domain.Organization) error {
	return r.createAccount(ctx, user, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertOrganizationSQL,
			profile.ID.UUID, user.ID.UUID, profile.Name, string(profile.Type),
			profile.Wilaya, profile.Description, profile.CreatedAt)
		return err
	})
}

// createAccount writes the user row and the role profile row in one
// transaction so an account never exists without its profile.
func (r *UserRepository) createAccount(ctx context.Context, user *domain.User, insertProfile func(context.Context, pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertUserSQL,
		user.ID.UUID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Phone, string(user.Role), user.IsActive, user.CreatedAt)
	if isUniqueViolation(err, "users_email_key") {
		return domerrors.ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if err := insertProfile(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.one(ctx, query, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.one(ctx, query, id.UUID)
}

func (r *UserRepository) one(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID.UUID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
