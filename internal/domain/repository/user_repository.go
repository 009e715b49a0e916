package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	// CreateIfAbsent inserts user unless a row with the same email exists,
	// and returns whichever row holds the email afterwards.
	CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, bool, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.UserSummary, error)
	Count(ctx context.Context) (int, error)
	UpdateRole(ctx context.Context, id, role string, now time.Time) (*model.RoleChange, error)
	UpdateProfile(ctx context.Context, id, name, email string, now time.Time) (*model.UserSummary, error)
	EmailTakenByOther(ctx context.Context, email, userID string) (bool, error)
}

const userColumns = `id, email, name, avatar_url, role, google_id, hashed_password, email_verified, created_at, updated_at`

type pgUserRepository struct {
	db *sqlx.DB
}

func NewPgUserRepository(db *sqlx.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, bool, error) {
	query := `INSERT INTO users (id, email, name, avatar_url, role, google_id, email_verified, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (email) DO NOTHING
	          RETURNING ` + userColumns
	created := &model.User{}
	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.Name, user.AvatarURL, user.Role, user.GoogleID, user.EmailVerified, user.CreatedAt, user.UpdatedAt,
	).StructScan(created)
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("pgUserRepository.CreateIfAbsent: %w", err)
	}

	// Another request provisioned the same email first.
	existing, err := r.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, fmt.Errorf("pgUserRepository.CreateIfAbsent reread: %w", err)
	}
	return existing, false, nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user := &model.User{}
	if err := r.db.GetContext(ctx, user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.UserSummary, error) {
	query := `SELECT id, email, name, role, email_verified, created_at, updated_at
	          FROM users ORDER BY created_at DESC`
	users := []model.UserSummary{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("pgUserRepository.Count: %w", err)
	}
	return total, nil
}

func (r *pgUserRepository) UpdateRole(ctx context.Context, id, role string, now time.Time) (*model.RoleChange, error) {
	query := `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3
	          RETURNING id, email, name, role`
	change := &model.RoleChange{}
	if err := r.db.GetContext(ctx, change, query, role, now, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateRole: %w", err)
	}
	return change, nil
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, id, name, email string, now time.Time) (*model.UserSummary, error) {
	query := `UPDATE users SET name = $1, email = $2, updated_at = $3 WHERE id = $4
	          RETURNING id, email, name, role, email_verified, created_at, updated_at`
	updated := &model.UserSummary{}
	if err := r.db.GetContext(ctx, updated, query, name, email, now, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if common.IsUniqueViolation(err) {
			return nil, fmt.Errorf("email already in use: %w", common.ErrConflict)
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	return updated, nil
}

func (r *pgUserRepository) EmailTakenByOther(ctx context.Context, email, userID string) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	if err := r.db.GetContext(ctx, &taken, query, email, userID); err != nil {
		return false, fmt.Errorf("pgUserRepository.EmailTakenByOther: %w", err)
	}
	return taken, nil
}
