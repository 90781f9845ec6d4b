package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	// SwapLastLogin stores the login timestamp and returns the previous one
	// (zero when this is the first login) in a single atomic step, so two
	// concurrent logins cannot both observe the old day.
	SwapLastLogin(ctx context.Context, id string, at time.Time) (time.Time, error)
	SetVerified(ctx context.Context, id string, verified bool) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, username, email, password_hash, verified, last_login, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, user.Username, user.Email, user.PasswordHash, user.Verified, nullableTime(user.LastLogin), user.CreatedAt.UTC())
	return err
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRow(ctx, selectUser+` WHERE id = $1`, userID))
}

// FindByEmail fetches a user by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.scanOne(r.db.QueryRow(ctx, selectUser+` WHERE email = $1`, email))
}

// FindByUsername fetches a user by username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	return r.scanOne(r.db.QueryRow(ctx, selectUser+` WHERE username = $1`, username))
}

// SwapLastLogin stores the login timestamp used for the daily bonus check
// and returns the previous one. The row lock makes the read-and-set atomic
// against concurrent logins.
func (r *PostgresRepository) SwapLastLogin(ctx context.Context, id string, at time.Time) (time.Time, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return time.Time{}, ErrNotFound
	}
	var prev *time.Time
	err = r.db.QueryRow(ctx, `
        WITH prev AS (
            SELECT last_login FROM users WHERE id = $1 FOR UPDATE
        )
        UPDATE users SET last_login = $2
        FROM prev
        WHERE users.id = $1
        RETURNING prev.last_login`, userID, at.UTC()).Scan(&prev)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	if prev == nil {
		return time.Time{}, nil
	}
	return prev.UTC(), nil
}

// SetVerified flips the verified flag set by the external auth provider callback.
func (r *PostgresRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET verified = $1 WHERE id = $2`, verified, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const selectUser = `SELECT id, username, email, password_hash, verified, last_login, created_at FROM users`

func (r *PostgresRepository) scanOne(row pgx.Row) (User, error) {
	var (
		id        uuid.UUID
		lastLogin *time.Time
		createdAt time.Time
		user      User
	)
	if err := row.Scan(&id, &user.Username, &user.Email, &user.PasswordHash, &user.Verified, &lastLogin, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	if lastLogin != nil {
		user.LastLogin = lastLogin.UTC()
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
