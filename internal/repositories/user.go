package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-calculations/internal/models"
)

const redacted = "***"

// UserRepository reads and writes users.
type UserRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB, txGetter TxGetter) *UserRepository {
	return &UserRepository{db: db, txGetter: txGetter}
}

// GetByUsernameOrEmail returns the user whose username or email equals either
// argument, so a username taken as someone's email counts as a match too.
// A username match on username wins. Returns nil, nil if nothing matches.
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	const query = `
		SELECT user_id, username, email, first_name, last_name, password_hash,
		       is_active, is_verified, created_at, updated_at, last_login
		FROM users
		WHERE username IN ($1, $2) OR email IN ($1, $2)
		ORDER BY (username = $1) DESC, (email = $2) DESC
		LIMIT 1
	`

	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, username, email)

	logQuery(ctx, query, []any{username, email}, user, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Insert stores a new user and fills its timestamps.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (user_id, username, email, first_name, last_name, password_hash,
		                   is_active, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query,
		user.UserID, user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.IsActive, user.IsVerified,
	)
	err := row.Scan(&user.CreatedAt, &user.UpdatedAt)

	logQuery(ctx, query,
		[]any{user.UserID, user.Username, user.Email, user.FirstName, user.LastName, redacted, user.IsActive, user.IsVerified},
		user.CreatedAt, err,
	)

	return mapPgError(err)
}

// Update overwrites the mutable user fields and advances updated_at.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `
		UPDATE users
		SET username = $2, email = $3, first_name = $4, last_name = $5, password_hash = $6,
		    is_active = $7, is_verified = $8, last_login = $9, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at
	`

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query,
		user.UserID, user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.IsActive, user.IsVerified, user.LastLogin,
	)
	err := row.Scan(&user.UpdatedAt)

	logQuery(ctx, query,
		[]any{user.UserID, user.Username, user.Email, user.FirstName, user.LastName, redacted, user.IsActive, user.IsVerified, user.LastLogin},
		user.UpdatedAt, err,
	)

	return mapPgError(err)
}
