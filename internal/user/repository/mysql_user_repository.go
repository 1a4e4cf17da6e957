package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	"github.com/proxym/collabmanager/internal/database"
	"github.com/proxym/collabmanager/internal/user/domain"

	apperrors "github.com/proxym/collabmanager/internal/errors"
)

// MySQLUserRepository handles user persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO utilisateurs (id, nom, email, password_hash, role, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, user.Nom, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, nom, email, password_hash, role, created_at, updated_at
			  FROM utilisateurs WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, uuidBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, nom, email, password_hash, role, created_at, updated_at
			  FROM utilisateurs WHERE email = ?`

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return user, nil
}

// ExistsByEmail reports whether a user with the email exists.
func (r *MySQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM utilisateurs WHERE email = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check user existence by email")
	}

	return exists, nil
}

// Update modifies the mutable profile fields of an existing user.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE utilisateurs
			  SET nom = ?,
				  email = ?,
				  updated_at = NOW()
			  WHERE id = ?`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, user.Nom, user.Email, uuidBytes)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update user")
	}

	return requireMySQLRowAffected(result, domain.ErrUserNotFound)
}

// UpdatePassword replaces the stored password hash of a user.
func (r *MySQLUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE utilisateurs SET password_hash = ?, updated_at = NOW() WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, passwordHash, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user password")
	}

	return requireMySQLRowAffected(result, domain.ErrUserNotFound)
}

// UpdateRole replaces the stored role of a user.
func (r *MySQLUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role authDomain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE utilisateurs SET role = ?, updated_at = NOW() WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, role, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user role")
	}

	return requireMySQLRowAffected(result, domain.ErrUserNotFound)
}

// Delete removes a user by ID.
func (r *MySQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM utilisateurs WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}

	return requireMySQLRowAffected(result, domain.ErrUserNotFound)
}

// List retrieves all users ordered by creation time.
func (r *MySQLUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, nom, email, password_hash, role, created_at, updated_at
			  FROM utilisateurs ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	return scanMySQLUsers(rows)
}

// GetByRole retrieves all users with the given role ordered by creation time.
func (r *MySQLUserRepository) GetByRole(ctx context.Context, role authDomain.Role) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, nom, email, password_hash, role, created_at, updated_at
			  FROM utilisateurs WHERE role = ? ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, role)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users by role")
	}
	defer rows.Close()

	return scanMySQLUsers(rows)
}

// SearchByNom retrieves users whose name contains the term, case-insensitively.
func (r *MySQLUserRepository) SearchByNom(ctx context.Context, nom string) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, nom, email, password_hash, role, created_at, updated_at
			  FROM utilisateurs WHERE LOWER(nom) LIKE CONCAT('%', LOWER(?), '%') ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, nom)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search users by nom")
	}
	defer rows.Close()

	return scanMySQLUsers(rows)
}

// Count returns the total number of users.
func (r *MySQLUserRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM utilisateurs`

	var count int64
	if err := querier.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count users")
	}

	return count, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLUser scans a single user row, converting BINARY(16) back to a UUID.
func scanMySQLUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var idBytes []byte

	err := row.Scan(
		&idBytes, &user.Nom, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &user, nil
}

// scanMySQLUsers drains a result set into a slice of users.
func scanMySQLUsers(rows *sql.Rows) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		user, err := scanMySQLUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user row")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user rows")
	}
	return users, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

// requireMySQLRowAffected returns notFound when the statement touched no rows.
func requireMySQLRowAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
