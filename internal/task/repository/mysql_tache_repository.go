package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/proxym/collabmanager/internal/database"
	"github.com/proxym/collabmanager/internal/task/domain"

	apperrors "github.com/proxym/collabmanager/internal/errors"
)

// MySQLTacheRepository handles task persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLTacheRepository struct {
	db *sql.DB
}

// NewMySQLTacheRepository creates a new MySQLTacheRepository.
func NewMySQLTacheRepository(db *sql.DB) *MySQLTacheRepository {
	return &MySQLTacheRepository{
		db: db,
	}
}

const mysqlTacheColumns = `id, titre, description, statut, priorite, date_limite,
	projet_id, utilisateur_id, created_at, updated_at`

// Create inserts a new task.
func (r *MySQLTacheRepository) Create(ctx context.Context, tache *domain.Tache) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO taches (id, titre, description, statut, priorite, date_limite,
				  projet_id, utilisateur_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	idBytes, err := tache.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	projetBytes, err := tache.ProjetID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userBytes, err := marshalNullableUUID(tache.UtilisateurID)
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query,
		idBytes, tache.Titre, tache.Description, tache.Statut, tache.Priorite,
		tache.DateLimite, projetBytes, userBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create tache")
	}
	return nil
}

// GetByID retrieves a task by ID.
func (r *MySQLTacheRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlTacheColumns + ` FROM taches WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	tache, err := scanMySQLTache(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTacheNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get tache by id")
	}

	return tache, nil
}

// Update replaces the mutable fields of an existing task.
func (r *MySQLTacheRepository) Update(ctx context.Context, tache *domain.Tache) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE taches
			  SET titre = ?,
				  description = ?,
				  statut = ?,
				  priorite = ?,
				  date_limite = ?,
				  utilisateur_id = ?,
				  updated_at = NOW()
			  WHERE id = ?`

	idBytes, err := tache.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userBytes, err := marshalNullableUUID(tache.UtilisateurID)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, query,
		tache.Titre, tache.Description, tache.Statut, tache.Priorite,
		tache.DateLimite, userBytes, idBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update tache")
	}

	return requireMySQLRowAffected(result, domain.ErrTacheNotFound)
}

// UpdateStatut replaces the state of a task.
func (r *MySQLTacheRepository) UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE taches SET statut = ?, updated_at = NOW() WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, statut, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update tache statut")
	}

	return requireMySQLRowAffected(result, domain.ErrTacheNotFound)
}

// Delete removes a task by ID.
func (r *MySQLTacheRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM taches WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete tache")
	}

	return requireMySQLRowAffected(result, domain.ErrTacheNotFound)
}

// List retrieves all tasks ordered by creation time.
func (r *MySQLTacheRepository) List(ctx context.Context) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlTacheColumns + ` FROM taches ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches")
	}
	defer rows.Close()

	return scanMySQLTaches(rows)
}

// ListByUtilisateur retrieves the tasks assigned to a user.
func (r *MySQLTacheRepository) ListByUtilisateur(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlTacheColumns + ` FROM taches WHERE utilisateur_id = ? ORDER BY created_at`

	userBytes, err := utilisateurID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, userBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches by utilisateur")
	}
	defer rows.Close()

	return scanMySQLTaches(rows)
}

// ListByProjet retrieves the tasks of a project.
func (r *MySQLTacheRepository) ListByProjet(ctx context.Context, projetID uuid.UUID) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlTacheColumns + ` FROM taches WHERE projet_id = ? ORDER BY created_at`

	projetBytes, err := projetID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, projetBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches by projet")
	}
	defer rows.Close()

	return scanMySQLTaches(rows)
}

// ListByStatut retrieves all tasks in the given state.
func (r *MySQLTacheRepository) ListByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlTacheColumns + ` FROM taches WHERE statut = ? ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, statut)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches by statut")
	}
	defer rows.Close()

	return scanMySQLTaches(rows)
}

// ListByUtilisateurAndStatut retrieves a user's tasks in the given state.
func (r *MySQLTacheRepository) ListByUtilisateurAndStatut(
	ctx context.Context,
	utilisateurID uuid.UUID,
	statut domain.Statut,
) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlTacheColumns + ` FROM taches
			  WHERE utilisateur_id = ? AND statut = ? ORDER BY created_at`

	userBytes, err := utilisateurID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, userBytes, statut)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches by utilisateur and statut")
	}
	defer rows.Close()

	return scanMySQLTaches(rows)
}

// mysqlRowScanner abstracts *sql.Row and *sql.Rows scanning.
type mysqlRowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLTache scans a single task row, converting BINARY(16) back to UUIDs.
func scanMySQLTache(row mysqlRowScanner) (*domain.Tache, error) {
	var tache domain.Tache
	var idBytes, projetBytes, userBytes []byte

	err := row.Scan(
		&idBytes, &tache.Titre, &tache.Description, &tache.Statut, &tache.Priorite,
		&tache.DateLimite, &projetBytes, &userBytes, &tache.CreatedAt, &tache.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tache.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := tache.ProjetID.UnmarshalBinary(projetBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if userBytes != nil {
		var userID uuid.UUID
		if err := userID.UnmarshalBinary(userBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		tache.UtilisateurID = &userID
	}

	return &tache, nil
}

// scanMySQLTaches drains a result set into a slice of tasks.
func scanMySQLTaches(rows *sql.Rows) ([]*domain.Tache, error) {
	var taches []*domain.Tache
	for rows.Next() {
		tache, err := scanMySQLTache(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tache row")
		}
		taches = append(taches, tache)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tache rows")
	}
	return taches, nil
}

// marshalNullableUUID converts an optional UUID to BINARY(16) bytes or nil.
func marshalNullableUUID(id *uuid.UUID) ([]byte, error) {
	if id == nil {
		return nil, nil
	}
	b, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	return b, nil
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
