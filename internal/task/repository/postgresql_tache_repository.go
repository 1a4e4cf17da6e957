// Package repository provides data persistence implementations for task entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
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

// PostgreSQLTacheRepository handles task persistence for PostgreSQL.
type PostgreSQLTacheRepository struct {
	db *sql.DB
}

// NewPostgreSQLTacheRepository creates a new PostgreSQLTacheRepository.
func NewPostgreSQLTacheRepository(db *sql.DB) *PostgreSQLTacheRepository {
	return &PostgreSQLTacheRepository{
		db: db,
	}
}

const pgTacheColumns = `id, titre, description, statut, priorite, date_limite,
	projet_id, utilisateur_id, created_at, updated_at`

// Create inserts a new task.
func (r *PostgreSQLTacheRepository) Create(ctx context.Context, tache *domain.Tache) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO taches (id, titre, description, statut, priorite, date_limite,
				  projet_id, utilisateur_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		tache.ID, tache.Titre, tache.Description, tache.Statut, tache.Priorite,
		tache.DateLimite, tache.ProjetID, tache.UtilisateurID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create tache")
	}
	return nil
}

// GetByID retrieves a task by ID.
func (r *PostgreSQLTacheRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgTacheColumns + ` FROM taches WHERE id = $1`

	tache, err := scanTache(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTacheNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get tache by id")
	}

	return tache, nil
}

// Update replaces the mutable fields of an existing task.
func (r *PostgreSQLTacheRepository) Update(ctx context.Context, tache *domain.Tache) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE taches
			  SET titre = $1,
				  description = $2,
				  statut = $3,
				  priorite = $4,
				  date_limite = $5,
				  utilisateur_id = $6,
				  updated_at = NOW()
			  WHERE id = $7`

	result, err := querier.ExecContext(ctx, query,
		tache.Titre, tache.Description, tache.Statut, tache.Priorite,
		tache.DateLimite, tache.UtilisateurID, tache.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update tache")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrTacheNotFound
	}

	return nil
}

// UpdateStatut replaces the state of a task.
func (r *PostgreSQLTacheRepository) UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE taches SET statut = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, statut, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update tache statut")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrTacheNotFound
	}

	return nil
}

// Delete removes a task by ID.
func (r *PostgreSQLTacheRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM taches WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete tache")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrTacheNotFound
	}

	return nil
}

// List retrieves all tasks ordered by creation time.
func (r *PostgreSQLTacheRepository) List(ctx context.Context) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgTacheColumns + ` FROM taches ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches")
	}
	defer rows.Close()

	return scanTaches(rows)
}

// ListByUtilisateur retrieves the tasks assigned to a user.
func (r *PostgreSQLTacheRepository) ListByUtilisateur(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgTacheColumns + ` FROM taches WHERE utilisateur_id = $1 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, utilisateurID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches by utilisateur")
	}
	defer rows.Close()

	return scanTaches(rows)
}

// ListByProjet retrieves the tasks of a project.
func (r *PostgreSQLTacheRepository) ListByProjet(ctx context.Context, projetID uuid.UUID) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgTacheColumns + ` FROM taches WHERE projet_id = $1 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, projetID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches by projet")
	}
	defer rows.Close()

	return scanTaches(rows)
}

// ListByStatut retrieves all tasks in the given state.
func (r *PostgreSQLTacheRepository) ListByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgTacheColumns + ` FROM taches WHERE statut = $1 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, statut)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches by statut")
	}
	defer rows.Close()

	return scanTaches(rows)
}

// ListByUtilisateurAndStatut retrieves a user's tasks in the given state.
func (r *PostgreSQLTacheRepository) ListByUtilisateurAndStatut(
	ctx context.Context,
	utilisateurID uuid.UUID,
	statut domain.Statut,
) ([]*domain.Tache, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgTacheColumns + ` FROM taches
			  WHERE utilisateur_id = $1 AND statut = $2 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, utilisateurID, statut)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list taches by utilisateur and statut")
	}
	defer rows.Close()

	return scanTaches(rows)
}

// rowScanner abstracts *sql.Row and *sql.Rows scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTache scans a single task row. The assignee is nullable.
func scanTache(row rowScanner) (*domain.Tache, error) {
	var tache domain.Tache
	var utilisateurID uuid.NullUUID

	err := row.Scan(
		&tache.ID, &tache.Titre, &tache.Description, &tache.Statut, &tache.Priorite,
		&tache.DateLimite, &tache.ProjetID, &utilisateurID, &tache.CreatedAt, &tache.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if utilisateurID.Valid {
		tache.UtilisateurID = &utilisateurID.UUID
	}

	return &tache, nil
}

// scanTaches drains a result set into a slice of tasks.
func scanTaches(rows *sql.Rows) ([]*domain.Tache, error) {
	var taches []*domain.Tache
	for rows.Next() {
		tache, err := scanTache(rows)
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
