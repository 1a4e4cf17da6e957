// Package repository provides data persistence implementations for project entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/proxym/collabmanager/internal/database"
	"github.com/proxym/collabmanager/internal/project/domain"

	apperrors "github.com/proxym/collabmanager/internal/errors"
)

// PostgreSQLProjetRepository handles project persistence for PostgreSQL.
type PostgreSQLProjetRepository struct {
	db *sql.DB
}

// NewPostgreSQLProjetRepository creates a new PostgreSQLProjetRepository.
func NewPostgreSQLProjetRepository(db *sql.DB) *PostgreSQLProjetRepository {
	return &PostgreSQLProjetRepository{
		db: db,
	}
}

const pgProjetColumns = `id, nom, description, statut, date_debut, date_fin, created_at, updated_at`

// Create inserts a new project.
func (r *PostgreSQLProjetRepository) Create(ctx context.Context, projet *domain.Projet) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO projets (id, nom, description, statut, date_debut, date_fin, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		projet.ID, projet.Nom, projet.Description, projet.Statut, projet.DateDebut, projet.DateFin,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create projet")
	}
	return nil
}

// GetByID retrieves a project by ID.
func (r *PostgreSQLProjetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgProjetColumns + ` FROM projets WHERE id = $1`

	var projet domain.Projet
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&projet.ID, &projet.Nom, &projet.Description, &projet.Statut,
		&projet.DateDebut, &projet.DateFin, &projet.CreatedAt, &projet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjetNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get projet by id")
	}

	return &projet, nil
}

// List retrieves all projects ordered by creation time.
func (r *PostgreSQLProjetRepository) List(ctx context.Context) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgProjetColumns + ` FROM projets ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projets")
	}
	defer rows.Close()

	return scanProjets(rows)
}

// SearchByNom retrieves projects whose name contains the term, case-insensitively.
func (r *PostgreSQLProjetRepository) SearchByNom(ctx context.Context, nom string) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgProjetColumns + ` FROM projets
			  WHERE nom ILIKE '%' || $1 || '%' ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, nom)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search projets by nom")
	}
	defer rows.Close()

	return scanProjets(rows)
}

// GetByStatut retrieves all projects in the given state.
func (r *PostgreSQLProjetRepository) GetByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgProjetColumns + ` FROM projets WHERE statut = $1 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, statut)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projets by statut")
	}
	defer rows.Close()

	return scanProjets(rows)
}

// UpdateStatut replaces the state of a project.
func (r *PostgreSQLProjetRepository) UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE projets SET statut = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, statut, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update projet statut")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrProjetNotFound
	}

	return nil
}

// Delete removes a project by ID. Participant links are removed by the
// ON DELETE CASCADE constraint.
func (r *PostgreSQLProjetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM projets WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete projet")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrProjetNotFound
	}

	return nil
}

// AssignParticipant links a user to a project.
func (r *PostgreSQLProjetRepository) AssignParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO projet_participants (projet_id, utilisateur_id) VALUES ($1, $2)`

	_, err := querier.ExecContext(ctx, query, projetID, utilisateurID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrParticipantAlreadyAssigned
		}
		return apperrors.Wrap(err, "failed to assign participant")
	}
	return nil
}

// RemoveParticipant unlinks a user from a project.
func (r *PostgreSQLProjetRepository) RemoveParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM projet_participants WHERE projet_id = $1 AND utilisateur_id = $2`

	result, err := querier.ExecContext(ctx, query, projetID, utilisateurID)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove participant")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrParticipantNotAssigned
	}

	return nil
}

// ListParticipantIDs returns the IDs of users participating in a project.
func (r *PostgreSQLProjetRepository) ListParticipantIDs(ctx context.Context, projetID uuid.UUID) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT utilisateur_id FROM projet_participants WHERE projet_id = $1`

	rows, err := querier.QueryContext(ctx, query, projetID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list participant ids")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan participant id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate participant rows")
	}

	return ids, nil
}

// IsParticipant reports whether the user is linked to the project.
func (r *PostgreSQLProjetRepository) IsParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM projet_participants WHERE projet_id = $1 AND utilisateur_id = $2)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, projetID, utilisateurID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check participant")
	}

	return exists, nil
}

// ListWithoutParticipants retrieves projects that have no participants.
func (r *PostgreSQLProjetRepository) ListWithoutParticipants(ctx context.Context) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgProjetColumns + ` FROM projets p
			  WHERE NOT EXISTS (SELECT 1 FROM projet_participants pp WHERE pp.projet_id = p.id)
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projets without participants")
	}
	defer rows.Close()

	return scanProjets(rows)
}

// ListByParticipant retrieves the projects a user participates in.
func (r *PostgreSQLProjetRepository) ListByParticipant(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT p.id, p.nom, p.description, p.statut, p.date_debut, p.date_fin, p.created_at, p.updated_at
			  FROM projets p
			  JOIN projet_participants pp ON pp.projet_id = p.id
			  WHERE pp.utilisateur_id = $1
			  ORDER BY p.created_at`

	rows, err := querier.QueryContext(ctx, query, utilisateurID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projets by participant")
	}
	defer rows.Close()

	return scanProjets(rows)
}

// GetStatistiques aggregates task and membership counts for a project.
func (r *PostgreSQLProjetRepository) GetStatistiques(ctx context.Context, projetID uuid.UUID) (*domain.Statistiques, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT
				  COUNT(t.id),
				  COUNT(t.id) FILTER (WHERE t.statut = 'A_FAIRE'),
				  COUNT(t.id) FILTER (WHERE t.statut = 'EN_COURS'),
				  COUNT(t.id) FILTER (WHERE t.statut = 'TERMINE'),
				  (SELECT COUNT(*) FROM projet_participants pp WHERE pp.projet_id = $1)
			  FROM taches t WHERE t.projet_id = $1`

	stats := domain.Statistiques{ProjetID: projetID}
	err := querier.QueryRowContext(ctx, query, projetID).Scan(
		&stats.TotalTaches, &stats.TachesAFaire, &stats.TachesEnCours,
		&stats.TachesTerminees, &stats.NombreMembres,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get projet statistiques")
	}

	if stats.TotalTaches > 0 {
		stats.TauxAvancement = float64(stats.TachesTerminees) / float64(stats.TotalTaches)
	}

	return &stats, nil
}

// scanProjets drains a result set into a slice of projects.
func scanProjets(rows *sql.Rows) ([]*domain.Projet, error) {
	var projets []*domain.Projet
	for rows.Next() {
		var projet domain.Projet
		if err := rows.Scan(
			&projet.ID, &projet.Nom, &projet.Description, &projet.Statut,
			&projet.DateDebut, &projet.DateFin, &projet.CreatedAt, &projet.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan projet row")
		}
		projets = append(projets, &projet)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate projet rows")
	}
	return projets, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
