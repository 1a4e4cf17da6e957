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

// MySQLProjetRepository handles project persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLProjetRepository struct {
	db *sql.DB
}

// NewMySQLProjetRepository creates a new MySQLProjetRepository.
func NewMySQLProjetRepository(db *sql.DB) *MySQLProjetRepository {
	return &MySQLProjetRepository{
		db: db,
	}
}

const mysqlProjetColumns = `id, nom, description, statut, date_debut, date_fin, created_at, updated_at`

// Create inserts a new project.
func (r *MySQLProjetRepository) Create(ctx context.Context, projet *domain.Projet) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO projets (id, nom, description, statut, date_debut, date_fin, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	idBytes, err := projet.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		idBytes, projet.Nom, projet.Description, projet.Statut, projet.DateDebut, projet.DateFin,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create projet")
	}
	return nil
}

// GetByID retrieves a project by ID.
func (r *MySQLProjetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlProjetColumns + ` FROM projets WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	projet, err := scanMySQLProjet(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjetNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get projet by id")
	}

	return projet, nil
}

// List retrieves all projects ordered by creation time.
func (r *MySQLProjetRepository) List(ctx context.Context) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlProjetColumns + ` FROM projets ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projets")
	}
	defer rows.Close()

	return scanMySQLProjets(rows)
}

// SearchByNom retrieves projects whose name contains the term, case-insensitively.
func (r *MySQLProjetRepository) SearchByNom(ctx context.Context, nom string) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlProjetColumns + ` FROM projets
			  WHERE LOWER(nom) LIKE CONCAT('%', LOWER(?), '%') ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, nom)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search projets by nom")
	}
	defer rows.Close()

	return scanMySQLProjets(rows)
}

// GetByStatut retrieves all projects in the given state.
func (r *MySQLProjetRepository) GetByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlProjetColumns + ` FROM projets WHERE statut = ? ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, statut)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projets by statut")
	}
	defer rows.Close()

	return scanMySQLProjets(rows)
}

// UpdateStatut replaces the state of a project.
func (r *MySQLProjetRepository) UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE projets SET statut = ?, updated_at = NOW() WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, statut, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update projet statut")
	}

	return requireMySQLRowAffected(result, domain.ErrProjetNotFound)
}

// Delete removes a project by ID. Participant links are removed by the
// ON DELETE CASCADE constraint.
func (r *MySQLProjetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM projets WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete projet")
	}

	return requireMySQLRowAffected(result, domain.ErrProjetNotFound)
}

// AssignParticipant links a user to a project.
func (r *MySQLProjetRepository) AssignParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO projet_participants (projet_id, utilisateur_id) VALUES (?, ?)`

	projetBytes, err := projetID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userBytes, err := utilisateurID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, projetBytes, userBytes)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrParticipantAlreadyAssigned
		}
		return apperrors.Wrap(err, "failed to assign participant")
	}
	return nil
}

// RemoveParticipant unlinks a user from a project.
func (r *MySQLProjetRepository) RemoveParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM projet_participants WHERE projet_id = ? AND utilisateur_id = ?`

	projetBytes, err := projetID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userBytes, err := utilisateurID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, projetBytes, userBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove participant")
	}

	return requireMySQLRowAffected(result, domain.ErrParticipantNotAssigned)
}

// ListParticipantIDs returns the IDs of users participating in a project.
func (r *MySQLProjetRepository) ListParticipantIDs(ctx context.Context, projetID uuid.UUID) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT utilisateur_id FROM projet_participants WHERE projet_id = ?`

	projetBytes, err := projetID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, projetBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list participant ids")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var idBytes []byte
		if err := rows.Scan(&idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan participant id")
		}
		var id uuid.UUID
		if err := id.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate participant rows")
	}

	return ids, nil
}

// IsParticipant reports whether the user is linked to the project.
func (r *MySQLProjetRepository) IsParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM projet_participants WHERE projet_id = ? AND utilisateur_id = ?)`

	projetBytes, err := projetID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal UUID")
	}
	userBytes, err := utilisateurID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var exists bool
	if err := querier.QueryRowContext(ctx, query, projetBytes, userBytes).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check participant")
	}

	return exists, nil
}

// ListWithoutParticipants retrieves projects that have no participants.
func (r *MySQLProjetRepository) ListWithoutParticipants(ctx context.Context) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlProjetColumns + ` FROM projets p
			  WHERE NOT EXISTS (SELECT 1 FROM projet_participants pp WHERE pp.projet_id = p.id)
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projets without participants")
	}
	defer rows.Close()

	return scanMySQLProjets(rows)
}

// ListByParticipant retrieves the projects a user participates in.
func (r *MySQLProjetRepository) ListByParticipant(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Projet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT p.id, p.nom, p.description, p.statut, p.date_debut, p.date_fin, p.created_at, p.updated_at
			  FROM projets p
			  JOIN projet_participants pp ON pp.projet_id = p.id
			  WHERE pp.utilisateur_id = ?
			  ORDER BY p.created_at`

	userBytes, err := utilisateurID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, userBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projets by participant")
	}
	defer rows.Close()

	return scanMySQLProjets(rows)
}

// GetStatistiques aggregates task and membership counts for a project.
func (r *MySQLProjetRepository) GetStatistiques(ctx context.Context, projetID uuid.UUID) (*domain.Statistiques, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT
				  COUNT(t.id),
				  COALESCE(SUM(t.statut = 'A_FAIRE'), 0),
				  COALESCE(SUM(t.statut = 'EN_COURS'), 0),
				  COALESCE(SUM(t.statut = 'TERMINE'), 0),
				  (SELECT COUNT(*) FROM projet_participants pp WHERE pp.projet_id = ?)
			  FROM taches t WHERE t.projet_id = ?`

	projetBytes, err := projetID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	stats := domain.Statistiques{ProjetID: projetID}
	err = querier.QueryRowContext(ctx, query, projetBytes, projetBytes).Scan(
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

// mysqlRowScanner abstracts *sql.Row and *sql.Rows scanning.
type mysqlRowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLProjet scans a single project row, converting BINARY(16) back to a UUID.
func scanMySQLProjet(row mysqlRowScanner) (*domain.Projet, error) {
	var projet domain.Projet
	var idBytes []byte

	err := row.Scan(
		&idBytes, &projet.Nom, &projet.Description, &projet.Statut,
		&projet.DateDebut, &projet.DateFin, &projet.CreatedAt, &projet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := projet.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &projet, nil
}

// scanMySQLProjets drains a result set into a slice of projects.
func scanMySQLProjets(rows *sql.Rows) ([]*domain.Projet, error) {
	var projets []*domain.Projet
	for rows.Next() {
		projet, err := scanMySQLProjet(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan projet row")
		}
		projets = append(projets, projet)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate projet rows")
	}
	return projets, nil
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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
