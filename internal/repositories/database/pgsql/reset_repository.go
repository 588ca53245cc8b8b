package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/TidonAM/ODET/internal/apperrors"
	"github.com/TidonAM/ODET/internal/core/domain"
	portsrepo "github.com/TidonAM/ODET/internal/core/ports/repositories"
	"github.com/TidonAM/ODET/internal/models"
	"github.com/TidonAM/ODET/internal/utils/mapping"
	"github.com/TidonAM/ODET/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultResetPageSize bounds period listings when the caller does not
// pass an explicit limit.
const defaultResetPageSize = 20

// PgxResetRepository persists period boundaries. The resets table is
// insert-only: there is no UPDATE or DELETE statement here, which is what
// makes "the active period is the newest row" safe to rely on.
type PgxResetRepository struct {
	BaseRepository
}

// newPgxResetRepository creates a new repository for reset data.
func newPgxResetRepository(pool *pgxpool.Pool) portsrepo.ResetRepositoryFacade {
	return &PgxResetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ResetRepositoryFacade = (*PgxResetRepository)(nil)

const resetColumns = `reset_id, user_id, reset_date, created_at, created_by, last_updated_at, last_updated_by`

func scanReset(row pgx.Row) (models.Reset, error) {
	var m models.Reset
	err := row.Scan(
		&m.ResetID,
		&m.UserID,
		&m.ResetDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxResetRepository) SaveReset(ctx context.Context, reset domain.Reset) error {
	m := mapping.ToModelReset(reset)
	query := `
		INSERT INTO resets (` + resetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ResetID,
		m.UserID,
		m.ResetDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save reset: %w", err)
	}
	return nil
}

func (r *PgxResetRepository) FindResetByID(ctx context.Context, userID string, resetID string) (*domain.Reset, error) {
	query := `
		SELECT ` + resetColumns + `
		FROM resets
		WHERE reset_id = $1 AND user_id = $2;
	`
	m, err := scanReset(r.Pool.QueryRow(ctx, query, resetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reset by ID %s: %w", resetID, err)
	}

	d := mapping.ToDomainReset(m)
	return &d, nil
}

func (r *PgxResetRepository) FindLatestReset(ctx context.Context, userID string) (*domain.Reset, error) {
	query := `
		SELECT ` + resetColumns + `
		FROM resets
		WHERE user_id = $1
		ORDER BY reset_date DESC, created_at DESC
		LIMIT 1;
	`
	m, err := scanReset(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest reset: %w", err)
	}

	d := mapping.ToDomainReset(m)
	return &d, nil
}

func (r *PgxResetRepository) ListResets(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Reset, *string, error) {
	if limit <= 0 {
		limit = defaultResetPageSize
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	query := `
		SELECT ` + resetColumns + `
		FROM resets
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if nextToken != nil && *nextToken != "" {
		lastResetDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", err)
		}
		query += ` AND (reset_date, created_at) < ($2, $3)`
		args = append(args, lastResetDate, lastCreatedAt)
	}

	query += ` ORDER BY reset_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list resets: %w", err)
	}
	defer rows.Close()

	ms := make([]models.Reset, 0, fetchLimit)
	for rows.Next() {
		m, err := scanReset(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan reset row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed iterating reset rows: %w", err)
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.ResetDate, last.CreatedAt)
		token = &t
	}

	return mapping.ToDomainResetSlice(ms), token, nil
}
