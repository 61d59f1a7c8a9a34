package postgres

import (
	"context"
	"errors"
	"fmt"

	"new-recruitment-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

// translateErr maps the store's unique-constraint rejection on email to the
// domain sentinel so the usecase can answer with a conflict. The constraint
// is the authoritative uniqueness guard; pre-checks upstream are advisory.
func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "candidates_email_key" {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO candidates (
			id, first_name, last_name, email, phone,
			years_of_experience, status, consent_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = tx.Exec(ctx, insertQuery,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.YearsOfExperience, c.Status, c.ConsentDate, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return translateErr(err)
	}

	offerInsert := `INSERT INTO candidate_job_offers (candidate_id, job_offer_id) VALUES ($1, $2)`
	for _, offerID := range c.JobOfferIDs {
		if _, err := tx.Exec(ctx, offerInsert, c.ID, offerID); err != nil {
			return fmt.Errorf("failed to insert job offer %d: %w", offerID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `
		SELECT id, first_name, last_name, email, phone,
		       years_of_experience, status, consent_date, created_at, updated_at
		FROM candidates WHERE id = $1`

	c, err := r.scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil || c == nil {
		return nil, err
	}

	if c.JobOfferIDs, err = r.jobOfferIDs(ctx, id); err != nil {
		return nil, err
	}
	if c.Notes, err = r.notes(ctx, id); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	// Existence pre-check only; associations and notes are not loaded.
	query := `
		SELECT id, first_name, last_name, email, phone,
		       years_of_experience, status, consent_date, created_at, updated_at
		FROM candidates WHERE email = $1`

	return r.scanCandidate(r.db.QueryRow(ctx, query, email))
}

func (r *candidateRepository) List(ctx context.Context, filter domain.CandidateFilter, perPage int) ([]domain.Candidate, int64, error) {
	where := ""
	args := []any{}
	if filter.JobOfferID != nil {
		// Membership filter via EXISTS so the aggregated set stays complete.
		where = ` WHERE EXISTS (
			SELECT 1 FROM candidate_job_offers f
			WHERE f.candidate_id = c.id AND f.job_offer_id = $1)`
		args = append(args, *filter.JobOfferID)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM candidates c` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	listQuery := fmt.Sprintf(`
		SELECT c.id, c.first_name, c.last_name, c.email, c.phone,
		       c.years_of_experience, c.status, c.consent_date, c.created_at, c.updated_at,
		       COALESCE(array_agg(cjo.job_offer_id ORDER BY cjo.job_offer_id)
		                FILTER (WHERE cjo.job_offer_id IS NOT NULL), '{}')
		FROM candidates c
		LEFT JOIN candidate_job_offers cjo ON cjo.candidate_id = c.id
		%s
		GROUP BY c.id
		ORDER BY c.created_at, c.id
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, perPage, offset)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		var c domain.Candidate
		offerIDs := []int64{}
		err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.YearsOfExperience, &c.Status, &c.ConsentDate, &c.CreatedAt, &c.UpdatedAt,
			&offerIDs,
		)
		if err != nil {
			return nil, 0, err
		}
		c.JobOfferIDs = offerIDs
		c.Notes = []domain.Note{}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return candidates, total, nil
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate, replaceJobOffers bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE candidates SET
			first_name = $1, last_name = $2, email = $3, phone = $4,
			years_of_experience = $5, status = $6, consent_date = $7, updated_at = $8
		WHERE id = $9`

	_, err = tx.Exec(ctx, updateQuery,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.YearsOfExperience, c.Status, c.ConsentDate, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return translateErr(err)
	}

	if replaceJobOffers {
		// Full replace of the association set, not a diff.
		if _, err := tx.Exec(ctx, `DELETE FROM candidate_job_offers WHERE candidate_id = $1`, c.ID); err != nil {
			return fmt.Errorf("failed to clear job offers: %w", err)
		}
		offerInsert := `INSERT INTO candidate_job_offers (candidate_id, job_offer_id) VALUES ($1, $2)`
		for _, offerID := range c.JobOfferIDs {
			if _, err := tx.Exec(ctx, offerInsert, c.ID, offerID); err != nil {
				return fmt.Errorf("failed to insert job offer %d: %w", offerID, err)
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Children are removed explicitly even though the schema cascades, so
	// delete semantics do not depend on the live schema revision.
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_job_offers WHERE candidate_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_notes WHERE candidate_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *candidateRepository) AddNote(ctx context.Context, candidateID string, note *domain.Note) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	noteInsert := `
		INSERT INTO candidate_notes (id, candidate_id, content, recruiter_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, noteInsert, note.ID, candidateID, note.Content, note.RecruiterID, note.CreatedAt); err != nil {
		return err
	}

	// Adding a note counts as a candidate mutation.
	if _, err := tx.Exec(ctx, `UPDATE candidates SET updated_at = $1 WHERE id = $2`, note.CreatedAt, candidateID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *candidateRepository) scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.YearsOfExperience, &c.Status, &c.ConsentDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.JobOfferIDs = []int64{}
	c.Notes = []domain.Note{}
	return &c, nil
}

func (r *candidateRepository) jobOfferIDs(ctx context.Context, candidateID string) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_offer_id FROM candidate_job_offers WHERE candidate_id = $1 ORDER BY job_offer_id`,
		candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job offers: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *candidateRepository) notes(ctx context.Context, candidateID string) ([]domain.Note, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, content, recruiter_id, created_at
		 FROM candidate_notes WHERE candidate_id = $1 ORDER BY created_at, id`,
		candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.RecruiterID, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
