package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/crcresearch/padcheck/internal/pad"
)

// Source serves PAD data from a local sqlite snapshot, for offline use and
// tests. Rows come back under the canonical column names so the normal
// fallback resolution applies unchanged.
type Source struct {
	db *sql.DB
}

func New(db *sql.DB) *Source {
	return &Source{db: db}
}

func (s *Source) ListProjects(ctx context.Context) ([]pad.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_name, user_name FROM projects ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var records []pad.Record
	for rows.Next() {
		var (
			id       int64
			name     string
			userName sql.NullString
		)
		if err := rows.Scan(&id, &name, &userName); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		rec := pad.Record{"id": id, "project_name": name}
		if userName.Valid {
			rec["user_name"] = userName.String
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return records, nil
}

func (s *Source) ProjectCards(ctx context.Context, project string) ([]pad.Record, error) {
	// The analytics API accepts either a project name or a numeric id; the
	// snapshot does the same.
	query := `
		SELECT c.id, c.sample_id, c.sample_name, c.user_name, c.date_of_creation,
		       c.quantity, c.notes, c.processed_file_location, c.camera_type_1,
		       p.project_name
		FROM cards c
		JOIN projects p ON p.id = c.project_id
		WHERE `
	var arg any
	if id, err := strconv.ParseInt(project, 10, 64); err == nil {
		query += "p.id = ?"
		arg = id
	} else {
		query += "p.project_name = ?"
		arg = project
	}

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list project cards: %w", err)
	}
	defer rows.Close()

	var records []pad.Record
	for rows.Next() {
		rec, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return records, nil
}

func (s *Source) CardByID(ctx context.Context, id int) (pad.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.sample_id, c.sample_name, c.user_name, c.date_of_creation,
		       c.quantity, c.notes, c.processed_file_location, c.camera_type_1,
		       p.project_name
		FROM cards c
		JOIN projects p ON p.id = c.project_id
		WHERE c.id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get card: %w", err)
		}
		return nil, nil
	}

	return scanCard(rows)
}

// scanCard reads one card row into a Record, omitting NULL columns so the
// normalization defaults apply.
func scanCard(rows *sql.Rows) (pad.Record, error) {
	var (
		id          int64
		sampleID    sql.NullInt64
		sampleName  sql.NullString
		userName    sql.NullString
		dateOfCre   sql.NullString
		quantity    sql.NullFloat64
		notes       sql.NullString
		fileLoc     sql.NullString
		cameraType  sql.NullString
		projectName string
	)
	if err := rows.Scan(&id, &sampleID, &sampleName, &userName, &dateOfCre,
		&quantity, &notes, &fileLoc, &cameraType, &projectName); err != nil {
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}

	rec := pad.Record{"id": id, "project_name": projectName}
	if sampleID.Valid {
		rec["sample_id"] = sampleID.Int64
	}
	if sampleName.Valid {
		rec["sample_name"] = sampleName.String
	}
	if userName.Valid {
		rec["user_name"] = userName.String
	}
	if dateOfCre.Valid {
		rec["date_of_creation"] = dateOfCre.String
	}
	if quantity.Valid {
		rec["quantity"] = quantity.Float64
	}
	if notes.Valid {
		rec["notes"] = notes.String
	}
	if fileLoc.Valid {
		rec["processed_file_location"] = fileLoc.String
	}
	if cameraType.Valid {
		rec["camera_type_1"] = cameraType.String
	}
	return rec, nil
}
