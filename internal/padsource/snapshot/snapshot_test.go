package snapshot

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crcresearch/padcheck/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	_, err = d.Exec(`
		INSERT INTO projects (id, project_name, user_name) VALUES
			(1, 'FHI2022', 'jdoe'),
			(2, 'MiniLab', 'asmith');

		INSERT INTO cards (id, project_id, sample_id, sample_name, user_name,
			date_of_creation, quantity, notes, processed_file_location, camera_type_1)
		VALUES
			(10, 1, 100, 'Amoxicillin', 'jdoe', '2023-05-01T14:30:00Z', 80,
			 '{"Phone ID":"P1"}', '/var/www/html/images/10.png', 'Pixel 6'),
			(11, 1, NULL, NULL, 'asmith', '2023-05-02T10:00:00Z', NULL,
			 NULL, NULL, NULL),
			(20, 2, 200, 'Paracetamol', 'jdoe', '2023-04-01T09:00:00Z', 50,
			 NULL, NULL, NULL);
	`)
	require.NoError(t, err)
	return d
}

func TestListProjects(t *testing.T) {
	src := New(openTestDB(t))

	rows, err := src.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, "FHI2022", rows[0]["project_name"])
	assert.Equal(t, "jdoe", rows[0]["user_name"])
}

func TestProjectCardsByName(t *testing.T) {
	src := New(openTestDB(t))

	rows, err := src.ProjectCards(context.Background(), "FHI2022")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "FHI2022", r["project_name"])
	}
}

func TestProjectCardsByNumericID(t *testing.T) {
	src := New(openTestDB(t))

	rows, err := src.ProjectCards(context.Background(), "2")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(20), rows[0]["id"])
}

func TestProjectCardsUnknownProject(t *testing.T) {
	src := New(openTestDB(t))

	rows, err := src.ProjectCards(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// NULL columns must be absent from the record, not present as nil values,
// so normalization falls back to its defaults.
func TestNullColumnsOmitted(t *testing.T) {
	src := New(openTestDB(t))

	rec, err := src.CardByID(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, rec)
	_, hasSample := rec["sample_name"]
	assert.False(t, hasSample)
	_, hasNotes := rec["notes"]
	assert.False(t, hasNotes)
	assert.Equal(t, "asmith", rec["user_name"])
}

func TestCardByID(t *testing.T) {
	src := New(openTestDB(t))

	rec, err := src.CardByID(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Amoxicillin", rec["sample_name"])
	assert.Equal(t, "/var/www/html/images/10.png", rec["processed_file_location"])
}

func TestCardByIDMissing(t *testing.T) {
	src := New(openTestDB(t))

	rec, err := src.CardByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, rec)
}
