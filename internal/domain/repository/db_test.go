package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newMockDB returns a sqlx handle bound like the pgx driver ($n placeholders)
// over a sqlmock connection. Unmet expectations fail the test.
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return sqlx.NewDb(db, "pgx"), mock
}

// sqlText turns a literal SQL fragment into the regexp sqlmock matches with.
func sqlText(fragment string) string {
	return regexp.QuoteMeta(fragment)
}
