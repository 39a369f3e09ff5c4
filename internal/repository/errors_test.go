package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorClassification(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: pgUniqueViolation}
	fk := &pgconn.PgError{Code: pgForeignKeyViolation}

	tests := []struct {
		name       string
		err        error
		wantUnique bool
		wantFK     bool
	}{
		{"nil", nil, false, false},
		{"plain error mentioning unique", errors.New("unique something"), false, false},
		{"unique violation", unique, true, false},
		{"wrapped unique violation", fmt.Errorf("insert: %w", unique), true, false},
		{"foreign key violation", fk, false, true},
		{"other pg error", &pgconn.PgError{Code: "23514"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isUniqueViolation(tt.err); got != tt.wantUnique {
				t.Errorf("isUniqueViolation = %v, want %v", got, tt.wantUnique)
			}
			if got := isForeignKeyViolation(tt.err); got != tt.wantFK {
				t.Errorf("isForeignKeyViolation = %v, want %v", got, tt.wantFK)
			}
		})
	}
}
