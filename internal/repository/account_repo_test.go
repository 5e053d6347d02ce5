package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateRoleError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "role exists", err: &pgconn.PgError{Code: "42710", Message: `role "grader" already exists`}, want: gorm.ErrDuplicatedKey},
		{name: "role missing", err: &pgconn.PgError{Code: "42704", Message: `role "ghost" does not exist`}, want: gorm.ErrRecordNotFound},
		{name: "wrapped missing role", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "42704"}), want: gorm.ErrRecordNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, translateRoleError(tc.err), tc.want)
		})
	}
}

func TestTranslateRoleErrorPassesOtherErrorsThrough(t *testing.T) {
	require.NoError(t, translateRoleError(nil))

	denied := &pgconn.PgError{Code: "42501"}
	require.Same(t, denied, translateRoleError(denied))

	plain := errors.New("connection reset")
	require.Equal(t, plain, translateRoleError(plain))
}

func TestAccountRepositoryRequiresPostgres(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))

	require.ErrorIs(t, repo.CreateLogin(context.Background(), "grader", "s3cret-pass"), ErrAccountsUnsupported)
	require.ErrorIs(t, repo.Drop(context.Background(), "ghost"), ErrAccountsUnsupported)
	_, err := repo.ListLogins(context.Background())
	require.ErrorIs(t, err, ErrAccountsUnsupported)
}
