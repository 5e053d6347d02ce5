package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/repository"
)

type fakeAccountRepo struct {
	created []string
	granted map[string]string
	dropped []string

	createErr error
	dropErr   error
}

func (f *fakeAccountRepo) CreateLogin(ctx context.Context, name, password string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, name)
	return nil
}

func (f *fakeAccountRepo) Grant(ctx context.Context, name, privileges string) error {
	if f.granted == nil {
		f.granted = map[string]string{}
	}
	f.granted[name] = privileges
	return nil
}

func (f *fakeAccountRepo) ListLogins(ctx context.Context) ([]string, error) {
	return append([]string(nil), f.created...), nil
}

func (f *fakeAccountRepo) Drop(ctx context.Context, name string) error {
	if f.dropErr != nil {
		return f.dropErr
	}
	f.dropped = append(f.dropped, name)
	return nil
}

func TestAccountServiceUnsupportedOnSQLite(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(repository.NewAccountRepository(db), testValidator(), ChangeHooks{}, testLogger())

	_, err := svc.Create(context.Background(), dto.AccountCreateRequest{Name: "reviewer", Password: "long-enough"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, repository.ErrAccountsUnsupported)

	_, err = svc.List(context.Background())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAccountServiceGrantNormalisesPrivileges(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAccountService(repo, testValidator(), ChangeHooks{}, testLogger())
	ctx := context.Background()

	account, err := svc.Grant(ctx, "reviewer", dto.AccountGrantRequest{Privileges: []string{"select", " insert ", "SELECT"}})
	require.NoError(t, err)
	require.Equal(t, []string{"SELECT", "INSERT"}, account.Privileges)
	require.Equal(t, "SELECT, INSERT", repo.granted["reviewer"])

	account, err = svc.Grant(ctx, "reviewer", dto.AccountGrantRequest{Privileges: []string{"update", "all"}})
	require.NoError(t, err)
	require.Equal(t, []string{"ALL PRIVILEGES"}, account.Privileges)

	_, err = svc.Grant(ctx, "reviewer", dto.AccountGrantRequest{Privileges: []string{"SELECT; DROP TABLE marks"}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Grant(ctx, "reviewer", dto.AccountGrantRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAccountServiceProtectsSystemRoles(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAccountService(repo, testValidator(), ChangeHooks{}, testLogger())
	ctx := context.Background()

	require.ErrorIs(t, svc.Drop(ctx, "postgres"), ErrInvalidInput)
	require.ErrorIs(t, svc.Drop(ctx, "pg_monitor"), ErrInvalidInput)
	_, err := svc.Create(ctx, dto.AccountCreateRequest{Name: "PG_custom", Password: "long-enough"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, dto.AccountCreateRequest{Name: "reviewer", Password: "short"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, dto.AccountCreateRequest{Name: "reviewer", Password: "long-enough"})
	require.NoError(t, err)
	require.NoError(t, svc.Drop(ctx, "reviewer"))
	require.Equal(t, []string{"reviewer"}, repo.dropped)

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []dto.AccountResponse{{Name: "reviewer"}}, accounts)
}

func TestAccountServiceClassifiesRoleErrors(t *testing.T) {
	repo := &fakeAccountRepo{
		createErr: fmt.Errorf("%w: role \"grader\" already exists", gorm.ErrDuplicatedKey),
		dropErr:   fmt.Errorf("%w: role \"ghost\" does not exist", gorm.ErrRecordNotFound),
	}
	svc := NewAccountService(repo, testValidator(), ChangeHooks{}, testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.AccountCreateRequest{Name: "grader", Password: "long-enough"})
	require.ErrorIs(t, err, ErrConflict)
	require.False(t, Retryable(err))

	err = svc.Drop(ctx, "ghost")
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, Retryable(err))
}
