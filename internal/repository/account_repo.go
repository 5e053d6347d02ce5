package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrAccountsUnsupported indicates the connected store has no role management.
var ErrAccountsUnsupported = errors.New("account management requires a postgres store")

// AccountRepository passes role administration through to the store's native
// user and privilege primitives. Names and passwords are always quoted by the
// store itself via format('%I', '%L').
type AccountRepository interface {
	CreateLogin(ctx context.Context, name, password string) error
	Grant(ctx context.Context, name, privileges string) error
	ListLogins(ctx context.Context) ([]string, error)
	Drop(ctx context.Context, name string) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository constructs the account pass-through repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateLogin(ctx context.Context, name, password string) error {
	return r.execFormatted(ctx, "CREATE ROLE %I LOGIN PASSWORD %L", name, password)
}

// Grant expects privileges to be a vetted SQL privilege list; it is the only
// part of the statement not quoted by the store.
func (r *accountRepository) Grant(ctx context.Context, name, privileges string) error {
	template := fmt.Sprintf("GRANT %s ON ALL TABLES IN SCHEMA public TO %%I", privileges)
	return r.execFormatted(ctx, template, name)
}

func (r *accountRepository) ListLogins(ctx context.Context) ([]string, error) {
	if err := r.ensureSupported(); err != nil {
		return nil, err
	}

	names := make([]string, 0)
	err := r.db.WithContext(ctx).
		Raw("SELECT rolname FROM pg_roles WHERE rolcanlogin ORDER BY rolname").
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *accountRepository) Drop(ctx context.Context, name string) error {
	return r.execFormatted(ctx, "DROP ROLE %I", name)
}

func (r *accountRepository) execFormatted(ctx context.Context, template string, args ...interface{}) error {
	if err := r.ensureSupported(); err != nil {
		return err
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = "?::text"
	}

	formatArgs := append([]interface{}{template}, args...)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var statement string
		query := fmt.Sprintf("SELECT format(?::text, %s)", strings.Join(placeholders, ", "))
		if err := tx.Raw(query, formatArgs...).Scan(&statement).Error; err != nil {
			return err
		}
		return translateRoleError(tx.Exec(statement).Error)
	})
}

// Role error codes reported by postgres.
const (
	pgDuplicateObject = "42710"
	pgUndefinedObject = "42704"
)

// translateRoleError maps postgres role errors onto the gorm errors used for
// keyed records, so a taken role name reads as a duplicate and a missing role
// as not found.
func translateRoleError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgDuplicateObject:
		return fmt.Errorf("%w: %s", gorm.ErrDuplicatedKey, pgErr.Message)
	case pgUndefinedObject:
		return fmt.Errorf("%w: %s", gorm.ErrRecordNotFound, pgErr.Message)
	default:
		return err
	}
}

func (r *accountRepository) ensureSupported() error {
	if r.db.Dialector == nil || r.db.Dialector.Name() != "postgres" {
		return ErrAccountsUnsupported
	}
	return nil
}
