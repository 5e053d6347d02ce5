package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/repository"
)

const entityAccount = "account"

var grantablePrivileges = map[string]struct{}{
	"SELECT":         {},
	"INSERT":         {},
	"UPDATE":         {},
	"DELETE":         {},
	"ALL PRIVILEGES": {},
}

// AccountService passes login administration through to the store.
type AccountService interface {
	List(ctx context.Context) ([]dto.AccountResponse, error)
	Create(ctx context.Context, req dto.AccountCreateRequest) (dto.AccountResponse, error)
	Grant(ctx context.Context, name string, req dto.AccountGrantRequest) (dto.AccountResponse, error)
	Drop(ctx context.Context, name string) error
}

type accountService struct {
	repo      repository.AccountRepository
	validator *validator.Validate
	observer  entityObserver
}

// NewAccountService constructs the account pass-through service.
func NewAccountService(repo repository.AccountRepository, validator *validator.Validate, hooks ChangeHooks, logger zerolog.Logger) AccountService {
	return &accountService{
		repo:      repo,
		validator: validator,
		observer:  newEntityObserver(entityAccount, hooks, logger.With().Str("component", "account_service").Logger()),
	}
}

func (s *accountService) List(ctx context.Context) ([]dto.AccountResponse, error) {
	ctx, span := s.observer.start(ctx, opList, 0)
	defer span.End()

	names, err := s.repo.ListLogins(ctx)
	if err != nil {
		return nil, s.observer.fail(span, opList, 0, err)
	}

	accounts := make([]dto.AccountResponse, 0, len(names))
	for _, name := range names {
		accounts = append(accounts, dto.AccountResponse{Name: name})
	}
	s.observer.succeeded(opList)
	return accounts, nil
}

func (s *accountService) Create(ctx context.Context, req dto.AccountCreateRequest) (dto.AccountResponse, error) {
	ctx, span := s.observer.start(ctx, opCreate, 0)
	defer span.End()

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountResponse{}, s.observer.fail(span, opCreate, 0, err)
	}
	if isProtectedRole(req.Name) {
		return dto.AccountResponse{}, s.observer.fail(span, opCreate, 0, invalidInput("role %q is reserved", req.Name))
	}

	if err := s.repo.CreateLogin(ctx, req.Name, req.Password); err != nil {
		return dto.AccountResponse{}, s.observer.fail(span, opCreate, 0, err)
	}

	s.observer.committed(ctx, opCreate, 0, map[string]interface{}{"name": req.Name})
	return dto.AccountResponse{Name: req.Name}, nil
}

func (s *accountService) Grant(ctx context.Context, name string, req dto.AccountGrantRequest) (dto.AccountResponse, error) {
	ctx, span := s.observer.start(ctx, "grant", 0)
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return dto.AccountResponse{}, s.observer.fail(span, "grant", 0, invalidInput("account name is required"))
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountResponse{}, s.observer.fail(span, "grant", 0, err)
	}
	privileges, err := normalizePrivileges(req.Privileges)
	if err != nil {
		return dto.AccountResponse{}, s.observer.fail(span, "grant", 0, err)
	}

	if err := s.repo.Grant(ctx, name, strings.Join(privileges, ", ")); err != nil {
		return dto.AccountResponse{}, s.observer.fail(span, "grant", 0, err)
	}

	s.observer.committed(ctx, "grant", 0, map[string]interface{}{"name": name, "privileges": privileges})
	return dto.AccountResponse{Name: name, Privileges: privileges}, nil
}

func (s *accountService) Drop(ctx context.Context, name string) error {
	ctx, span := s.observer.start(ctx, opDelete, 0)
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return s.observer.fail(span, opDelete, 0, invalidInput("account name is required"))
	}
	if isProtectedRole(name) {
		return s.observer.fail(span, opDelete, 0, invalidInput("role %q cannot be dropped", name))
	}

	if err := s.repo.Drop(ctx, name); err != nil {
		return s.observer.fail(span, opDelete, 0, err)
	}

	s.observer.committed(ctx, opDelete, 0, map[string]interface{}{"name": name})
	return nil
}

// normalizePrivileges upper-cases, de-duplicates and whitelists privileges.
// ALL PRIVILEGES subsumes every other entry.
func normalizePrivileges(requested []string) ([]string, error) {
	seen := make(map[string]struct{}, len(requested))
	privileges := make([]string, 0, len(requested))
	for _, raw := range requested {
		privilege := strings.ToUpper(strings.Join(strings.Fields(raw), " "))
		if privilege == "ALL" {
			privilege = "ALL PRIVILEGES"
		}
		if _, ok := grantablePrivileges[privilege]; !ok {
			return nil, invalidInput("privilege %q is not grantable", raw)
		}
		if _, dup := seen[privilege]; dup {
			continue
		}
		seen[privilege] = struct{}{}
		privileges = append(privileges, privilege)
	}
	if _, all := seen["ALL PRIVILEGES"]; all {
		return []string{"ALL PRIVILEGES"}, nil
	}
	return privileges, nil
}

func isProtectedRole(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return lower == "postgres" || strings.HasPrefix(lower, "pg_")
}
