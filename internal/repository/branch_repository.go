package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/persistence"
)

// BranchRepository manages branch persistence.
type BranchRepository interface {
	List(ctx context.Context) ([]domain.Branch, error)
	GetByID(ctx context.Context, branchNo string) (*domain.Branch, error)
	Exists(ctx context.Context, branchNo string) (bool, error)
	Create(ctx context.Context, branch *domain.Branch) error
	Update(ctx context.Context, update domain.BranchUpdate) (*domain.Branch, error)
}

type branchRepository struct {
	exec *persistence.Executor
}

// NewBranchRepository builds the repository.
func NewBranchRepository(exec *persistence.Executor) BranchRepository {
	return &branchRepository{exec: exec}
}

func (r *branchRepository) List(ctx context.Context) ([]domain.Branch, error) {
	const query = `SELECT branchno, street, city, postcode FROM dh_branch ORDER BY branchno`
	branches, err := persistence.Collect(ctx, r.exec, persistence.Statement{SQL: query}, persistence.Options{}, scanBranch)
	if err != nil {
		return nil, classify(err)
	}
	return branches, nil
}

func (r *branchRepository) GetByID(ctx context.Context, branchNo string) (*domain.Branch, error) {
	const query = `SELECT branchno, street, city, postcode FROM dh_branch WHERE branchno = @branchno`
	branches, err := persistence.Collect(ctx, r.exec, persistence.Statement{
		SQL:  query,
		Args: pgx.NamedArgs{"branchno": branchNo},
	}, persistence.Options{}, scanBranch)
	if err != nil {
		return nil, classify(err)
	}
	if len(branches) == 0 {
		return nil, notFound("branch " + branchNo)
	}
	return &branches[0], nil
}

func (r *branchRepository) Exists(ctx context.Context, branchNo string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM dh_branch WHERE branchno = @branchno)`
	found, err := persistence.Collect(ctx, r.exec, persistence.Statement{
		SQL:  query,
		Args: pgx.NamedArgs{"branchno": branchNo},
	}, persistence.Options{}, pgx.RowTo[bool])
	if err != nil {
		return false, classify(err)
	}
	return len(found) == 1 && found[0], nil
}

func (r *branchRepository) Create(ctx context.Context, branch *domain.Branch) error {
	const query = `
        INSERT INTO dh_branch (branchno, street, city, postcode)
        VALUES (@branchno, @street, @city, @postcode)`
	_, err := r.exec.Execute(ctx, persistence.Statement{
		SQL: query,
		Args: pgx.NamedArgs{
			"branchno": branch.BranchNo,
			"street":   branch.Street,
			"city":     branch.City,
			"postcode": branch.PostCode,
		},
	}, persistence.Options{})
	return classify(err)
}

// Update overwrites only the columns given a non-empty value.
func (r *branchRepository) Update(ctx context.Context, update domain.BranchUpdate) (*domain.Branch, error) {
	const query = `
        UPDATE dh_branch
        SET street   = COALESCE(NULLIF(@street, ''), street),
            city     = COALESCE(NULLIF(@city, ''), city),
            postcode = COALESCE(NULLIF(@postcode, ''), postcode)
        WHERE branchno = @branchno
        RETURNING branchno, street, city, postcode`
	branches, err := persistence.Collect(ctx, r.exec, persistence.Statement{
		SQL: query,
		Args: pgx.NamedArgs{
			"branchno": update.BranchNo,
			"street":   update.Street,
			"city":     update.City,
			"postcode": update.PostCode,
		},
	}, persistence.Options{}, scanBranch)
	if err != nil {
		return nil, classify(err)
	}
	if len(branches) == 0 {
		return nil, notFound("branch " + update.BranchNo)
	}
	return &branches[0], nil
}

func scanBranch(row pgx.CollectableRow) (domain.Branch, error) {
	var b domain.Branch
	err := row.Scan(&b.BranchNo, &b.Street, &b.City, &b.PostCode)
	return b, err
}
