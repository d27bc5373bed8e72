package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/persistence"
	"github.com/spec-kit/dreamhome-service/internal/staffcache"
)

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	List(ctx context.Context) ([]domain.Staff, error)
	Create(ctx context.Context, staff *domain.Staff) error
	UpdateDetails(ctx context.Context, update domain.StaffUpdate) error
	LoadCacheEntries(ctx context.Context) ([]staffcache.Record, error)
}

type staffRepository struct {
	exec *persistence.Executor
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(exec *persistence.Executor) StaffRepository {
	return &staffRepository{exec: exec}
}

func (r *staffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	const query = `
        SELECT staffno, fname, lname, position, sex, dob, salary, branchno, telephone, mobile, email
        FROM dh_staff
        ORDER BY staffno`

	staff, err := persistence.Collect(ctx, r.exec, persistence.Statement{SQL: query}, persistence.Options{}, scanStaff)
	if err != nil {
		return nil, classify(err)
	}
	return staff, nil
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	const query = `
        INSERT INTO dh_staff (staffno, fname, lname, position, sex, dob, salary, branchno, telephone, mobile, email)
        VALUES (@staffno, @fname, @lname, @position, @sex, @dob, @salary, @branchno, @telephone, @mobile, @email)`

	_, err := r.exec.Execute(ctx, persistence.Statement{
		SQL: query,
		Args: pgx.NamedArgs{
			"staffno":   staff.StaffNo,
			"fname":     staff.FirstName,
			"lname":     staff.LastName,
			"position":  staff.Position,
			"sex":       staff.Sex,
			"dob":       staff.DOB,
			"salary":    staff.Salary,
			"branchno":  staff.BranchNo,
			"telephone": staff.Telephone,
			"mobile":    staff.Mobile,
			"email":     staff.Email,
		},
	}, persistence.Options{})
	return classify(err)
}

func (r *staffRepository) UpdateDetails(ctx context.Context, update domain.StaffUpdate) error {
	const query = `
        UPDATE dh_staff
        SET position  = COALESCE(@position, position),
            salary    = COALESCE(@salary, salary),
            telephone = COALESCE(@telephone, telephone),
            email     = COALESCE(@email, email)
        WHERE staffno = @staffno`

	res, err := r.exec.Execute(ctx, persistence.Statement{
		SQL: query,
		Args: pgx.NamedArgs{
			"staffno":   update.StaffNo,
			"position":  update.Position,
			"salary":    update.Salary,
			"telephone": update.Telephone,
			"email":     update.Email,
		},
	}, persistence.Options{})
	if err != nil {
		return classify(err)
	}
	if res.RowsAffected == 0 {
		return notFound("staff " + update.StaffNo)
	}
	return nil
}

func (r *staffRepository) LoadCacheEntries(ctx context.Context) ([]staffcache.Record, error) {
	const query = `SELECT staffno, salary, telephone, email FROM dh_staff`

	records, err := persistence.Collect(ctx, r.exec, persistence.Statement{SQL: query}, persistence.Options{},
		func(row pgx.CollectableRow) (staffcache.Record, error) {
			var rec staffcache.Record
			err := row.Scan(&rec.StaffNo, &rec.Salary, &rec.Telephone, &rec.Email)
			return rec, err
		})
	if err != nil {
		return nil, classify(err)
	}
	return records, nil
}

func scanStaff(row pgx.CollectableRow) (domain.Staff, error) {
	var staff domain.Staff
	err := row.Scan(
		&staff.StaffNo,
		&staff.FirstName,
		&staff.LastName,
		&staff.Position,
		&staff.Sex,
		&staff.DOB,
		&staff.Salary,
		&staff.BranchNo,
		&staff.Telephone,
		&staff.Mobile,
		&staff.Email,
	)
	return staff, err
}
