package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/events"
	"github.com/spec-kit/dreamhome-service/internal/repository"
	"github.com/spec-kit/dreamhome-service/internal/staffcache"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

// StaffService hires and updates staff and keeps the staff cache in step
// with committed writes.
type StaffService struct {
	staff      repository.StaffRepository
	branches   repository.BranchRepository
	cache      *staffcache.Cache
	locks      *staffcache.KeyedLocker
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// StaffDependencies encapsulates collaborators of the staff service.
type StaffDependencies struct {
	StaffRepo  repository.StaffRepository
	BranchRepo repository.BranchRepository
	Cache      *staffcache.Cache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(deps StaffDependencies) *StaffService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		staff:      deps.StaffRepo,
		branches:   deps.BranchRepo,
		cache:      deps.Cache,
		locks:      staffcache.NewKeyedLocker(),
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// HireInput is the raw hire request. Every field is required.
type HireInput struct {
	StaffNo   string
	FirstName string
	LastName  string
	Position  string
	Sex       string
	DOB       string
	Salary    float64
	BranchNo  string
	Telephone string
	Mobile    string
	Email     string
}

func (in HireInput) toStaff() (*domain.Staff, error) {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"staffno", in.StaffNo},
		{"fname", in.FirstName},
		{"lname", in.LastName},
		{"position", in.Position},
		{"sex", in.Sex},
		{"dob", in.DOB},
		{"branchno", in.BranchNo},
		{"telephone", in.Telephone},
		{"mobile", in.Mobile},
		{"email", in.Email},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if in.Salary <= 0 {
		missing = append(missing, "salary")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("all fields are required", map[string]any{"missing": missing})
	}

	dob, err := parseDate(in.DOB)
	if err != nil {
		return nil, apperrors.NewValidationError("dob must be a date (YYYY-MM-DD)", map[string]any{"dob": in.DOB})
	}

	return &domain.Staff{
		StaffNo:   in.StaffNo,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Position:  in.Position,
		Sex:       in.Sex,
		DOB:       dob,
		Salary:    in.Salary,
		BranchNo:  in.BranchNo,
		Telephone: in.Telephone,
		Mobile:    in.Mobile,
		Email:     in.Email,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(domain.DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// List returns every staff row.
func (s *StaffService) List(ctx context.Context) ([]domain.Staff, error) {
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, mapStoreError(err, "staff", nil)
	}
	return staff, nil
}

// Hire inserts a new staff member and refreshes the cache so the new hire is
// immediately updatable. Nothing is inserted when the branch is unknown.
func (s *StaffService) Hire(ctx context.Context, in HireInput) (*domain.Staff, error) {
	staff, err := in.toStaff()
	if err != nil {
		return nil, err
	}

	branchDetails := map[string]any{"branch_no": staff.BranchNo}
	exists, err := s.branches.Exists(ctx, staff.BranchNo)
	if err != nil {
		return nil, mapStoreError(err, "branch", branchDetails)
	}
	if !exists {
		return nil, apperrors.NewValidationError("the branch does not exist", branchDetails)
	}

	if err := s.staff.Create(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, apperrors.NewValidationError("the branch does not exist", branchDetails)
		}
		return nil, mapStoreError(err, "staff", map[string]any{"staff_no": staff.StaffNo})
	}

	if err := s.cache.Rebuild(ctx); err != nil {
		s.logger.Warn("staff cache rebuild after hire failed", zap.String("staff_no", staff.StaffNo), zap.Error(err))
	}

	s.logger.Info("staff hired", zap.String("staff_no", staff.StaffNo), zap.String("branch_no", staff.BranchNo))
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventStaffHired, staff.StaffNo, events.StaffHiredPayload{
		BranchNo: staff.BranchNo,
		Position: staff.Position,
		Salary:   staff.Salary,
	}))
	return staff, nil
}

// Update writes position, salary, telephone and email for a staff member
// known to the cache, then merges the cached fields. Unknown staff numbers
// are rejected before storage is touched.
func (s *StaffService) Update(ctx context.Context, update domain.StaffUpdate) (staffcache.Entry, error) {
	if strings.TrimSpace(update.StaffNo) == "" {
		return staffcache.Entry{}, apperrors.NewValidationError("staff number is required", nil)
	}
	details := map[string]any{"staff_no": update.StaffNo}

	unlock := s.locks.Lock(update.StaffNo)
	defer unlock()
	release := s.cache.Guard()
	defer release()

	current, ok := s.cache.Lookup(update.StaffNo)
	if !ok {
		return staffcache.Entry{}, apperrors.NewNotFound("staff", details)
	}

	fields := changedFields(update)
	if len(fields) == 0 {
		return current, nil
	}

	if err := s.staff.UpdateDetails(ctx, update); err != nil {
		return staffcache.Entry{}, mapStoreError(err, "staff", details)
	}

	// Position is not cached; a position-only write leaves the entry as is.
	entry, err := s.cache.ApplyUpdate(ctx, update.StaffNo, staffcache.Patch{
		Salary:    update.Salary,
		Telephone: update.Telephone,
		Email:     update.Email,
	})
	if err != nil {
		return staffcache.Entry{}, apperrors.NewNotFound("staff", details)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventStaffUpdated, update.StaffNo, events.StaffUpdatedPayload{Fields: fields}))
	return entry, nil
}

func changedFields(update domain.StaffUpdate) []string {
	var fields []string
	if update.Position != nil {
		fields = append(fields, "position")
	}
	if update.Salary != nil {
		fields = append(fields, "salary")
	}
	if update.Telephone != nil {
		fields = append(fields, "telephone")
	}
	if update.Email != nil {
		fields = append(fields, "email")
	}
	return fields
}

// Summary serves the cached compensation and contact fields.
func (s *StaffService) Summary(staffNo string) (staffcache.Entry, error) {
	entry, ok := s.cache.Lookup(staffNo)
	if !ok {
		return staffcache.Entry{}, apperrors.NewNotFound("staff", map[string]any{"staff_no": staffNo})
	}
	return entry, nil
}

// RebuildCache reloads the cache from storage and returns its size.
func (s *StaffService) RebuildCache(ctx context.Context) (int, error) {
	if err := s.cache.Rebuild(ctx); err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return s.cache.Len(), nil
}
