package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/events"
	"github.com/spec-kit/dreamhome-service/internal/repository"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

// BranchService manages branch offices.
type BranchService struct {
	branches   repository.BranchRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewBranchService constructs the service.
func NewBranchService(branches repository.BranchRepository, dispatcher events.Dispatcher, logger *zap.Logger) *BranchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchService{branches: branches, dispatcher: dispatcher, logger: logger}
}

// List returns all branches.
func (s *BranchService) List(ctx context.Context) ([]domain.Branch, error) {
	branches, err := s.branches.List(ctx)
	if err != nil {
		return nil, mapStoreError(err, "branch", nil)
	}
	return branches, nil
}

// Get fetches one branch.
func (s *BranchService) Get(ctx context.Context, branchNo string) (*domain.Branch, error) {
	branch, err := s.branches.GetByID(ctx, branchNo)
	if err != nil {
		return nil, mapStoreError(err, "branch", map[string]any{"branch_no": branchNo})
	}
	return branch, nil
}

// Create adds a branch. All fields are required.
func (s *BranchService) Create(ctx context.Context, branch *domain.Branch) error {
	var missing []string
	for name, value := range map[string]string{
		"branch_no":   branch.BranchNo,
		"street":      branch.Street,
		"city":        branch.City,
		"postal_code": branch.PostCode,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("all fields are required", map[string]any{"missing": missing})
	}

	details := map[string]any{"branch_no": branch.BranchNo}
	exists, err := s.branches.Exists(ctx, branch.BranchNo)
	if err != nil {
		return mapStoreError(err, "branch", details)
	}
	if exists {
		return apperrors.NewConflict("the branch already exists", details)
	}

	if err := s.branches.Create(ctx, branch); err != nil {
		return mapStoreError(err, "branch", details)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventBranchCreated, branch.BranchNo, events.BranchPayload{
		City:     branch.City,
		PostCode: branch.PostCode,
	}))
	return nil
}

// Update overwrites the non-empty fields of an existing branch.
func (s *BranchService) Update(ctx context.Context, update domain.BranchUpdate) (*domain.Branch, error) {
	if strings.TrimSpace(update.BranchNo) == "" {
		return nil, apperrors.NewValidationError("branch number is required", nil)
	}
	details := map[string]any{"branch_no": update.BranchNo}

	exists, err := s.branches.Exists(ctx, update.BranchNo)
	if err != nil {
		return nil, mapStoreError(err, "branch", details)
	}
	if !exists {
		return nil, apperrors.NewNotFound("branch", details)
	}

	branch, err := s.branches.Update(ctx, update)
	if err != nil {
		return nil, mapStoreError(err, "branch", details)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventBranchUpdated, branch.BranchNo, events.BranchPayload{
		City:     branch.City,
		PostCode: branch.PostCode,
	}))
	return branch, nil
}
