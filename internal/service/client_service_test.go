package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/events"
	"github.com/spec-kit/dreamhome-service/internal/repository"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

func TestClientService_Create(t *testing.T) {
	repo := newFakeClientRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewClientService(repo, dispatcher, zap.NewNop())
	ctx := context.Background()

	err := svc.Create(ctx, &domain.Client{})
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	name := "Mike"
	require.NoError(t, svc.Create(ctx, &domain.Client{ClientNo: "CR56", FirstName: &name}))
	require.Equal(t, []events.EventType{events.EventClientCreated}, dispatcher.types())

	repo.createErr = &repository.StoreError{Kind: repository.ErrDuplicate}
	err = svc.Create(ctx, &domain.Client{ClientNo: "CR56"})
	require.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestClientService_Update(t *testing.T) {
	repo := newFakeClientRepo("CR56")
	svc := NewClientService(repo, nil, nil)
	ctx := context.Background()
	email := "mike@example.com"

	err := svc.Update(ctx, domain.ClientUpdate{ClientNo: "CR99", Email: &email})
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	require.Zero(t, repo.updates)

	require.NoError(t, svc.Update(ctx, domain.ClientUpdate{ClientNo: "CR56", Email: &email}))

	client, err := svc.Get(ctx, "CR56")
	require.NoError(t, err)
	require.Equal(t, "mike@example.com", *client.Email)

	_, err = svc.Get(ctx, "CR99")
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
