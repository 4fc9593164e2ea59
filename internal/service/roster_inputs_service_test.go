package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

func TestLeaveRequestServiceSubmit(t *testing.T) {
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	store := &leaveStub{}
	svc := NewLeaveRequestService(store, tx, nil, nil, fixedClock)

	counts, err := svc.Submit(context.Background(), dto.SubmitLeaveRequests{Requests: []dto.LeaveRequestInput{
		{WorkerID: 1, Date: "2025-08-04", Department: " amami ", Kind: "休"},
		{WorkerID: 2, Date: "2025-08-05", Department: "amami", Kind: "PAID_LEAVE"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Written)
	require.Len(t, store.inserted, 2)
	assert.Equal(t, models.LeaveDayOff, store.inserted[0].Kind)
	assert.Equal(t, "amami", store.inserted[0].Department)
	assert.Equal(t, models.LeaveRequested, store.inserted[0].Status)
	assert.Equal(t, models.LeavePaidLeave, store.inserted[1].Kind)
	assert.Equal(t, fixedNow, store.inserted[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRequestServiceSubmitRejectsUnknownKind(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	store := &leaveStub{}
	svc := NewLeaveRequestService(store, tx, nil, nil, fixedClock)

	_, err := svc.Submit(context.Background(), dto.SubmitLeaveRequests{Requests: []dto.LeaveRequestInput{
		{WorkerID: 1, Date: "2025-08-04", Department: "amami", Kind: "sick"},
	}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.inserted)

	_, err = svc.Submit(context.Background(), dto.SubmitLeaveRequests{Requests: []dto.LeaveRequestInput{
		{WorkerID: 1, Date: "04/08/2025", Department: "amami", Kind: "休"},
	}})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLeaveRequestServiceCancel(t *testing.T) {
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	store := &leaveStub{}
	svc := NewLeaveRequestService(store, tx, nil, nil, fixedClock)

	require.NoError(t, svc.Cancel(context.Background(), dto.CancelLeaveRequest{WorkerID: 1, Date: "2025-08-04", Department: "amami"}))
	require.Len(t, store.inserted, 1)
	assert.Equal(t, models.LeaveCancelled, store.inserted[0].Status)
	assert.False(t, store.inserted[0].Blocking())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRequestServiceListMonth(t *testing.T) {
	store := &leaveStub{}
	svc := NewLeaveRequestService(store, nil, nil, nil, nil)

	rows, err := svc.ListMonth(context.Background(), "amami", 2025, 8)
	require.NoError(t, err)
	assert.NotNil(t, rows)

	_, err = svc.ListMonth(context.Background(), "amami", 2025, 0)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	store.err = errors.New("down")
	_, err = svc.ListMonth(context.Background(), "amami", 2025, 8)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestTemporaryAssignmentServiceAssign(t *testing.T) {
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	store := &tempStub{}
	svc := NewTemporaryAssignmentService(store, &workerStub{known: map[int64]bool{90: true}}, tx, nil, nil)

	counts, err := svc.Assign(context.Background(), dto.AssignTemporaryWorkers{Assignments: []dto.TemporaryAssignmentInput{
		{WorkerID: 90, Date: "2025-08-04", Department: "amami", TimeSlot: " AM "},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Written)
	require.Len(t, store.inserted, 1)
	assert.True(t, store.inserted[0].Fixed)
	assert.Equal(t, "AM", store.inserted[0].TimeSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemporaryAssignmentServiceUnknownWorker(t *testing.T) {
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	store := &tempStub{}
	svc := NewTemporaryAssignmentService(store, &workerStub{known: map[int64]bool{}}, tx, nil, nil)

	_, err := svc.Assign(context.Background(), dto.AssignTemporaryWorkers{Assignments: []dto.TemporaryAssignmentInput{
		{WorkerID: 5, Date: "2025-08-04", Department: "amami", TimeSlot: "AM"},
	}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffingRequirementServiceUpsert(t *testing.T) {
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	store := &requirementStub{}
	svc := NewStaffingRequirementService(store, tx, nil, nil)

	counts, err := svc.Upsert(context.Background(), dto.UpsertStaffingRequirements{Requirements: []dto.StaffingRequirementInput{
		{Date: "2025-08-04", Department: "amami", TimeSlot: "AM", RequiredCount: 3},
		{Date: "2025-08-04", Department: "amami", TimeSlot: "PM", RequiredCount: 0},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Written)
	require.Len(t, store.upserted, 2)
	assert.Equal(t, day(4), store.upserted[0].Date)
	assert.Equal(t, 0, store.upserted[1].RequiredCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffingRequirementServiceRejectsNegative(t *testing.T) {
	svc := NewStaffingRequirementService(&requirementStub{}, nil, nil, nil)
	_, err := svc.Upsert(context.Background(), dto.UpsertStaffingRequirements{Requirements: []dto.StaffingRequirementInput{
		{Date: "2025-08-04", Department: "amami", TimeSlot: "AM", RequiredCount: -1},
	}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
