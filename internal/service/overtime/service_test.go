package overtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab-vn/center-backend-go/internal/domain/overtime"
)

type fakeRequestRepo struct {
	requests map[string]overtime.Request
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (overtime.Request, error) {
	if req, ok := r.requests[id]; ok {
		return req, nil
	}
	return overtime.Request{}, overtime.ErrRequestNotFound
}

func (r *fakeRequestRepo) FindByDateRange(context.Context, string, string, *string, *string) ([]overtime.Request, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRequestRepo) List(_ context.Context, filter *overtime.ListFilter) ([]overtime.Request, error) {
	var result []overtime.Request
	for _, req := range r.requests {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		result = append(result, req)
	}
	return result, nil
}

func (r *fakeRequestRepo) UpsertDetected(context.Context, string, string, time.Duration) (overtime.Request, bool, error) {
	return overtime.Request{}, false, errors.New("not implemented")
}

func (r *fakeRequestRepo) DeletePending(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (r *fakeRequestRepo) Resolve(_ context.Context, req overtime.Request) (overtime.Request, error) {
	if _, ok := r.requests[req.ID]; !ok {
		return overtime.Request{}, overtime.ErrRequestNotFound
	}
	r.requests[req.ID] = req
	return req, nil
}

func newFixture(t *testing.T) (overtime.OvertimeService, *fakeRequestRepo) {
	t.Helper()

	day, err := time.Parse("2006-01-02", "2025-03-10")
	require.NoError(t, err)

	repo := &fakeRequestRepo{requests: map[string]overtime.Request{
		"ot-1": {
			ID:               "ot-1",
			StaffID:          "staff-1",
			Date:             day,
			DetectedDuration: 30 * time.Minute,
			Status:           overtime.StatusPending,
		},
	}}

	svc := NewOvertimeService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestApproveDefaultsToDetectedDuration(t *testing.T) {
	svc, repo := newFixture(t)

	resp, err := svc.Approve(context.Background(), &overtime.ApproveRequest{
		ID:              "ot-1",
		ApproverID:      "manager-1",
		ApprovedRoleKey: strPtr("teacher"),
	})
	require.NoError(t, err)

	assert.Equal(t, overtime.StatusApproved, resp.Status)
	require.NotNil(t, resp.ApprovedDuration)
	assert.Equal(t, "00:30:00", *resp.ApprovedDuration)
	require.NotNil(t, resp.ApproverID)
	assert.Equal(t, "manager-1", *resp.ApproverID)

	stored := repo.requests["ot-1"]
	require.NotNil(t, stored.ApprovedDuration)
	assert.Equal(t, 30*time.Minute, *stored.ApprovedDuration)
}

func TestApproveWithExplicitDuration(t *testing.T) {
	svc, repo := newFixture(t)

	multiplier := decimal.NewFromInt(2)
	_, err := svc.Approve(context.Background(), &overtime.ApproveRequest{
		ID:                 "ot-1",
		ApproverID:         "manager-1",
		ApprovedDuration:   strPtr("00:20"),
		ApprovedRoleKey:    strPtr("teacher"),
		ApprovedMultiplier: &multiplier,
	})
	require.NoError(t, err)

	stored := repo.requests["ot-1"]
	assert.Equal(t, 20*time.Minute, *stored.ApprovedDuration)
	assert.True(t, stored.ApprovedMultiplier.Equal(multiplier))
}

func TestApproveWithBreakdownFillsDefaultMultiplier(t *testing.T) {
	svc, repo := newFixture(t)

	resp, err := svc.Approve(context.Background(), &overtime.ApproveRequest{
		ID:         "ot-1",
		ApproverID: "manager-1",
		Breakdown: []overtime.BreakdownItemRequest{
			{Role: "teacher", Duration: "00:20"},
			{Role: "part-time", Duration: "00:10", Multiplier: decimalPtr(decimal.NewFromInt(1))},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Breakdown, 2)
	assert.True(t, resp.Breakdown[0].Multiplier.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, resp.Breakdown[1].Multiplier.Equal(decimal.NewFromInt(1)))

	stored := repo.requests["ot-1"]
	assert.Nil(t, stored.ApprovedDuration)
	assert.Len(t, stored.Breakdown, 2)
}

func TestApproveOnlyPending(t *testing.T) {
	svc, repo := newFixture(t)

	request := repo.requests["ot-1"]
	request.Status = overtime.StatusApproved
	repo.requests["ot-1"] = request

	_, err := svc.Approve(context.Background(), &overtime.ApproveRequest{
		ID:         "ot-1",
		ApproverID: "manager-1",
	})
	assert.ErrorIs(t, err, overtime.ErrNotPending)
}

func TestRejectClearsApprovalFields(t *testing.T) {
	svc, repo := newFixture(t)

	resp, err := svc.Reject(context.Background(), &overtime.RejectRequest{
		ID:         "ot-1",
		ApproverID: "manager-1",
		Notes:      strPtr("not pre-agreed"),
	})
	require.NoError(t, err)

	assert.Equal(t, overtime.StatusRejected, resp.Status)
	assert.Nil(t, resp.ApprovedDuration)
	assert.Empty(t, resp.Breakdown)

	stored := repo.requests["ot-1"]
	assert.Nil(t, stored.ApprovedDuration)
	assert.Nil(t, stored.ApprovedRoleKey)
}

func TestRejectOnlyPending(t *testing.T) {
	svc, repo := newFixture(t)

	request := repo.requests["ot-1"]
	request.Status = overtime.StatusRejected
	repo.requests["ot-1"] = request

	_, err := svc.Reject(context.Background(), &overtime.RejectRequest{
		ID:         "ot-1",
		ApproverID: "manager-1",
	})
	assert.ErrorIs(t, err, overtime.ErrNotPending)
}

func TestGetByIDMissing(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, overtime.ErrRequestNotFound)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
