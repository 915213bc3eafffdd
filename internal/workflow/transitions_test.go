package workflow

import (
	"errors"
	"testing"

	"field-sales-ops-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTransitions(t *testing.T) {
	t.Run("manager approves requested order", func(t *testing.T) {
		err := OrderRules.Check(models.OrderStatusRequested, models.OrderStatusApproved, models.RoleMidLevelManager)
		assert.NoError(t, err)
	})

	t.Run("marketing staff cannot approve", func(t *testing.T) {
		err := OrderRules.Check(models.OrderStatusRequested, models.OrderStatusApproved, models.RoleMarketingStaff)
		var roleErr *RoleError
		require.True(t, errors.As(err, &roleErr))
	})

	t.Run("dispatch requires approved state", func(t *testing.T) {
		err := OrderRules.Check(models.OrderStatusRequested, models.OrderStatusDispatched, models.RoleAdmin)
		var stateErr *StateError
		require.True(t, errors.As(err, &stateErr))
	})

	t.Run("dispatch is admin only", func(t *testing.T) {
		err := OrderRules.Check(models.OrderStatusApproved, models.OrderStatusDispatched, models.RoleMidLevelManager)
		var roleErr *RoleError
		require.True(t, errors.As(err, &roleErr))

		err = OrderRules.Check(models.OrderStatusApproved, models.OrderStatusDispatched, models.RoleSubAdmin)
		assert.NoError(t, err)
	})

	t.Run("repeat approval reads as already approved", func(t *testing.T) {
		err := OrderRules.Check(models.OrderStatusApproved, models.OrderStatusApproved, models.RoleAdmin)
		require.Error(t, err)
		assert.Equal(t, "already Approved", err.Error())
	})

	t.Run("unknown target", func(t *testing.T) {
		err := OrderRules.Check(models.OrderStatusRequested, "Shipped", models.RoleAdmin)
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})
}

func TestClaimTransitions(t *testing.T) {
	t.Run("decision legal straight from pending", func(t *testing.T) {
		assert.NoError(t, ClaimRules.Check(models.ClaimStatusPending, models.ClaimStatusApproved, models.RoleAdmin))
		assert.NoError(t, ClaimRules.Check(models.ClaimStatusPending, models.ClaimStatusRejected, models.RoleSubAdmin))
	})

	t.Run("decision legal after comment", func(t *testing.T) {
		assert.NoError(t, ClaimRules.Check(models.ClaimStatusCommented, models.ClaimStatusPartiallyApproved, models.RoleAdmin))
	})

	t.Run("mid level manager may comment but not decide", func(t *testing.T) {
		assert.NoError(t, ClaimRules.Check(models.ClaimStatusPending, models.ClaimStatusCommented, models.RoleMidLevelManager))

		err := ClaimRules.Check(models.ClaimStatusPending, models.ClaimStatusApproved, models.RoleMidLevelManager)
		var roleErr *RoleError
		require.True(t, errors.As(err, &roleErr))
	})

	t.Run("completion requires an approved-like state", func(t *testing.T) {
		assert.NoError(t, ClaimRules.Check(models.ClaimStatusApproved, models.ClaimStatusCompleted, models.RoleAdmin))
		assert.NoError(t, ClaimRules.Check(models.ClaimStatusPartiallyApproved, models.ClaimStatusCompleted, models.RoleAdmin))

		err := ClaimRules.Check(models.ClaimStatusRejected, models.ClaimStatusCompleted, models.RoleAdmin)
		var stateErr *StateError
		require.True(t, errors.As(err, &stateErr))
	})

	t.Run("no backwards transition", func(t *testing.T) {
		err := ClaimRules.Check(models.ClaimStatusApproved, models.ClaimStatusCommented, models.RoleAdmin)
		var stateErr *StateError
		require.True(t, errors.As(err, &stateErr))
	})
}

func TestInquiryTransitions(t *testing.T) {
	t.Run("processing reachable from pending or commented", func(t *testing.T) {
		assert.NoError(t, InquiryRules.Check(models.InquiryStatusPending, models.InquiryStatusProcessing, models.RoleMidLevelManager))
		assert.NoError(t, InquiryRules.Check(models.InquiryStatusCommented, models.InquiryStatusProcessing, models.RoleAdmin))
	})

	t.Run("completion only from processing", func(t *testing.T) {
		err := InquiryRules.Check(models.InquiryStatusPending, models.InquiryStatusCompleted, models.RoleAdmin)
		var stateErr *StateError
		require.True(t, errors.As(err, &stateErr))

		assert.NoError(t, InquiryRules.Check(models.InquiryStatusProcessing, models.InquiryStatusCompleted, models.RoleAdmin))
	})
}

func TestEstimateTransitions(t *testing.T) {
	assert.NoError(t, EstimateRules.Check(models.EstimateStatusPending, models.EstimateStatusApproved, models.RoleMidLevelManager))

	err := EstimateRules.Check(models.EstimateStatusApproved, models.EstimateStatusRejected, models.RoleAdmin)
	var stateErr *StateError
	require.True(t, errors.As(err, &stateErr))
}

func TestTaskTransitions(t *testing.T) {
	assert.NoError(t, TaskRules.Check(models.TaskStatusPending, models.TaskStatusInProgress, models.RoleMarketingStaff))
	assert.NoError(t, TaskRules.Check(models.TaskStatusInProgress, models.TaskStatusCompleted, models.RoleMarketingStaff))

	err := TaskRules.Check(models.TaskStatusPending, models.TaskStatusCompleted, models.RoleAdmin)
	var stateErr *StateError
	require.True(t, errors.As(err, &stateErr))
}

func TestApprovedLike(t *testing.T) {
	assert.True(t, ApprovedLike(models.ClaimStatusApproved))
	assert.True(t, ApprovedLike(models.ClaimStatusPartiallyApproved))
	assert.False(t, ApprovedLike(models.ClaimStatusRejected))
	assert.False(t, ApprovedLike(models.ClaimStatusPending))
}

func TestPartialApprovalValid(t *testing.T) {
	cases := []struct {
		name     string
		approved int
		pieces   int
		want     bool
	}{
		{"zero pieces rejected", 0, 10, false},
		{"negative rejected", -1, 10, false},
		{"full quantity rejected", 10, 10, false},
		{"over quantity rejected", 11, 10, false},
		{"one piece accepted", 1, 10, true},
		{"all but one accepted", 9, 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PartialApprovalValid(tc.approved, tc.pieces))
		})
	}
}

func TestNeedsTrackingCode(t *testing.T) {
	assert.True(t, NeedsTrackingCode(models.ClaimStatusApproved, ""))
	assert.True(t, NeedsTrackingCode(models.ClaimStatusPartiallyApproved, ""))

	// Once minted, a code survives later transitions untouched.
	assert.False(t, NeedsTrackingCode(models.ClaimStatusApproved, "DMG2608281234"))
	assert.False(t, NeedsTrackingCode(models.ClaimStatusCompleted, "DMG2608281234"))
	assert.False(t, NeedsTrackingCode(models.ClaimStatusRejected, ""))
}

func TestVerb(t *testing.T) {
	assert.Equal(t, "approved", Verb(models.OrderStatusApproved))
	assert.Equal(t, "approved", Verb(models.EstimateStatusApproved))
	assert.Equal(t, "rejected", Verb(models.OrderStatusRejected))
	assert.Equal(t, "partially approved", Verb(models.ClaimStatusPartiallyApproved))
	assert.Equal(t, "updated", Verb("Something Else"))
}
