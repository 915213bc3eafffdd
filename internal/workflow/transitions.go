// Package workflow holds the status-transition tables shared by orders,
// damage claims, sales inquiries, supply estimates and tasks. A transition
// is legal only when the entity sits in the single allowed predecessor set
// for the requested target and the acting role is on the allow-list.
// Transitions never run backwards.
package workflow

import (
	"errors"
	"fmt"

	"field-sales-ops-api-server/internal/models"
)

// Rule describes one legal transition into a target status.
type Rule struct {
	From  []string
	Roles []string
}

// Rules maps target status -> transition rule for one entity kind.
type Rules map[string]Rule

// StateError is returned when the entity's current status is not a legal
// predecessor of the requested target. Maps to HTTP 400.
type StateError struct {
	Current string
	Target  string
}

func (e *StateError) Error() string {
	if e.Current == e.Target {
		return fmt.Sprintf("already %s", e.Current)
	}
	return fmt.Sprintf("cannot move to %s from status %s", e.Target, e.Current)
}

// RoleError is returned when the acting role is not on the allow-list for
// the requested transition. Maps to HTTP 403.
type RoleError struct {
	Role   string
	Target string
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("role %s is not permitted to set status %s", e.Role, e.Target)
}

var ErrUnknownStatus = errors.New("unknown target status")

// Check validates a transition request against the rules. Validation never
// mutates anything; callers write only after a nil return.
func (r Rules) Check(current, target, role string) error {
	rule, ok := r[target]
	if !ok {
		return ErrUnknownStatus
	}
	allowedFrom := false
	for _, from := range rule.From {
		if from == current {
			allowedFrom = true
			break
		}
	}
	if !allowedFrom {
		return &StateError{Current: current, Target: target}
	}
	for _, allowed := range rule.Roles {
		if allowed == role {
			return nil
		}
	}
	return &RoleError{Role: role, Target: target}
}

var managerial = []string{models.RoleAdmin, models.RoleSubAdmin, models.RoleMidLevelManager}
var adminOnly = []string{models.RoleAdmin, models.RoleSubAdmin}

// OrderRules: Requested -> Approved|Rejected -> Dispatched.
var OrderRules = Rules{
	models.OrderStatusApproved: {
		From:  []string{models.OrderStatusRequested},
		Roles: managerial,
	},
	models.OrderStatusRejected: {
		From:  []string{models.OrderStatusRequested},
		Roles: managerial,
	},
	models.OrderStatusDispatched: {
		From:  []string{models.OrderStatusApproved},
		Roles: adminOnly,
	},
}

// ClaimRules: Pending -> Commented -> Approved|Partially Approved|Rejected
// -> Completed. The comment step is optional; decisions are also legal
// straight from Pending.
var ClaimRules = Rules{
	models.ClaimStatusCommented: {
		From:  []string{models.ClaimStatusPending},
		Roles: managerial,
	},
	models.ClaimStatusApproved: {
		From:  []string{models.ClaimStatusPending, models.ClaimStatusCommented},
		Roles: adminOnly,
	},
	models.ClaimStatusPartiallyApproved: {
		From:  []string{models.ClaimStatusPending, models.ClaimStatusCommented},
		Roles: adminOnly,
	},
	models.ClaimStatusRejected: {
		From:  []string{models.ClaimStatusPending, models.ClaimStatusCommented},
		Roles: adminOnly,
	},
	models.ClaimStatusCompleted: {
		From:  []string{models.ClaimStatusApproved, models.ClaimStatusPartiallyApproved},
		Roles: adminOnly,
	},
}

// InquiryRules: Pending -> Commented -> Processing ->
// Completed|Rejected|Dispatched. Processing is also reachable directly
// from Pending.
var InquiryRules = Rules{
	models.InquiryStatusCommented: {
		From:  []string{models.InquiryStatusPending},
		Roles: managerial,
	},
	models.InquiryStatusProcessing: {
		From:  []string{models.InquiryStatusPending, models.InquiryStatusCommented},
		Roles: managerial,
	},
	models.InquiryStatusCompleted: {
		From:  []string{models.InquiryStatusProcessing},
		Roles: adminOnly,
	},
	models.InquiryStatusRejected: {
		From:  []string{models.InquiryStatusPending, models.InquiryStatusCommented, models.InquiryStatusProcessing},
		Roles: adminOnly,
	},
	models.InquiryStatusDispatched: {
		From:  []string{models.InquiryStatusProcessing},
		Roles: adminOnly,
	},
}

// EstimateRules: Pending -> Approved|Rejected.
var EstimateRules = Rules{
	models.EstimateStatusApproved: {
		From:  []string{models.EstimateStatusPending},
		Roles: managerial,
	},
	models.EstimateStatusRejected: {
		From:  []string{models.EstimateStatusPending},
		Roles: managerial,
	},
}

// TaskRules: Pending -> In Progress -> Completed. Any staff role may move
// their own task; ownership is checked by the handler.
var allRoles = []string{models.RoleAdmin, models.RoleSubAdmin, models.RoleMidLevelManager, models.RoleMarketingStaff}

var TaskRules = Rules{
	models.TaskStatusInProgress: {
		From:  []string{models.TaskStatusPending},
		Roles: allRoles,
	},
	models.TaskStatusCompleted: {
		From:  []string{models.TaskStatusInProgress},
		Roles: allRoles,
	},
}

// ApprovedLike reports whether a claim status triggers tracking-code
// generation.
func ApprovedLike(status string) bool {
	return status == models.ClaimStatusApproved || status == models.ClaimStatusPartiallyApproved
}

// PartialApprovalValid reports whether approvedPieces is a legal partial
// quantity for a claim of the given size. A partial approval must keep at
// least one piece on each side of the split.
func PartialApprovalValid(approvedPieces, pieces int) bool {
	return approvedPieces > 0 && approvedPieces < pieces
}

// NeedsTrackingCode reports whether a claim entering the target status
// should mint a tracking code. A code already set is never regenerated.
func NeedsTrackingCode(target, existingCode string) bool {
	return ApprovedLike(target) && existingCode == ""
}

// Verb returns the human-readable action verb recorded in the audit trail
// for a transition into the given status.
func Verb(target string) string {
	switch target {
	case models.OrderStatusApproved:
		return "approved"
	case models.OrderStatusRejected:
		return "rejected"
	case models.OrderStatusDispatched:
		return "dispatched"
	case models.ClaimStatusCommented:
		return "commented on"
	case models.ClaimStatusPartiallyApproved:
		return "partially approved"
	case models.ClaimStatusCompleted:
		return "completed"
	case models.InquiryStatusProcessing:
		return "started processing"
	case models.TaskStatusInProgress:
		return "started"
	default:
		return "updated"
	}
}
