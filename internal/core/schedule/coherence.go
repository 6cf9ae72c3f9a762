// Package schedule contains the pure coherence rules that keep a
// schedule's status in lockstep with its linked service order.
package schedule

import "github.com/example/safeprag/internal/models"

// CoherenceContext provides context for deriving a schedule's status
// during a sweep.
type CoherenceContext struct {
	Current     string // schedule's current status
	OrderStatus string // linked order status, empty if no order exists
	PastDue     bool   // schedule end time has passed
	RevertQuick bool   // allow cancelled -> pending when not yet due (by-date sweep only)
}

// DeriveStatus returns the status a schedule should hold given its
// linked order and clock position. Returns the current status when no
// change applies.
// Rules:
// - A linked order's status drives the schedule (completed, in_progress)
// - No order and past due while pending means the visit was missed: cancelled
// - By-date sweeps may revert a premature cancellation back to pending
func DeriveStatus(ctx CoherenceContext) string {
	switch ctx.OrderStatus {
	case models.OrderStatusCompleted:
		return models.ScheduleStatusCompleted
	case models.OrderStatusInProgress:
		return models.ScheduleStatusInProgress
	}

	if ctx.OrderStatus == "" && ctx.PastDue && ctx.Current == models.ScheduleStatusPending {
		return models.ScheduleStatusCancelled
	}
	if ctx.RevertQuick && ctx.OrderStatus == "" && !ctx.PastDue && ctx.Current == models.ScheduleStatusCancelled {
		return models.ScheduleStatusPending
	}

	return ctx.Current
}
