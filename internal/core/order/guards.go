package order

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/safeprag/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateOrderContext provides context for order creation guards.
type CreateOrderContext struct {
	OperatorName    string // empty if no operator identity configured
	ScheduleID      string
	HasActiveOrder  bool // an in_progress order exists for today
	ScheduleStarted bool // an in_progress order exists for this schedule
}

// CanCreateOrder evaluates whether a service order can be created.
// Rules:
// - Operator identity must be configured (controlador name non-empty)
// - No other order may be active today
// - The schedule must not already have an active order
func CanCreateOrder(ctx CreateOrderContext) GuardResult {
	if strings.TrimSpace(ctx.OperatorName) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "operator identity not configured. Set it with: safeprag operator set",
		}
	}

	if ctx.HasActiveOrder {
		return GuardResult{
			Allowed: false,
			Reason:  "another service order is already in progress today",
		}
	}

	if ctx.ScheduleStarted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("schedule %s already has an order in progress", ctx.ScheduleID),
		}
	}

	return GuardResult{Allowed: true}
}

// FinishOrderContext provides context for order completion guards.
type FinishOrderContext struct {
	ServiceType string
	Treatment   string
}

// RequiresTreatment reports whether the service type is a treatment
// type, for which the treatment field is mandatory at finish time.
func RequiresTreatment(serviceType string) bool {
	st := strings.ToLower(serviceType)
	for _, t := range models.TreatmentServiceTypes {
		if st == t {
			return true
		}
	}
	return false
}

// CanFinishOrder evaluates whether an order can be finished.
// Rules:
// - Treatment field must be set when the service type is a treatment type
func CanFinishOrder(ctx FinishOrderContext) GuardResult {
	if RequiresTreatment(ctx.ServiceType) && ctx.Treatment == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "treatment field is required for this service type",
		}
	}

	return GuardResult{Allowed: true}
}

// NextOrderNumber computes the next display number for an order:
// max over all numeric ids, plus one. Non-numeric ids are ignored so
// legacy or uuid ids never poison the sequence.
func NextOrderNumber(ids []string) int {
	max := 0
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

// IsActiveToday reports whether an order counts against the
// one-active-order-per-day gate.
func IsActiveToday(o *models.ServiceOrder, today string) bool {
	return o.Date == today && o.Status == models.OrderStatusInProgress
}

// IsFinished reports whether an order is in a finished, reportable
// state: it has an end time and is completed or approved.
func IsFinished(o *models.ServiceOrder) bool {
	if o.EndTime == "" {
		return false
	}
	return o.Status == models.OrderStatusCompleted || o.Status == models.OrderStatusApproved
}
