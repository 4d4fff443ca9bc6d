package tracking

import "github.com/Lixing-Zhang/foodie-storefront/internal/models"

// positions maps each status to its step index. Pending sits before the
// first step; cancelled and failed have no place in the sequence.
var positions = map[models.OrderStatus]int{
	models.StatusPending:        0,
	models.StatusConfirmed:      1,
	models.StatusPreparing:      2,
	models.StatusOutForDelivery: 3,
	models.StatusDelivered:      4,
	models.StatusCancelled:      -1,
	models.StatusFailed:         -2,
}

var stepDefs = []struct {
	status models.OrderStatus
	label  string
	icon   string
}{
	{models.StatusConfirmed, "Order Confirmed", "check-circle"},
	{models.StatusPreparing, "Preparing Food", "package"},
	{models.StatusOutForDelivery, "Out for Delivery", "truck"},
	{models.StatusDelivered, "Delivered", "home"},
}

// Step is one stage of the progress indicator
type Step struct {
	Status  models.OrderStatus `json:"status"`
	Label   string             `json:"label"`
	Icon    string             `json:"icon"`
	Active  bool               `json:"active"`
	Current bool               `json:"current"`
	// Filled is true when the connector after this step should be drawn as
	// completed. Always false for the last step.
	Filled bool `json:"filled"`
}

// Stepper is the render model for an order's status
type Stepper struct {
	Status       models.OrderStatus `json:"status"`
	Failed       bool               `json:"failed"`
	FailureLabel string             `json:"failureLabel,omitempty"`
	Steps        []Step             `json:"steps,omitempty"`
}

// Position returns the step index for status. Unknown statuses map to 0.
func Position(status models.OrderStatus) int {
	return positions[status]
}

// NewStepper builds the stepper for status. Cancelled and failed orders get
// a failure panel and no step sequence.
func NewStepper(status models.OrderStatus) Stepper {
	switch status {
	case models.StatusCancelled:
		return Stepper{Status: status, Failed: true, FailureLabel: "Order Cancelled"}
	case models.StatusFailed:
		return Stepper{Status: status, Failed: true, FailureLabel: "Order Failed"}
	}

	current := Position(status)
	steps := make([]Step, len(stepDefs))
	for i, def := range stepDefs {
		n := i + 1
		active := n <= current
		steps[i] = Step{
			Status:  def.status,
			Label:   def.label,
			Icon:    def.icon,
			Active:  active,
			Current: n == current,
			Filled:  active && n < current && i < len(stepDefs)-1,
		}
	}

	return Stepper{Status: status, Steps: steps}
}

// ActiveCount returns how many steps are active
func (s Stepper) ActiveCount() int {
	n := 0
	for _, st := range s.Steps {
		if st.Active {
			n++
		}
	}
	return n
}

// CanTransition reports whether an order may move from one status to
// another. Terminal statuses accept no changes and progress never moves
// backwards; cancellation and failure are allowed from any live status.
func CanTransition(from, to models.OrderStatus) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() || from == to {
		return false
	}
	if to == models.StatusCancelled || to == models.StatusFailed {
		return true
	}
	return Position(to) > Position(from)
}
