package model

// Milestone is one step of the fixed progress sequence shown to
// customers. Multiple statuses alias to the same milestone.
type Milestone int

const (
	MilestoneQuote Milestone = iota
	MilestoneApproved
	MilestoneInProduction
	MilestoneReadyToShip
	MilestoneShipped
	MilestoneDelivered

	milestoneCount
)

var milestoneLabels = [milestoneCount]string{
	"Quote",
	"Approved",
	"In Production",
	"Ready to Ship",
	"Shipped",
	"Delivered",
}

// Label returns the display name of the milestone.
func (m Milestone) Label() string {
	return milestoneLabels[m]
}

// statusMilestones covers every non-cancelled status. payment_due is a
// side-branch that still projects onto the main sequence at production.
var statusMilestones = map[Status]Milestone{
	StatusQuote:        MilestoneQuote,
	StatusPending:      MilestoneApproved,
	StatusInProduction: MilestoneInProduction,
	StatusPaymentDue:   MilestoneInProduction,
	StatusReadyToShip:  MilestoneReadyToShip,
	StatusShipped:      MilestoneShipped,
	StatusDelivered:    MilestoneDelivered,
	StatusCompleted:    MilestoneDelivered,
	StatusInvoicePaid:  MilestoneDelivered,
}

// MilestoneState is the render state of a single milestone.
type MilestoneState string

const (
	MilestoneCompleted MilestoneState = "completed"
	MilestoneActive    MilestoneState = "active"
	MilestonePending   MilestoneState = "pending"
)

// TimelineStep pairs a milestone with its render state.
type TimelineStep struct {
	Milestone Milestone
	State     MilestoneState
}

// Projection is the timeline view of a status. Cancelled records render a
// single terminal indicator instead of the sequence.
type Projection struct {
	Cancelled bool
	Current   Milestone
	Steps     []TimelineStep
}

// MilestoneFor returns the milestone a status projects onto. Cancelled has
// no milestone; callers must branch on it first.
func MilestoneFor(s Status) (Milestone, bool) {
	s.mustBeValid()
	m, ok := statusMilestones[s]
	return m, ok
}

// ProjectTimeline computes the milestone sequence for a status. A status
// outside the vocabulary panics: silently defaulting would hide upstream
// data defects.
func ProjectTimeline(s Status) Projection {
	s.mustBeValid()

	if s == StatusCancelled {
		return Projection{Cancelled: true}
	}

	current := statusMilestones[s]
	success := s.TerminalSuccess()

	steps := make([]TimelineStep, milestoneCount)
	for i := Milestone(0); i < milestoneCount; i++ {
		state := MilestonePending
		switch {
		case i < current || success:
			state = MilestoneCompleted
		case i == current:
			state = MilestoneActive
		}
		steps[i] = TimelineStep{Milestone: i, State: state}
	}

	return Projection{Current: current, Steps: steps}
}
