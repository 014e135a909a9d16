package domain

// StateMachine is an ordered set of states plus the moves allowed between them.
type StateMachine[S ~string] struct {
	order       []S
	transitions map[S]map[S]bool
}

// NewOpenStateMachine allows every move between known states, including
// jumps backwards and out of terminal states.
func NewOpenStateMachine[S ~string](order ...S) *StateMachine[S] {
	m := &StateMachine[S]{order: order, transitions: make(map[S]map[S]bool, len(order))}
	for _, from := range order {
		m.transitions[from] = make(map[S]bool, len(order))
		for _, to := range order {
			m.transitions[from][to] = true
		}
	}
	return m
}

func (m *StateMachine[S]) Order() []S {
	out := make([]S, len(m.order))
	copy(out, m.order)
	return out
}

func (m *StateMachine[S]) Known(s S) bool {
	_, ok := m.transitions[s]
	return ok
}

func (m *StateMachine[S]) CanTransition(from, to S) bool {
	return m.transitions[from][to]
}

var ProjectStates = NewOpenStateMachine(
	ProjectDiscovery,
	ProjectInProgress,
	ProjectReview,
	ProjectProduction,
	ProjectPaused,
	ProjectClosed,
)

var TicketStates = NewOpenStateMachine(
	TicketNew,
	TicketInProgress,
	TicketWaitingClient,
	TicketResolved,
	TicketClosed,
)

// TimelineStep is one position of a status sequence as rendered for a record.
type TimelineStep struct {
	Status    string `json:"status"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// Timeline marks steps before the current one as completed and the current one
// as current. CLOSED is the only step completed by being current. PAUSED gets
// no special treatment: earlier steps stay completed while paused.
// A status missing from order yields no completed or current step.
func Timeline[S ~string](order []S, current S, labels LabelTable[S]) []TimelineStep {
	idx := -1
	for i, s := range order {
		if s == current {
			idx = i
			break
		}
	}

	steps := make([]TimelineStep, len(order))
	for i, s := range order {
		steps[i] = TimelineStep{
			Status:    string(s),
			Label:     labels.Label(s),
			Completed: idx >= 0 && (i < idx || (isClosed(current) && s == current)),
			Current:   i == idx,
		}
	}
	return steps
}

// closedState is the terminal value shared by project and ticket sequences.
const closedState = "CLOSED"

func isClosed[S ~string](s S) bool {
	return string(s) == closedState
}

func ProjectTimeline(current ProjectStatus) []TimelineStep {
	return Timeline(ProjectStates.Order(), current, ProjectStatusLabels)
}

func TicketTimeline(current TicketStatus) []TimelineStep {
	return Timeline(TicketStates.Order(), current, TicketStatusLabels)
}
