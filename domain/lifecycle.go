package domain

// Session transitions depend on who is asking. A student reschedule parks
// the session in "rescheduled" until the counsellor confirms; a counsellor
// reschedule is self-approving and lands directly in "progress".
// Nothing leaves "completed" or "cancelled".

type sessionEdge struct {
	from  string
	to    string
	actor string // empty = any actor
}

var sessionEdges = []sessionEdge{
	{from: StatusPending, to: StatusProgress, actor: ActorCounsellor},     // accept
	{from: StatusPending, to: StatusRescheduled, actor: ActorStudent},     // reschedule request
	{from: StatusPending, to: StatusProgress, actor: ActorCounsellor},     // counsellor reschedule
	{from: StatusRescheduled, to: StatusProgress, actor: ActorCounsellor}, // counsellor confirms/moves
	{from: StatusPending, to: StatusCancelled},
	{from: StatusProgress, to: StatusCancelled},
	{from: StatusRescheduled, to: StatusCancelled},
	{from: StatusProgress, to: StatusCompleted, actor: ActorCounsellor}, // close via add-entry
}

// SessionStatuses is the closed set of values a session status may take.
var SessionStatuses = []string{
	StatusPending, StatusProgress, StatusRescheduled, StatusCancelled, StatusCompleted,
}

// CaseStatuses is the closed set of values a case status may take.
var CaseStatuses = []string{
	StatusPending, StatusProgress, StatusCancelled, StatusCompleted, StatusReferred,
}

// CanSessionTransition reports whether actor may move a session from one
// status to another.
func CanSessionTransition(from, to, actor string) bool {
	for _, e := range sessionEdges {
		if e.from == from && e.to == to && (e.actor == "" || e.actor == actor) {
			return true
		}
	}
	return false
}

// SessionSources lists the statuses from which actor may move a session to
// target. The repository's guarded updates put this list in their WHERE
// clause, so the conditional writes enforce exactly the edge table above.
func SessionSources(target, actor string) []string {
	var from []string
	for _, status := range SessionStatuses {
		if CanSessionTransition(status, target, actor) {
			from = append(from, status)
		}
	}
	return from
}

// SessionTerminal reports whether a status admits no further transitions.
func SessionTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// RescheduleTarget returns the status a reschedule by actor lands in.
func RescheduleTarget(actor string) string {
	if actor == ActorCounsellor {
		return StatusProgress
	}
	return StatusRescheduled
}

// ActiveSessionStatuses are the statuses that claim a counsellor's time
// slot; overlap checks and availability subtraction look at these only.
var ActiveSessionStatuses = []string{StatusPending, StatusProgress}
