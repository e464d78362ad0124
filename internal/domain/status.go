package domain

// Statuses considered administratively closed on the remote side.
// Orders in one of these states never enter the working dataset.
// This runs once per fetched order and is not a user-toggleable filter.
var excludedStatuses = map[string]bool{
	"completed": true,
	"cancelled": true,
	"refunded":  true,
	"failed":    true,
}

// AcceptStatus reports whether an order with the given remote status
// belongs in the working dataset.
func AcceptStatus(status string) bool {
	return !excludedStatuses[status]
}
