package order

import "errors"

var ErrInvalidStatus = errors.New("invalid order status")

type Status string

const (
	StatusNew       Status = "new_order"
	StatusPreparing Status = "preparing"
	StatusDelivered Status = "delivered"
)

var statusRank = map[Status]int{
	StatusNew:       1,
	StatusPreparing: 2,
	StatusDelivered: 3,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo allows forward moves only. Repeating the current status or
// walking back to an earlier one is rejected.
func (s Status) CanTransitionTo(next Status) bool {
	cur, ok := statusRank[s]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
