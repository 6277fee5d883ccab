package domain

type CheckoutStatus string

const (
	CheckoutStatusEmpty     CheckoutStatus = "EMPTY"
	CheckoutStatusPopulated CheckoutStatus = "POPULATED"
	CheckoutStatusConfirmed CheckoutStatus = "CONFIRMED"
	CheckoutStatusRecorded  CheckoutStatus = "RECORDED"
	CheckoutStatusReceipted CheckoutStatus = "RECEIPTED"
	CheckoutStatusCleared   CheckoutStatus = "CLEARED"
)

// transitions holds the forward edges of the checkout cycle. There is
// no cancellation edge from CONFIRMED onward: payment confirmation is
// the commit point.
var transitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusEmpty:     {CheckoutStatusPopulated},
	CheckoutStatusPopulated: {CheckoutStatusConfirmed},
	CheckoutStatusConfirmed: {CheckoutStatusRecorded},
	CheckoutStatusRecorded:  {CheckoutStatusReceipted},
	CheckoutStatusReceipted: {CheckoutStatusCleared},
}

func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCleared
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}
