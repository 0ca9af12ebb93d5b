package game

import (
	"fmt"
	"time"

	"github.com/michal995/ticketrush/internal/catalog"
)

// FailReason classifies why an action was refused. Expected invalid input
// never surfaces as a Go error; callers branch on the reason instead.
type FailReason string

const (
	ReasonUnknownTicket       FailReason = "unknown-ticket"
	ReasonInactive            FailReason = "inactive"
	ReasonNotRequested        FailReason = "not-requested"
	ReasonExcess              FailReason = "excess"
	ReasonEmpty               FailReason = "empty"
	ReasonLocked              FailReason = "locked"
	ReasonPaused              FailReason = "paused"
	ReasonRoundOver           FailReason = "round-over"
	ReasonUnknownDenomination FailReason = "unknown-denomination"
)

// PolicyViolation reports whether a failure is a policy violation (action
// valid in principle, attempted outside its allowed phase or budget) as
// opposed to plain invalid input.
func (r FailReason) PolicyViolation() bool {
	switch r {
	case ReasonInactive, ReasonNotRequested, ReasonExcess, ReasonLocked:
		return true
	}
	return false
}

// TicketResult is the outcome of an add/remove ticket action.
type TicketResult struct {
	OK     bool
	Reason FailReason
	Ticket catalog.TicketType
	Count  int // selected count after the action
	Need   int // requested count for this type
}

// CoinResult is the outcome of an insert-coin action.
type CoinResult struct {
	OK        bool
	Reason    FailReason
	Value     float64
	Inserted  float64 // running total after the action
	ChangeDue float64 // settlement target for the caller to evaluate
}

func formatMoney(value float64) string {
	if value < 0 {
		value = -value
	}
	return fmt.Sprintf("$%.2f", value)
}

// AddTicket increments the selected count for a ticket type. It refuses
// unknown names, types not on this round's bus, types the passenger did
// not request, and counts beyond the request. Phase-completion detection
// is the caller's responsibility.
func AddTicket(s *Session, ticketName string) TicketResult {
	ticket, ok := catalog.TicketByName(ticketName)
	if !ok {
		return TicketResult{Reason: ReasonUnknownTicket}
	}
	active := false
	for _, t := range s.Available {
		if t.Name == ticket.Name {
			active = true
			break
		}
	}
	if !active {
		return TicketResult{Reason: ReasonInactive, Ticket: ticket}
	}
	need := s.Request[ticket.Name]
	if need == 0 {
		return TicketResult{Reason: ReasonNotRequested, Ticket: ticket}
	}
	current := s.SelectedTickets[ticket.Name]
	if current >= need {
		return TicketResult{Reason: ReasonExcess, Ticket: ticket, Count: current, Need: need}
	}

	s.SelectedTickets[ticket.Name] = current + 1
	s.SelectedTotal = Round2(s.SelectedTotal + ticket.Price)
	s.logHistory("Added "+ticket.Name, "+"+formatMoney(ticket.Price))
	return TicketResult{OK: true, Ticket: ticket, Count: current + 1, Need: need}
}

// RemoveTicket decrements the selected count for a ticket type, dropping
// zero-count entries. Removal always relocks the payment phase: the
// currency step must restart. Forfeiting already-inserted coins is the
// controller's job via ResetCoins.
func RemoveTicket(s *Session, ticketName string) TicketResult {
	ticket, ok := catalog.TicketByName(ticketName)
	if !ok {
		return TicketResult{Reason: ReasonUnknownTicket}
	}
	current := s.SelectedTickets[ticket.Name]
	if current <= 0 {
		return TicketResult{Reason: ReasonEmpty, Ticket: ticket}
	}

	if current == 1 {
		delete(s.SelectedTickets, ticket.Name)
	} else {
		s.SelectedTickets[ticket.Name] = current - 1
	}
	s.SelectedTotal = Round2(s.SelectedTotal - ticket.Price)

	s.TicketsPhaseComplete = false
	s.CanPay = false
	s.ShowPays = false
	s.PayFlashPending = false
	s.PayFlashShown = false
	s.TicketsCompletedAt = time.Time{}

	s.logHistory("Removed "+ticket.Name, "-"+formatMoney(ticket.Price))
	return TicketResult{OK: true, Ticket: ticket, Count: current - 1, Need: s.Request[ticket.Name]}
}

// ClearTickets resets the ticket selection and every payment-phase flag.
// One history entry is appended for the whole reset.
func ClearTickets(s *Session) {
	s.SelectedTickets = map[string]int{}
	s.SelectedTotal = 0
	s.TicketsPhaseComplete = false
	s.CanPay = false
	s.ShowPays = false
	s.PayFlashPending = false
	s.PayFlashShown = false
	s.logHistory("Cleared tickets", "$0.00")
}

// InsertCoin records a denomination insertion. The value must match one of
// the currently available denominations and the ticket phase must be
// complete. Settlement and overpay evaluation belong to the caller.
func InsertCoin(s *Session, value float64, available []catalog.Denomination) CoinResult {
	if !s.CanPay {
		return CoinResult{Reason: ReasonLocked, Value: value}
	}
	cents := catalog.Cents(value)
	known := false
	for _, d := range available {
		if catalog.Cents(d.Value) == cents {
			known = true
			value = d.Value
			break
		}
	}
	if !known {
		return CoinResult{Reason: ReasonUnknownDenomination, Value: value}
	}

	s.CoinsUsed[cents]++
	s.Inserted = Round2(s.Inserted + value)
	s.ShowChange = true
	s.logHistory("Returned", "+"+formatMoney(value))
	return CoinResult{OK: true, Value: value, Inserted: s.Inserted, ChangeDue: s.ChangeDue}
}

// ResetCoins clears every inserted denomination and the payment-phase
// visual flags. Used when ticket removal invalidates the payment phase and
// on explicit restart.
func ResetCoins(s *Session) {
	s.CoinsUsed = map[int]int{}
	s.Inserted = 0
	s.ShowChange = false
	s.PayFlashPending = false
	s.PayFlashShown = false
	s.logHistory("Change cleared", "$0.00")
}
