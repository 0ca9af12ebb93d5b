package game

import (
	"github.com/michal995/ticketrush/internal/catalog"
)

// ScoreConfig carries every tunable scoring constant. The relative
// structure (which outcomes award more than which) is fixed; the values
// are not a contract.
type ScoreConfig struct {
	// Base score at round finish.
	PerfectTickets int // full request match
	ValueMatch     int // selected total equals fare, composition differs
	TicketMismatch int // neither (penalty, negative)

	PerfectChange      int // exact settlement with minimal denomination count
	ExactChange        int // exact settlement otherwise
	RecoverableOverpay int // overpaid but round survived to finish
	ChangeDeficit      int // deficit or failure (penalty, negative)

	TimeDivisor int // base time award = remaining / TimeDivisor, rounded

	// Secondary bonuses, completed rounds only.
	SpeedBonus         int
	PerfectChangeBonus int
	TimeBonus          int
	TimeBonusThreshold int     // seconds remaining required for TimeBonus
	PerTicketBudget    float64 // seconds per requested ticket for SpeedBonus

	// Per-event deltas during play.
	TicketPoints   int // successful ticket selection
	TicketPenalty  int // policy-violating ticket tap (negative)
	CoinPoints     int // successful insertion
	OverpayPenalty int // terminal overpay (negative)
	TimeoutPenalty int // terminal timeout (negative)
}

// DefaultScoreConfig returns the standard tuning.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		PerfectTickets: 70,
		ValueMatch:     30,
		TicketMismatch: -20,

		PerfectChange:      30,
		ExactChange:        12,
		RecoverableOverpay: 6,
		ChangeDeficit:      -30,

		TimeDivisor: 2,

		SpeedBonus:         35,
		PerfectChangeBonus: 40,
		TimeBonus:          20,
		TimeBonusThreshold: 5,
		PerTicketBudget:    0.75,

		TicketPoints:   10,
		TicketPenalty:  -25,
		CoinPoints:     5,
		OverpayPenalty: -60,
		TimeoutPenalty: -80,
	}
}

// MinimalDenominationCount solves the unbounded coin-change minimization
// for amount over the given denominations, in cents. The second return is
// false when the amount cannot be formed (or no denominations exist); a
// zero amount needs zero denominations.
func MinimalDenominationCount(amount float64, denominations []catalog.Denomination) (int, bool) {
	cents := catalog.Cents(amount)
	if cents == 0 {
		return 0, true
	}
	seen := map[int]bool{}
	var values []int
	for _, d := range denominations {
		v := catalog.Cents(d.Value)
		if v > 0 && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return 0, false
	}

	const unreachable = int(^uint(0) >> 1)
	dp := make([]int, cents+1)
	for i := 1; i <= cents; i++ {
		dp[i] = unreachable
	}
	for _, v := range values {
		for i := v; i <= cents; i++ {
			if dp[i-v] != unreachable && dp[i-v]+1 < dp[i] {
				dp[i] = dp[i-v] + 1
			}
		}
	}
	if dp[cents] == unreachable {
		return 0, false
	}
	return dp[cents], true
}
