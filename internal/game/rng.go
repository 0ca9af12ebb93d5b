package game

import (
	"math"
	"math/rand"

	"github.com/michal995/ticketrush/internal/catalog"
)

// Source supplies randomness to the round rolls. *rand.Rand satisfies it;
// tests inject scripted sources to assert exact outputs.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a rand-backed Source seeded with seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Payment is the rolled payment target for a round.
type Payment struct {
	Pays   float64 `json:"pays"`
	Change float64 `json:"change"`
}

// Round2 rounds a currency amount to the nearest cent. All monetary
// arithmetic goes through this after every operation.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Triangular samples a triangular distribution over [min, max] with the
// given mode. The mode is clamped into the interval first.
func Triangular(src Source, min, max, mode float64) float64 {
	if max <= min {
		return min
	}
	if mode < min {
		mode = min
	}
	if mode > max {
		mode = max
	}
	u := src.Float64()
	c := (mode - min) / (max - min)
	if u == c {
		return mode
	}
	if u < c {
		return min + math.Sqrt(u*(max-min)*(mode-min))
	}
	return max - math.Sqrt((1-u)*(max-min)*(max-mode))
}

// TriangularInt samples a triangular distribution and rounds to the
// nearest integer.
func TriangularInt(src Source, min, max, mode int) int {
	return int(math.Round(Triangular(src, float64(min), float64(max), float64(mode))))
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func shuffleTickets(src Source, tickets []catalog.TicketType) []catalog.TicketType {
	out := make([]catalog.TicketType, len(tickets))
	copy(out, tickets)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RollBusConfig selects the ticket types available this round: between 2
// and min(7, catalog size) types biased toward 4, always including the
// baseline types, the rest drawn without replacement and shuffled.
func RollBusConfig(src Source) []catalog.TicketType {
	minTypes := 2
	maxTypes := len(catalog.TicketTypes)
	if maxTypes > 7 {
		maxTypes = 7
	}
	desired := clampInt(TriangularInt(src, minTypes, maxTypes, 4), minTypes, maxTypes)

	var base, others []catalog.TicketType
	for _, t := range catalog.TicketTypes {
		if catalog.IsBaseline(t.Name) {
			base = append(base, t)
		} else {
			others = append(others, t)
		}
	}

	result := base
	for _, t := range shuffleTickets(src, others) {
		if len(result) >= desired {
			break
		}
		result = append(result, t)
	}
	return shuffleTickets(src, result)
}

// RollRequest derives the passenger request from the available ticket
// types: a subset biased toward 5 types with baselines guaranteed, each
// assigned a count in [2,7] biased toward 4. Empty input yields an empty
// request.
func RollRequest(src Source, available []catalog.TicketType) map[string]int {
	pool := shuffleTickets(src, available)
	minTypes := len(pool)
	if minTypes > 2 {
		minTypes = 2
	}
	maxTypes := len(pool)
	if maxTypes > 7 {
		maxTypes = 7
	}
	mode := maxTypes
	if mode > 5 {
		mode = 5
	}
	desired := clampInt(TriangularInt(src, minTypes, maxTypes, mode), minTypes, maxTypes)

	var chosen, remaining []catalog.TicketType
	for _, t := range pool {
		if catalog.IsBaseline(t.Name) {
			chosen = append(chosen, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	for len(chosen) < desired && len(remaining) > 0 {
		chosen = append(chosen, remaining[0])
		remaining = remaining[1:]
	}

	request := make(map[string]int, len(chosen))
	for _, t := range chosen {
		request[t.Name] = clampInt(TriangularInt(src, 2, 7, 4), 2, 7)
	}
	return request
}

// FareOf sums the request against catalog prices. Unknown names
// contribute nothing.
func FareOf(request map[string]int) float64 {
	var total float64
	for name, count := range request {
		ticket, ok := catalog.TicketByName(name)
		if !ok {
			continue
		}
		total += ticket.Price * float64(count)
	}
	return Round2(total)
}

// RollPayment rolls a change amount in [0.16, 7] biased toward 0.84 and
// derives the payment the passenger hands over.
func RollPayment(src Source, fare float64) Payment {
	const (
		minChange     = 0.16
		maxChange     = 7.0
		preferredMode = 0.84
	)
	change := clampFloat(Round2(Triangular(src, minChange, maxChange, preferredMode)), minChange, maxChange)
	return Payment{
		Pays:   Round2(fare + change),
		Change: change,
	}
}
