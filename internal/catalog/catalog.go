package catalog

// TicketType is a passenger category with a fixed price.
type TicketType struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Class string  `json:"class"`
}

// DenominationKind distinguishes bills from coins.
type DenominationKind string

const (
	Bill DenominationKind = "bill"
	Coin DenominationKind = "coin"
)

// Denomination is a currency unit the player can insert. A denomination
// with a ToggleKey can be disabled through settings.
type Denomination struct {
	Value     float64          `json:"value"`
	Kind      DenominationKind `json:"kind"`
	ToggleKey string           `json:"toggle_key,omitempty"`
}

// Mode is a selectable game mode. The time limit is per round, in seconds.
type Mode struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	TimeLimit   int    `json:"time_limit"`
	Description string `json:"description"`
}

// DefaultMode is used when a session is started with an unknown mode key.
const DefaultMode = "TB1"

// TotalRounds is the number of rounds in a session.
const TotalRounds = 5

// Toggle keys for denominations that can be switched off in settings.
const (
	ToggleTwoBill = "allow_two_bill"
	ToggleOneCent = "allow_one_cent"
)

// TicketTypes lists every ticket type the kiosk can sell.
var TicketTypes = []TicketType{
	{Name: "Normal", Price: 1.20, Class: "t-normal"},
	{Name: "Kid", Price: 0.50, Class: "t-kid"},
	{Name: "Luggage", Price: 0.60, Class: "t-luggage"},
	{Name: "Senior", Price: 0.80, Class: "t-senior"},
	{Name: "Disabled", Price: 0.60, Class: "t-disabled"},
	{Name: "Baby Stroller", Price: 0.70, Class: "t-stroller"},
	{Name: "Bike", Price: 0.90, Class: "t-bike"},
	{Name: "Tourist", Price: 1.50, Class: "t-tourist"},
}

// baselineTickets are always part of a bus configuration and always part
// of a passenger request.
var baselineTickets = map[string]bool{
	"Normal": true,
	"Kid":    true,
}

// Denominations lists every currency unit, largest first.
var Denominations = []Denomination{
	{Value: 5, Kind: Bill},
	{Value: 2, Kind: Bill, ToggleKey: ToggleTwoBill},
	{Value: 1, Kind: Bill},
	{Value: 0.50, Kind: Coin},
	{Value: 0.25, Kind: Coin},
	{Value: 0.10, Kind: Coin},
	{Value: 0.05, Kind: Coin},
	{Value: 0.01, Kind: Coin, ToggleKey: ToggleOneCent},
}

// Modes lists the selectable game modes.
var Modes = []Mode{
	{Key: "TB1", Label: "Top/Bottom 1", TimeLimit: 20, Description: "Classic rush with single passenger focus."},
	{Key: "TB2", Label: "Top/Bottom 2", TimeLimit: 25, Description: "Longer time window and bigger groups."},
	{Key: "HR1", Label: "Horizontal 1", TimeLimit: 18, Description: "Quick-fire requests, perfect for warm-ups."},
	{Key: "HR2", Label: "Horizontal 2", TimeLimit: 22, Description: "Balanced challenge with varied passengers."},
}

// IsBaseline reports whether a ticket type is one of the always-included
// baseline types.
func IsBaseline(name string) bool {
	return baselineTickets[name]
}

// TicketByName looks up a ticket type by its unique name.
func TicketByName(name string) (TicketType, bool) {
	for _, t := range TicketTypes {
		if t.Name == name {
			return t, true
		}
	}
	return TicketType{}, false
}

// DenominationByValue looks up a denomination by its value. Values are
// compared in cents to avoid float equality problems.
func DenominationByValue(value float64) (Denomination, bool) {
	c := Cents(value)
	for _, d := range Denominations {
		if Cents(d.Value) == c {
			return d, true
		}
	}
	return Denomination{}, false
}

// ModeByKey looks up a mode by its key.
func ModeByKey(key string) (Mode, bool) {
	for _, m := range Modes {
		if m.Key == key {
			return m, true
		}
	}
	return Mode{}, false
}

// ResolveMode returns the mode for key, falling back to the default mode
// when the key is empty or unknown.
func ResolveMode(key string) Mode {
	if m, ok := ModeByKey(key); ok {
		return m
	}
	m, _ := ModeByKey(DefaultMode)
	return m
}

// AvailableDenominations returns the denominations whose toggle (if any)
// is enabled. A nil enabled func means everything is available.
func AvailableDenominations(enabled func(toggleKey string) bool) []Denomination {
	out := make([]Denomination, 0, len(Denominations))
	for _, d := range Denominations {
		if d.ToggleKey != "" && enabled != nil && !enabled(d.ToggleKey) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Cents converts a currency amount to an integer cent count.
func Cents(value float64) int {
	if value < 0 {
		value = 0
	}
	return int(value*100 + 0.5)
}
