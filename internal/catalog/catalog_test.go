package catalog

import "testing"

func TestTicketByName(t *testing.T) {
	ticket, ok := TicketByName("Normal")
	if !ok {
		t.Fatal("expected Normal ticket to exist")
	}
	if ticket.Price != 1.20 {
		t.Errorf("expected Normal price 1.20, got %v", ticket.Price)
	}

	if _, ok := TicketByName("Helicopter"); ok {
		t.Error("expected unknown ticket lookup to fail")
	}
}

func TestIsBaseline(t *testing.T) {
	if !IsBaseline("Normal") {
		t.Error("Normal should be baseline")
	}
	if !IsBaseline("Kid") {
		t.Error("Kid should be baseline")
	}
	if IsBaseline("Tourist") {
		t.Error("Tourist should not be baseline")
	}
}

func TestDenominationByValue(t *testing.T) {
	tests := []struct {
		value float64
		want  bool
	}{
		{5, true},
		{2, true},
		{0.50, true},
		{0.01, true},
		{0.03, false},
		{100, false},
	}

	for _, tt := range tests {
		_, ok := DenominationByValue(tt.value)
		if ok != tt.want {
			t.Errorf("DenominationByValue(%v) = %v, want %v", tt.value, ok, tt.want)
		}
	}
}

func TestDenominationByValueFloatNoise(t *testing.T) {
	// 0.1+0.2 style float error must not break the lookup
	d, ok := DenominationByValue(0.30000000000000004 - 0.05)
	if !ok {
		t.Fatal("expected noisy 0.25 to resolve")
	}
	if d.Value != 0.25 {
		t.Errorf("expected 0.25, got %v", d.Value)
	}
}

func TestResolveMode(t *testing.T) {
	if m := ResolveMode("HR1"); m.Key != "HR1" || m.TimeLimit != 18 {
		t.Errorf("ResolveMode(HR1) = %+v", m)
	}
	if m := ResolveMode(""); m.Key != DefaultMode {
		t.Errorf("empty mode should resolve to default, got %q", m.Key)
	}
	if m := ResolveMode("nope"); m.Key != DefaultMode {
		t.Errorf("unknown mode should resolve to default, got %q", m.Key)
	}
}

func TestAvailableDenominations(t *testing.T) {
	all := AvailableDenominations(nil)
	if len(all) != len(Denominations) {
		t.Errorf("nil enabled func should return all %d denominations, got %d", len(Denominations), len(all))
	}

	noToggles := AvailableDenominations(func(string) bool { return false })
	if len(noToggles) != len(Denominations)-2 {
		t.Errorf("expected %d denominations with toggles off, got %d", len(Denominations)-2, len(noToggles))
	}
	for _, d := range noToggles {
		if d.ToggleKey != "" {
			t.Errorf("toggled denomination %v should be excluded", d.Value)
		}
	}
}

func TestCents(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{0, 0},
		{0.01, 1},
		{0.1, 10},
		{1.20, 120},
		{5, 500},
		{0.29, 29},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := Cents(tt.value); got != tt.want {
			t.Errorf("Cents(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
