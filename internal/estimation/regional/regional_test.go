package regional

import "testing"

func TestParseLocationCityState(t *testing.T) {
	loc := ParseLocation("123 Main St, Dallas, TX 75201")
	if loc.City != "Dallas" || loc.State != "TX" {
		t.Fatalf("got %+v", loc)
	}
}

func TestParseLocationFullStateName(t *testing.T) {
	loc := ParseLocation("456 Oak Ave, San Francisco, California")
	if loc.City != "San Francisco" || loc.State != "CA" {
		t.Fatalf("got %+v", loc)
	}
}

func TestParseLocationNoState(t *testing.T) {
	loc := ParseLocation("123 Main St")
	if loc.City != "" || loc.State != "" {
		t.Fatalf("expected empty location, got %+v", loc)
	}
}

func TestParseLocationStateOnly(t *testing.T) {
	loc := ParseLocation("TX")
	if loc.State != "TX" || loc.City != "" {
		t.Fatalf("got %+v", loc)
	}
}

func TestMultiplierDallas(t *testing.T) {
	adj := ForAddress("123 Main St, Dallas, TX 75201")
	if adj.Multiplier != 1.00 {
		t.Fatalf("expected 1.00, got %v", adj.Multiplier)
	}
	if adj.Label != "Standard rate" {
		t.Fatalf("expected Standard rate, got %q", adj.Label)
	}
	if adj.AdjustmentPercent != 0 {
		t.Fatalf("expected 0%%, got %d", adj.AdjustmentPercent)
	}
}

func TestMultiplierSanFrancisco(t *testing.T) {
	adj := ForAddress("456 Oak Ave, San Francisco, CA 94110")
	if adj.Multiplier != 1.25 {
		t.Fatalf("expected 1.25, got %v", adj.Multiplier)
	}
	if adj.AdjustmentPercent != 25 {
		t.Fatalf("expected +25%%, got %d", adj.AdjustmentPercent)
	}
	if adj.AppliesTo != "labor only" {
		t.Fatalf("expected labor only, got %q", adj.AppliesTo)
	}
}

func TestMultiplierUnparseableAddress(t *testing.T) {
	adj := ForAddress("123 Main St")
	if adj.Multiplier != 1.0 || adj.Label != "Standard rate" {
		t.Fatalf("got %+v", adj)
	}
}

func TestMultiplierStateDefault(t *testing.T) {
	adj := ForAddress("99 Elm St, Bakersfield, CA")
	if adj.Multiplier != 1.15 {
		t.Fatalf("expected state default 1.15, got %v", adj.Multiplier)
	}
}

func TestMultiplierRuralFallback(t *testing.T) {
	adj := ForAddress("1 Farm Rd, Smalltown, WY")
	if adj.Multiplier != 0.9 {
		t.Fatalf("expected rural fallback 0.9, got %v", adj.Multiplier)
	}
}

func TestMultiplierNeverZeroOrNegative(t *testing.T) {
	addresses := []string{"", "nowhere", "x, y, z", "Dallas, TX", "Smalltown, WY", "123 Main St"}
	for _, addr := range addresses {
		if adj := ForAddress(addr); adj.Multiplier <= 0 {
			t.Fatalf("address %q yielded multiplier %v", addr, adj.Multiplier)
		}
	}
}
