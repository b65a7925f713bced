package tax

import "testing"

func TestNoStateIsNotTaxable(t *testing.T) {
	res := Calculate(Input{ServiceType: "Plumbing", SubtotalCents: 100000, LaborCents: 80000, MaterialCents: 20000})
	if res.IsTaxable {
		t.Fatal("expected not taxable without a state")
	}
	if res.Regime != RegimeUnknown {
		t.Fatalf("expected unknown regime, got %s", res.Regime)
	}
	if res.TaxCents != 0 {
		t.Fatalf("expected zero tax, got %d", res.TaxCents)
	}
}

func TestOregonAlwaysExempt(t *testing.T) {
	for _, svc := range []string{"Plumbing", "Cleaning", "HVAC", "General"} {
		res := Calculate(Input{State: "OR", ServiceType: svc, SubtotalCents: 250000, LaborCents: 200000, MaterialCents: 50000})
		if res.IsTaxable || res.TaxCents != 0 {
			t.Fatalf("Oregon %s: expected exempt, got %+v", svc, res)
		}
		if res.Regime != RegimeNoTax {
			t.Fatalf("expected no_tax regime, got %s", res.Regime)
		}
	}
}

func TestBroadRegimeTaxesFullSubtotal(t *testing.T) {
	res := Calculate(Input{State: "NM", ServiceType: "Carpentry", SubtotalCents: 100000, LaborCents: 70000, MaterialCents: 30000})
	if !res.IsTaxable {
		t.Fatal("expected taxable")
	}
	if res.TaxableCents != 100000 {
		t.Fatalf("broad regime should tax the full subtotal, got %d", res.TaxableCents)
	}
	// 100000 * 0.05125 = 5125
	if res.TaxCents != 5125 {
		t.Fatalf("expected 5125, got %d", res.TaxCents)
	}
}

func TestSelectiveRegisteredService(t *testing.T) {
	res := Calculate(Input{State: "TX", ServiceType: "Cleaning", SubtotalCents: 50000, LaborCents: 40000, MaterialCents: 10000})
	if !res.IsTaxable {
		t.Fatal("expected Cleaning taxable in TX")
	}
	if res.TaxableCents != 50000 {
		t.Fatalf("expected labor+material taxable, got %d", res.TaxableCents)
	}
	// 50000 * 0.0625 = 3125
	if res.TaxCents != 3125 {
		t.Fatalf("expected 3125, got %d", res.TaxCents)
	}
}

func TestSelectiveUnregisteredServiceExempt(t *testing.T) {
	res := Calculate(Input{State: "TX", ServiceType: "Plumbing", SubtotalCents: 50000, LaborCents: 40000, MaterialCents: 10000})
	if res.IsTaxable {
		t.Fatal("unregistered service type should not be taxable in a selective state")
	}
	if res.Regime != RegimeSelective {
		t.Fatalf("expected selective regime, got %s", res.Regime)
	}
}

func TestSouthDakotaIsSelective(t *testing.T) {
	res := Calculate(Input{State: "SD", ServiceType: "Plumbing", SubtotalCents: 120000, LaborCents: 90000, MaterialCents: 10000})
	if !res.IsTaxable {
		t.Fatal("expected Plumbing taxable in SD")
	}
	if res.Regime != RegimeSelective {
		t.Fatalf("expected selective regime, got %s", res.Regime)
	}
	if res.TaxableCents != 100000 {
		t.Fatalf("selective regime taxes labor+material, not the subtotal; got %d", res.TaxableCents)
	}
	// 100000 * 0.042 = 4200
	if res.TaxCents != 4200 {
		t.Fatalf("expected 4200, got %d", res.TaxCents)
	}

	res = Calculate(Input{State: "SD", ServiceType: "Painting", SubtotalCents: 120000, LaborCents: 90000, MaterialCents: 10000})
	if res.IsTaxable {
		t.Fatal("Painting is not registered in SD and should be exempt")
	}
}

func TestSelectiveOverrideRate(t *testing.T) {
	res := Calculate(Input{State: "TX", ServiceType: "HVAC", SubtotalCents: 100000, LaborCents: 80000, MaterialCents: 20000})
	if res.Rate != 0.0825 {
		t.Fatalf("expected override rate 0.0825, got %v", res.Rate)
	}
	// 100000 * 0.0825 = 8250
	if res.TaxCents != 8250 {
		t.Fatalf("expected 8250, got %d", res.TaxCents)
	}
}

func TestUnknownStateDefaultsExempt(t *testing.T) {
	res := Calculate(Input{State: "KY", ServiceType: "Plumbing", SubtotalCents: 10000, LaborCents: 10000})
	if res.IsTaxable {
		t.Fatal("states outside the table should not tax until configured")
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{10.4, 10},
		{10.5, 11},
		{10.6, 11},
		{0.49, 0},
		{0.5, 1},
	}
	for _, c := range cases {
		if got := roundHalfUp(c.in); got != c.want {
			t.Fatalf("roundHalfUp(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTaxRoundingOnOddAmounts(t *testing.T) {
	// 33333 * 0.0625 = 2083.3125 → 2083
	res := Calculate(Input{State: "TX", ServiceType: "Cleaning", SubtotalCents: 33333, LaborCents: 33333})
	if res.TaxCents != 2083 {
		t.Fatalf("expected 2083, got %d", res.TaxCents)
	}
	// 33340 * 0.0625 = 2083.75 → 2084
	res = Calculate(Input{State: "TX", ServiceType: "Cleaning", SubtotalCents: 33340, LaborCents: 33340})
	if res.TaxCents != 2084 {
		t.Fatalf("expected 2084, got %d", res.TaxCents)
	}
}
