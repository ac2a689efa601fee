package pricing

import "testing"

func TestQuote_AppliesInOrder(t *testing.T) {
	// Percentage after flat fee includes the fee: (1000+500)*1.10 = 1650.
	got := Quote(1000,
		FlatFee{Label: "materials", Cents: 500},
		PercentSurcharge{Label: "weekend", Percent: 10},
	)
	if got != 1650 {
		t.Fatalf("expected 1650, got %d", got)
	}

	// Same adjustments, opposite order: 1000*1.10 + 500 = 1600.
	got = Quote(1000,
		PercentSurcharge{Label: "weekend", Percent: 10},
		FlatFee{Label: "materials", Cents: 500},
	)
	if got != 1600 {
		t.Fatalf("expected 1600, got %d", got)
	}
}

func TestQuote_NeverNegative(t *testing.T) {
	got := Quote(100, FlatFee{Label: "refund", Cents: -500})
	if got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
}

func TestQuote_NoAdjustments(t *testing.T) {
	if got := Quote(2500); got != 2500 {
		t.Fatalf("expected base price unchanged, got %d", got)
	}
}

func TestStandard(t *testing.T) {
	if adjs := Standard(false, false); len(adjs) != 0 {
		t.Fatalf("expected no adjustments, got %d", len(adjs))
	}

	// Emergency home visit: 50% surcharge first, then the flat visit fee.
	got := Quote(10000, Standard(true, true)...)
	if got != 16500 {
		t.Fatalf("expected 16500, got %d", got)
	}
}

func TestPercentDiscount(t *testing.T) {
	got := Quote(2000, PercentDiscount{Label: "loyalty", Percent: 25})
	if got != 1500 {
		t.Fatalf("expected 1500, got %d", got)
	}
}
