package service

import (
	"testing"

	"github.com/yanhua-ledger/internal/models"
)

func TestNormalizeSpecExtractsFirstNumber(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"16发/箱", "16"},
		{"每箱 24 支", "24"},
		{"1.5寸 36发", "1.5"},
		{"大礼包", ""},
		{"", ""},
		{"  100  ", "100"},
	}
	for _, c := range cases {
		if got := NormalizeSpec(c.text); got != c.want {
			t.Fatalf("NormalizeSpec(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestPackSizeDefaultsToOne(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"16发/箱", 16},
		{"无规格", 1},
		{"", 1},
		{"0发", 1},
		{"0.5", 1},
	}
	for _, c := range cases {
		if got := PackSize(c.text); got != c.want {
			t.Fatalf("PackSize(%q) = %d, want %d", c.text, got, c.want)
		}
	}
	if got := PackSizeOf(nil); got != 1 {
		t.Fatalf("PackSizeOf(nil) = %d, want 1", got)
	}
}

func TestApplyUnitDeltaRedistributesBoxAndLoose(t *testing.T) {
	inv := &models.Inventory{BoxCount: 2, LooseUnits: 3}

	ApplyUnitDelta(inv, 10, 9)
	if inv.BoxCount != 3 || inv.LooseUnits != 2 {
		t.Fatalf("expected 3 boxes + 2 loose, got %d + %d", inv.BoxCount, inv.LooseUnits)
	}

	ApplyUnitDelta(inv, 10, -12)
	if inv.BoxCount != 2 || inv.LooseUnits != 0 {
		t.Fatalf("expected 2 boxes + 0 loose, got %d + %d", inv.BoxCount, inv.LooseUnits)
	}
}

func TestApplyUnitDeltaClampsAtZero(t *testing.T) {
	inv := &models.Inventory{BoxCount: 5, LooseUnits: 0}

	ApplyUnitDelta(inv, 10, -1000)
	if inv.BoxCount != 0 || inv.LooseUnits != 0 {
		t.Fatalf("expected clamp to zero, got %d boxes + %d loose", inv.BoxCount, inv.LooseUnits)
	}
}

func TestApplyUnitDeltaPackSizeOne(t *testing.T) {
	inv := &models.Inventory{BoxCount: 7, LooseUnits: 0}

	ApplyUnitDelta(inv, 1, 5)
	if inv.BoxCount != 12 || inv.LooseUnits != 0 {
		t.Fatalf("expected 12 units with no loose, got %d + %d", inv.BoxCount, inv.LooseUnits)
	}
}

func TestApplyUnitDeltaKeepsLooseInvariant(t *testing.T) {
	for _, packSize := range []int{2, 3, 7, 16} {
		for _, delta := range []int{-50, -1, 0, 1, 5, 33} {
			inv := &models.Inventory{BoxCount: 3, LooseUnits: 1}
			before := inv.TotalUnits(packSize)
			ApplyUnitDelta(inv, packSize, delta)

			wantTotal := before + delta
			if wantTotal < 0 {
				wantTotal = 0
			}
			if got := inv.TotalUnits(packSize); got != wantTotal {
				t.Fatalf("pack=%d delta=%d: total = %d, want %d", packSize, delta, got, wantTotal)
			}
			if inv.LooseUnits < 0 || inv.LooseUnits >= packSize {
				t.Fatalf("pack=%d delta=%d: loose %d out of range", packSize, delta, inv.LooseUnits)
			}
		}
	}
}
