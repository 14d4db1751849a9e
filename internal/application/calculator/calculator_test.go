package calculator

import (
	"testing"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
)

func TestParseUnitValue(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		present bool
	}{
		{"10.00", "10", true},
		{" 3 ", "3", true},
		{"", "0", false},
		{"abc", "0", false},
		{"12abc", "0", false},
		{"0", "0", false},
		{"-4", "0", false},
		{"1e3", "0", false},
		{"1e50000000", "0", false},
		{"1234567890123456", "0", false},
		{"0.5", "0.5", true},
	}
	for _, tc := range cases {
		got, ok := ParseUnitValue(tc.in)
		if ok != tc.present {
			t.Errorf("ParseUnitValue(%q) present=%v, want %v", tc.in, ok, tc.present)
			continue
		}
		if ok && got.String() != tc.want {
			t.Errorf("ParseUnitValue(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestItemAmountIgnoresExponentValues(t *testing.T) {
	item := entity.LineItem{
		SupplierPrice: entity.UnitValues{Box: "1e50000000", Case: "2"},
		Quantity:      entity.UnitValues{Box: "1", Case: "3"},
		Amount:        "1e50000000",
	}
	if got := ItemAmount(item); got != "6.00" {
		t.Fatalf("got %s, want 6.00", got)
	}
	if got := SumAmounts([]entity.LineItem{item}); !got.IsZero() {
		t.Fatalf("sum = %s, want 0", got)
	}
}

func TestLineAmountSingleUnit(t *testing.T) {
	price := entity.UnitValues{Box: "10.00"}
	qty := entity.UnitValues{Box: "3"}
	if got := FormatAmount(LineAmount(price, qty)); got != "30.00" {
		t.Fatalf("got %s, want 30.00", got)
	}
}

func TestLineAmountSkipsUnitsMissingEitherSide(t *testing.T) {
	price := entity.UnitValues{Box: "10", Case: "5", Bottle: "x", Shell: "2"}
	qty := entity.UnitValues{Box: "1", Case: "", Bottle: "4", Shell: "0"}
	if got := FormatAmount(LineAmount(price, qty)); got != "10.00" {
		t.Fatalf("got %s, want 10.00", got)
	}
}

func TestLineAmountIgnoresPack(t *testing.T) {
	price := entity.UnitValues{Pack: "100"}
	qty := entity.UnitValues{Pack: "2"}
	if got := FormatAmount(LineAmount(price, qty)); got != "0.00" {
		t.Fatalf("got %s, want 0.00", got)
	}
}

func TestLineAmountRoundsHalfUp(t *testing.T) {
	price := entity.UnitValues{Bottle: "0.125"}
	qty := entity.UnitValues{Bottle: "1"}
	if got := FormatAmount(LineAmount(price, qty)); got != "0.13" {
		t.Fatalf("got %s, want 0.13", got)
	}
}

func TestItemAmountWithoutPrices(t *testing.T) {
	item := entity.LineItem{Quantity: entity.UnitValues{Bottle: "10"}}
	if got := ItemAmount(item); got != "0.00" {
		t.Fatalf("got %s, want 0.00", got)
	}
}

func TestTotalsSumRoundedItemAmounts(t *testing.T) {
	// Each line rounds 0.005 up to 0.01, so the total is 0.02 even though
	// the raw products only add up to 0.01.
	item := entity.LineItem{
		SupplierPrice: entity.UnitValues{Box: "0.005"},
		Quantity:      entity.UnitValues{Box: "1"},
	}
	item.Amount = ItemAmount(item)
	if item.Amount != "0.01" {
		t.Fatalf("item amount %s, want 0.01", item.Amount)
	}

	totals := ComputeTotals([]entity.LineItem{item, item}, nil)
	if got := FormatAmount(totals.Total); got != "0.02" {
		t.Fatalf("total %s, want 0.02", got)
	}
}

func TestTotalsNonNumericAmountCountsAsZero(t *testing.T) {
	items := []entity.LineItem{{Amount: "12.50"}, {Amount: "n/a"}, {Amount: ""}}
	if got := FormatAmount(SumAmounts(items)); got != "12.50" {
		t.Fatalf("got %s, want 12.50", got)
	}
}

func TestRecalculateAppliesNetAmount(t *testing.T) {
	tx := entity.ReceivingTransaction{
		Items: []entity.LineItem{{
			SupplierPrice: entity.UnitValues{Case: "120"},
			Quantity:      entity.UnitValues{Case: "2"},
			Amount:        "999.99",
		}},
		ReturnItems: []entity.LineItem{{
			SupplierPrice: entity.UnitValues{Shell: "1.50"},
			Quantity:      entity.UnitValues{Shell: "10"},
		}},
	}
	Recalculate(&tx)

	if tx.Items[0].Amount != "240.00" {
		t.Fatalf("item amount %s, want 240.00", tx.Items[0].Amount)
	}
	if tx.TotalAmount != "240.00" || tx.ReturnTotalAmount != "15.00" || tx.NetAmount != "225.00" {
		t.Fatalf("totals %s / %s / %s", tx.TotalAmount, tx.ReturnTotalAmount, tx.NetAmount)
	}
}
