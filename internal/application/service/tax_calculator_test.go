package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(price, rate string, qty int) entity.CartLine {
	return entity.CartLine{
		ProductCode: "P1",
		ProductName: "Widget",
		Quantity:    qty,
		UnitPrice:   d(price),
		TaxRate:     d(rate),
	}
}

func TestComputeLineBackCalculatesInclusiveTax(t *testing.T) {
	tests := []struct {
		name     string
		line     entity.CartLine
		wantBase string
		wantTax  string
		wantCGST string
	}{
		{
			name:     "18 percent on 118 twice",
			line:     line("118", "18", 2),
			wantBase: "200",
			wantTax:  "36",
			wantCGST: "18",
		},
		{
			name:     "zero rate leaves everything in base",
			line:     line("50", "0", 1),
			wantBase: "50",
			wantTax:  "0",
			wantCGST: "0",
		},
		{
			name:     "negative quantity uses absolute value",
			line:     line("118", "18", -2),
			wantBase: "200",
			wantTax:  "36",
			wantCGST: "18",
		},
		{
			name: "item discount reduces the inclusive amount first",
			line: entity.CartLine{
				ProductCode:  "P2",
				Quantity:     1,
				UnitPrice:    d("236"),
				ItemDiscount: d("118"),
				TaxRate:      d("18"),
			},
			wantBase: "100",
			wantTax:  "18",
			wantCGST: "9",
		},
	}

	calc := NewTaxCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := calc.ComputeLine(tt.line)
			require.NoError(t, err)
			assert.True(t, b.Base.Equal(d(tt.wantBase)), "base = %s, want %s", b.Base, tt.wantBase)
			assert.True(t, b.Tax.Equal(d(tt.wantTax)), "tax = %s, want %s", b.Tax, tt.wantTax)
			assert.True(t, b.CGST.Equal(d(tt.wantCGST)), "cgst = %s, want %s", b.CGST, tt.wantCGST)
			assert.True(t, b.SGST.Equal(b.CGST), "cgst and sgst must split evenly")
		})
	}
}

func TestComputeLineRejectsBadInput(t *testing.T) {
	calc := NewTaxCalculator()

	_, err := calc.ComputeLine(line("100", "-5", 1))
	assert.Error(t, err, "negative tax rate must be rejected")

	_, err = calc.ComputeLine(entity.CartLine{
		ProductCode:  "P3",
		Quantity:     1,
		UnitPrice:    d("10"),
		ItemDiscount: d("20"),
		TaxRate:      d("18"),
	})
	assert.Error(t, err, "discount above the line amount must be rejected")
}

func TestComputeCartAggregatesTotals(t *testing.T) {
	calc := NewTaxCalculator()

	totals, breakdowns, err := calc.ComputeCart([]entity.CartLine{
		line("118", "18", 2),
		line("112", "12", 1),
	})
	require.NoError(t, err)
	require.Len(t, breakdowns, 2)

	assert.True(t, totals.Basic.Equal(d("300")), "basic = %s", totals.Basic)
	assert.True(t, totals.GST.Equal(d("48")), "gst = %s", totals.GST)
	assert.True(t, totals.Net.Equal(d("348")), "net = %s", totals.Net)
	assert.True(t, totals.CGST.Add(totals.SGST).Equal(totals.GST))
}

func TestComputeCartRejectsEmptyCart(t *testing.T) {
	_, _, err := NewTaxCalculator().ComputeCart(nil)
	assert.Error(t, err)
}
