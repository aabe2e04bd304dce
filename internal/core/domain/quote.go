package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// OutOfTownCity is the shipping rate used for cities without their own rate.
const OutOfTownCity = "Luar Kota"

// Discount rules.
const (
	// DiscountItemThreshold is the item count above which the discount applies.
	DiscountItemThreshold = 3

	// DiscountFactor is the multiplier applied to discounted totals.
	DiscountFactor = 0.9
)

// ApplyDiscount returns total*0.9 when itemCount exceeds the threshold.
func ApplyDiscount(total float64, itemCount int) float64 {
	if itemCount > DiscountItemThreshold {
		return total * DiscountFactor
	}
	return total
}

// CartItem is a requested product and quantity.
type CartItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ParseCartItem parses "name=quantity". A bare name means quantity 1.
func ParseCartItem(s string) (CartItem, error) {
	name, qty, hasQty := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return CartItem{}, fmt.Errorf("%w: empty item name in %q", ErrInvalidInput, s)
	}
	if !hasQty {
		return CartItem{Name: name, Quantity: 1}, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil || n <= 0 {
		return CartItem{}, fmt.Errorf("%w: quantity must be a positive integer in %q", ErrInvalidInput, s)
	}
	return CartItem{Name: name, Quantity: n}, nil
}

// QuoteLine is one priced cart line.
type QuoteLine struct {
	Product   string   `json:"product"`
	Quantity  int      `json:"quantity"`
	UnitPrice int64    `json:"unit_price"`
	Amount    int64    `json:"amount"`
	Variants  []string `json:"variants,omitempty"`
}

// Quote is a deterministic cart total.
type Quote struct {
	Lines       []QuoteLine `json:"lines"`
	ItemCount   int         `json:"item_count"`
	Subtotal    int64       `json:"subtotal"`
	Discounted  float64     `json:"discounted_subtotal"`
	City        string      `json:"city"`
	ShippingFee int64       `json:"shipping_fee"`
	Total       float64     `json:"total"`
}

// DiscountApplied reports whether the subtotal was reduced.
func (q Quote) DiscountApplied() bool {
	return q.Discounted < float64(q.Subtotal)
}

// FormatRupiah renders an amount with comma digit grouping, e.g. Rp100,000.
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-Rp" + b.String()
	}
	return "Rp" + b.String()
}
