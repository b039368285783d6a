package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrFieldCount is returned for board sizes outside the playable range.
var ErrFieldCount = errors.New("field count must be between 5 and 8")

var prices = map[int]decimal.Decimal{
	5: decimal.NewFromInt(20),
	6: decimal.NewFromInt(40),
	7: decimal.NewFromInt(80),
	8: decimal.NewFromInt(160),
}

// Price returns the fixed price for a board with fieldCount picked numbers.
func Price(fieldCount int) (decimal.Decimal, error) {
	p, ok := prices[fieldCount]
	if !ok {
		return decimal.Zero, ErrFieldCount
	}
	return p, nil
}
