package costing

import (
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumeric reads a numeric column scanned as text. Postgres numeric can
// hold NaN and ±Infinity, which have no decimal representation; those and any
// other unreadable value yield (0, false).
func ParseNumeric(raw sql.NullString) (decimal.Decimal, bool) {
	if !raw.Valid {
		return decimal.Zero, false
	}
	value := strings.TrimSpace(raw.String)
	switch strings.ToLower(value) {
	case "", "nan", "infinity", "+infinity", "-infinity", "inf", "+inf", "-inf":
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseNumericOrZero is ParseNumeric for columns where NULL means zero.
func ParseNumericOrZero(raw sql.NullString) (decimal.Decimal, bool) {
	if !raw.Valid {
		return decimal.Zero, true
	}
	return ParseNumeric(raw)
}
