package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strings"
)

// Amount is a signed 128-bit integer stored in two's complement as a high
// signed word and a low unsigned word.
type Amount struct {
	hi int64
	lo uint64
}

var (
	two128    = new(big.Int).Lsh(big.NewInt(1), 128)
	mask64    = new(big.Int).SetUint64(math.MaxUint64)
	maxAmount = Amount{hi: math.MaxInt64, lo: math.MaxUint64}
	minAmount = Amount{hi: math.MinInt64}
	maxBig    = maxAmount.Big()
	minBig    = minAmount.Big()
)

// NewAmount widens an int64 into an Amount.
func NewAmount(v int64) Amount {
	var hi int64
	if v < 0 {
		hi = -1
	}
	return Amount{hi: hi, lo: uint64(v)}
}

// MaxAmount returns the largest representable Amount (2^127 - 1).
func MaxAmount() Amount { return maxAmount }

// MinAmount returns the smallest representable Amount (-2^127).
func MinAmount() Amount { return minAmount }

// ParseAmount parses a base-10 integer. Leading and trailing spaces are
// ignored; fractions, exponents and values outside the 128-bit range are
// rejected with ErrMalformedAmount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty value", ErrMalformedAmount)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q is not an integer", ErrMalformedAmount, s)
	}
	return AmountFromBig(v)
}

// AmountFromBig converts v, failing when it does not fit in 128 bits.
func AmountFromBig(v *big.Int) (Amount, error) {
	if v == nil {
		return Amount{}, nil
	}
	if v.Cmp(maxBig) > 0 || v.Cmp(minBig) < 0 {
		return Amount{}, fmt.Errorf("%w: %s is out of range", ErrMalformedAmount, v.String())
	}
	u := new(big.Int).Mod(v, two128)
	lo := new(big.Int).And(u, mask64).Uint64()
	hi := new(big.Int).Rsh(u, 64).Uint64()
	return Amount{hi: int64(hi), lo: lo}, nil
}

// Big returns the value as a freshly allocated big.Int.
func (a Amount) Big() *big.Int {
	v := big.NewInt(a.hi)
	v.Lsh(v, 64)
	return v.Add(v, new(big.Int).SetUint64(a.lo))
}

// Sign returns -1, 0 or +1.
func (a Amount) Sign() int {
	switch {
	case a.hi < 0:
		return -1
	case a.hi == 0 && a.lo == 0:
		return 0
	default:
		return 1
	}
}

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool { return a.Sign() > 0 }

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.hi < b.hi:
		return -1
	case a.hi > b.hi:
		return 1
	case a.lo < b.lo:
		return -1
	case a.lo > b.lo:
		return 1
	default:
		return 0
	}
}

// Add returns a + b, or ErrArithmeticOverflow when the sum leaves the
// signed 128-bit range.
func (a Amount) Add(b Amount) (Amount, error) {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	hi := a.hi + b.hi + int64(carry)
	if (a.hi < 0) == (b.hi < 0) && (hi < 0) != (a.hi < 0) {
		return Amount{}, ErrArithmeticOverflow
	}
	return Amount{hi: hi, lo: lo}, nil
}

func (a Amount) String() string {
	if a.hi == 0 {
		return fmt.Sprintf("%d", a.lo)
	}
	return a.Big().String()
}

// MarshalJSON encodes the amount as a decimal string; JSON numbers lose
// precision past 2^53 in most clients.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a decimal string or a bare JSON integer.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedAmount, err)
		}
		raw = s
	}
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
