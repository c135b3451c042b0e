package validators

import (
	"math/big"

	"github.com/go-playground/validator/v10"
)

// BigIntTag is the tag name BigIntValidation is registered under.
const BigIntTag = "bigint"

// GtBigFieldTag is the tag name GtBigFieldValidation is registered under.
const GtBigFieldTag = "gtbigfield"

// GteBigFieldTag is the tag name GteBigFieldValidation is registered under.
const GteBigFieldTag = "gtebigfield"

// BigIntValidation validates that a string field holds a non-negative decimal integer of arbitrary size.
func BigIntValidation(fl validator.FieldLevel) bool {
	_, ok := parseNonNegative(fl.Field().String())
	return ok
}

// GtBigFieldValidation validates that a decimal string field is strictly greater than the
// decimal string field named by the tag parameter, e.g. `validate:"gtbigfield=Min"`.
func GtBigFieldValidation(fl validator.FieldLevel) bool {
	cmp, ok := compareToField(fl)
	return ok && cmp > 0
}

// GteBigFieldValidation is GtBigFieldValidation admitting equal values, for closed ranges.
func GteBigFieldValidation(fl validator.FieldLevel) bool {
	cmp, ok := compareToField(fl)
	return ok && cmp >= 0
}

func compareToField(fl validator.FieldLevel) (int, bool) {
	other := fl.Parent().FieldByName(fl.Param())
	if !other.IsValid() {
		return 0, false
	}

	value, ok := parseNonNegative(fl.Field().String())
	if !ok {
		return 0, false
	}
	bound, ok := parseNonNegative(other.String())
	if !ok {
		return 0, false
	}
	return value.Cmp(bound), true
}

// Register adds the big integer validations to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(BigIntTag, BigIntValidation); err != nil {
		return err
	}
	if err := v.RegisterValidation(GtBigFieldTag, GtBigFieldValidation); err != nil {
		return err
	}
	return v.RegisterValidation(GteBigFieldTag, GteBigFieldValidation)
}

func parseNonNegative(s string) (*big.Int, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}
