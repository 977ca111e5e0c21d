package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	testCases := []struct {
		desc     string
		amount   string
		exponent int32
		want     int64
		isErr    bool
	}{
		{desc: "cents", amount: "10.50", exponent: 2, want: 1050},
		{desc: "negative", amount: "-150", exponent: 2, want: -15000},
		{desc: "whole_vnd", amount: "50000", exponent: 0, want: 50000},
		{desc: "trailing_zero", amount: "1.20", exponent: 2, want: 120},
		{desc: "one_decimal", amount: "1.5", exponent: 2, want: 150},
		{desc: "trailing_zeros", amount: "1.230", exponent: 2, want: 123},
		{desc: "zero", amount: "0", exponent: 2, want: 0},
		{desc: "too_precise", amount: "1.234", exponent: 2, isErr: true},
		{desc: "fraction_without_minor_unit", amount: "10.5", exponent: 0, isErr: true},
		{desc: "not_a_number", amount: "ten", exponent: 2, isErr: true},
		{desc: "empty", amount: "", exponent: 2, isErr: true},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, err := ToMinorUnits(tC.amount, tC.exponent)
			if tC.isErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tC.want, got)
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	assert.Equal(t, "10.50", FromMinorUnits(1050, 2))
	assert.Equal(t, "-1.05", FromMinorUnits(-105, 2))
	assert.Equal(t, "0.00", FromMinorUnits(0, 2))
	assert.Equal(t, "50000", FromMinorUnits(50000, 0))
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, 99, 100, -12345, 1<<40 + 7} {
		s := FromMinorUnits(v, 2)
		got, err := ToMinorUnits(s, 2)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
