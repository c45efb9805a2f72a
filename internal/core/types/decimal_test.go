package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityString(t *testing.T) {
	assert.Equal(t, "2.5000", NewQuantityFromFloat64(2.5).String())
	assert.Equal(t, "0.0000", Quantity(0).String())
	assert.Equal(t, "-1.2500", NewQuantityFromFloat64(-1.25).String())
	assert.Equal(t, "0.0001", Quantity(1).String())
}

func TestQuantityJSONRoundTrip(t *testing.T) {
	q := NewQuantityFromFloat64(12.75)

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, "12.7500", string(data))

	var back Quantity
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, q, back)
}

func TestQuantityUnmarshalForms(t *testing.T) {
	var q Quantity

	require.NoError(t, json.Unmarshal([]byte("3"), &q))
	assert.Equal(t, Quantity(30_000), q)

	require.NoError(t, json.Unmarshal([]byte(`"0.5"`), &q))
	assert.Equal(t, Quantity(5_000), q)

	require.NoError(t, json.Unmarshal([]byte("null"), &q))
	assert.True(t, q.IsZero())

	// Extra fractional digits truncate at scale 4.
	require.NoError(t, json.Unmarshal([]byte("1.00009"), &q))
	assert.Equal(t, Quantity(10_000), q)
}

func TestQuantityDecimalExactness(t *testing.T) {
	// 0.1 is not representable in binary floating point; the fixed-point
	// path must not inherit that error.
	q := NewQuantityFromFloat64(0.1)
	price := MustMoney("19.99")

	got := q.Decimal().Mul(price)
	assert.True(t, MustMoney("1.999").Equal(got), "got %s", got)
}

func TestQuantityNeg(t *testing.T) {
	q := NewQuantityFromFloat64(4)
	assert.Equal(t, NewQuantityFromFloat64(-4), q.Neg())
	assert.True(t, q.Neg().IsNegative())
}
