package curve

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/ecc/pkg/types"
)

func TestParamsTable(t *testing.T) {
	testCases := []struct {
		name     string
		field    int
		scalar   int
		cofactor int
	}{
		{types.CurveSecp112r1, 14, 14, 1},
		{types.CurveSecp112r2, 14, 14, 4},
		{types.CurveSecp128r1, 16, 16, 1},
		{types.CurveSecp128r2, 16, 16, 4},
		{types.CurveSecp160k1, 20, 21, 1},
		{types.CurveSecp160r1, 20, 21, 1},
		{types.CurveSecp160r2, 20, 21, 1},
		{types.CurveSecp192k1, 24, 24, 1},
		{types.CurvePrime192v1, 24, 24, 1},
		{types.CurveSecp224k1, 28, 29, 1},
		{types.CurveSecp224r1, 28, 28, 1},
		{types.CurveSecp256k1, 32, 32, 1},
		{types.CurvePrime256v1, 32, 32, 1},
		{types.CurveSecp384r1, 48, 48, 1},
		{types.CurveSecp521r1, 66, 66, 1},
	}
	require.Len(t, Names(), len(testCases))

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Lookup(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.name, c.Name)
			assert.Equal(t, tc.field, c.FieldLength)
			assert.Equal(t, tc.scalar, c.ScalarLength)
			assert.Equal(t, tc.cofactor, c.Cofactor)

			// 基点在曲线上且阶为 n
			assert.True(t, c.IsOnCurve(c.Gx, c.Gy), "基点应在曲线上")
			x, y := c.ScalarBaseMult(c.N)
			assert.Equal(t, 0, x.Sign())
			assert.Equal(t, 0, y.Sign())

			// (n-1)·G = -G
			x, y = c.ScalarBaseMult(new(big.Int).Sub(c.N, big.NewInt(1)))
			assert.Equal(t, 0, x.Cmp(c.Gx))
			assert.Equal(t, 0, new(big.Int).Add(y, c.Gy).Cmp(c.P))
		})
	}
}

func TestAliases(t *testing.T) {
	testCases := map[string]string{
		"P-192": types.CurvePrime192v1,
		"P-224": types.CurveSecp224r1,
		"P-256": types.CurvePrime256v1,
		"P-384": types.CurveSecp384r1,
		"P-521": types.CurveSecp521r1,
	}
	for alias, canonical := range testCases {
		c, err := Lookup(alias)
		require.NoError(t, err)
		assert.Equal(t, canonical, c.Name)
	}

	_, err := Lookup("secp999r1")
	assert.True(t, errors.Is(err, types.ErrUnknownCurve))
	_, err = CanonicalName("")
	assert.True(t, errors.Is(err, types.ErrUnknownCurve))
}

func TestAddDoubleConsistency(t *testing.T) {
	for _, name := range Names() {
		c, err := Lookup(name)
		require.NoError(t, err)

		// G + G == 2·G，2G + G == 3·G
		x2, y2 := c.Add(c.Gx, c.Gy, c.Gx, c.Gy)
		ex, ey := c.ScalarBaseMult(big.NewInt(2))
		assert.Equal(t, 0, x2.Cmp(ex), name)
		assert.Equal(t, 0, y2.Cmp(ey), name)

		x3, y3 := c.Add(x2, y2, c.Gx, c.Gy)
		ex, ey = c.ScalarBaseMult(big.NewInt(3))
		assert.Equal(t, 0, x3.Cmp(ex), name)
		assert.Equal(t, 0, y3.Cmp(ey), name)

		// G + (-G) 为无穷远点
		negY := new(big.Int).Sub(c.P, c.Gy)
		ix, iy := c.Add(c.Gx, c.Gy, c.Gx, negY)
		assert.Equal(t, 0, ix.Sign(), name)
		assert.Equal(t, 0, iy.Sign(), name)
	}
}

func TestDecompressY(t *testing.T) {
	for _, name := range Names() {
		c, err := Lookup(name)
		require.NoError(t, err)

		y, ok := c.DecompressY(c.Gx, c.Gy.Bit(0) == 1)
		require.True(t, ok, name)
		assert.Equal(t, 0, y.Cmp(c.Gy), name)

		_, ok = c.DecompressY(c.P, false)
		assert.False(t, ok, name)
	}
}
