package curve

import (
	"bytes"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	gnarksecp "github.com/consensys/gnark-crypto/ecc/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/ecc/pkg/types"
)

func mustBackend(t testing.TB, name string) *Backend {
	t.Helper()
	params, err := Lookup(name)
	require.NoError(t, err)
	return NewBackend(params)
}

func mustHexBytes(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func sampleDigest() []byte {
	h := sha256.Sum256([]byte("sample"))
	return h[:]
}

// RFC 6979 附录 A.2.5（P-256，SHA-256，"sample"），s 取低S形式
func TestSignRFC6979P256(t *testing.T) {
	b := mustBackend(t, types.CurvePrime256v1)
	priv := mustHexBytes(t, "c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f6721")

	sig, err := b.Sign(sampleDigest(), priv, false, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"efd48b2aacb6a8fd1140dd9cd45e81d69d2c877b56aaf991c34d0ea84eaf3716"+
			"0834e36ad29a83bf2bc9385e491d6099c8fdf9d1ed67aa7ea5f51f93782857a9",
		hex.EncodeToString(sig))

	recoverable, err := b.Sign(sampleDigest(), priv, true, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(31+1), recoverable[0])
	assert.Equal(t, sig, recoverable[1:])
}

// RFC 6979 附录 A.2.3（P-192，SHA-256，"sample"），s 取低S形式
func TestSignRFC6979P192(t *testing.T) {
	b := mustBackend(t, types.CurvePrime192v1)
	priv := mustHexBytes(t, "6fab034934e4c0fc9ae67f5b5659a9d7d1fefd187ee09fd4")

	sig, err := b.Sign(sampleDigest(), priv, false, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"4b0b8ce98a92866a2820e20aa6b75b56382e0f9bfd5ecb55"+
			"3324ff96d9156a9a345237bf17416bfdc664eb92969a0cac",
		hex.EncodeToString(sig))
}

// 阶比域多一个字节的曲线：r、s 各 21 字节，摘要按阶位长截断
func TestSignSecp160k1Vector(t *testing.T) {
	b := mustBackend(t, types.CurveSecp160k1)
	priv := mustHexBytes(t, "000123456789abcdef0123456789abcdef01234567")

	pub, err := b.PrivateToPublic(priv)
	require.NoError(t, err)
	assert.Equal(t, "49e43fbf6decea808a8f51b9587cd2f8d34715e2", hex.EncodeToString(pub.X))
	assert.Equal(t, "036d8d8165aa492bb20fb6e21474e5715d53ef2c", hex.EncodeToString(pub.Y))

	sig, err := b.Sign(sampleDigest(), priv, true, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"1f"+
			"00fc1e7823a4637d5c515763ab223c3f4503862665"+
			"0021ae3a313aa614db84a2cc15d27d40d6efbe5607",
		hex.EncodeToString(sig))

	withEntropy, err := b.Sign(sampleDigest(), priv, false, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t,
		"0000433e0ead4819aa9b112d5d4a76b878113dec61"+
			"0000af32ed43a907ea2ae54da6f66ce4dd3fba8d41",
		hex.EncodeToString(withEntropy))
}

func TestSignRecoverVerifyAllCurves(t *testing.T) {
	digest := sampleDigest()

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			b := mustBackend(t, name)

			for i := 0; i < 4; i++ {
				priv, err := b.NewPrivateKey()
				require.NoError(t, err)
				require.Len(t, priv, b.ScalarLength())

				pub, err := b.PrivateToPublic(priv)
				require.NoError(t, err)
				assert.True(t, b.IsOnCurve(pub))

				sig, err := b.Sign(digest, priv, true, nil)
				require.NoError(t, err)
				require.Len(t, sig, 1+2*b.ScalarLength())

				recovered, err := b.Recover(sig, digest)
				require.NoError(t, err)
				assert.Equal(t, pub, recovered, "恢复的公钥应与原公钥一致")

				ok, err := b.Verify(sig[1:], digest, pub)
				require.NoError(t, err)
				assert.True(t, ok)

				// 篡改摘要后验证失败
				tampered := append([]byte{}, digest...)
				tampered[0] ^= 0x01
				ok, err = b.Verify(sig[1:], tampered, pub)
				require.NoError(t, err)
				assert.False(t, ok)
			}
		})
	}
}

func TestVerifyLengthAndRange(t *testing.T) {
	b := mustBackend(t, types.CurveSecp224k1)
	priv, err := b.NewPrivateKey()
	require.NoError(t, err)
	pub, err := b.PrivateToPublic(priv)
	require.NoError(t, err)

	_, err = b.Verify(make([]byte, 56), sampleDigest(), pub)
	assert.True(t, errors.Is(err, types.ErrInvalidLength), "secp224k1 签名应为 58 字节")

	ok, err := b.Verify(make([]byte, 58), sampleDigest(), pub)
	require.NoError(t, err)
	assert.False(t, ok, "r = s = 0 不是合法签名")

	_, err = b.Recover(make([]byte, 58), sampleDigest())
	assert.True(t, errors.Is(err, types.ErrNotRecoverable))
}

func TestPrivateKeyValidation(t *testing.T) {
	b := mustBackend(t, types.CurveSecp128r1)

	_, err := b.PrivateToPublic(make([]byte, 15))
	assert.True(t, errors.Is(err, types.ErrInvalidLength))

	_, err = b.PrivateToPublic(make([]byte, 16))
	assert.True(t, errors.Is(err, types.ErrInvalidKey))

	_, err = b.PrivateToPublic(key16(b.params.N))
	assert.True(t, errors.Is(err, types.ErrInvalidKey))
}

func key16(n *big.Int) []byte {
	out := make([]byte, 16)
	return n.FillBytes(out)
}

func TestDecompressPoint(t *testing.T) {
	for _, name := range Names() {
		b := mustBackend(t, name)
		priv, err := b.NewPrivateKey()
		require.NoError(t, err)
		pub, err := b.PrivateToPublic(priv)
		require.NoError(t, err)

		got, err := b.DecompressPoint(CompressPublicKey(pub))
		require.NoError(t, err, name)
		assert.Equal(t, pub, got, name)
	}

	b := mustBackend(t, types.CurvePrime256v1)
	_, err := b.DecompressPoint(append([]byte{0x05}, make([]byte, 32)...))
	assert.True(t, errors.Is(err, types.ErrInvalidPrefix))

	_, err = b.DecompressPoint([]byte{0x02})
	assert.True(t, errors.Is(err, types.ErrInvalidLength))
}

func TestECDHSymmetry(t *testing.T) {
	for _, name := range Names() {
		b := mustBackend(t, name)
		a, err := b.NewPrivateKey()
		require.NoError(t, err)
		c, err := b.NewPrivateKey()
		require.NoError(t, err)
		pubA, err := b.PrivateToPublic(a)
		require.NoError(t, err)
		pubC, err := b.PrivateToPublic(c)
		require.NoError(t, err)

		s1, err := b.ECDH(a, pubC)
		require.NoError(t, err)
		s2, err := b.ECDH(c, pubA)
		require.NoError(t, err)
		assert.Equal(t, s1, s2, name)
		assert.Len(t, s1, b.PublicKeyLength(), name)
	}
}

func TestECDHRejectsOffCurvePoint(t *testing.T) {
	b := mustBackend(t, types.CurveSecp192k1)
	priv, err := b.NewPrivateKey()
	require.NoError(t, err)
	pub, err := b.PrivateToPublic(priv)
	require.NoError(t, err)

	pub.Y[len(pub.Y)-1] ^= 0x01
	_, err = b.ECDH(priv, pub)
	assert.True(t, errors.Is(err, types.ErrInvalidKey))
	assert.False(t, b.IsOnCurve(pub))
}

// 与标准库 crypto/ecdh 的共享密钥比对
func TestECDHMatchesStdlib(t *testing.T) {
	testCases := []struct {
		name  string
		curve ecdh.Curve
	}{
		{types.CurvePrime256v1, ecdh.P256()},
		{types.CurveSecp384r1, ecdh.P384()},
		{types.CurveSecp521r1, ecdh.P521()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBackend(t, tc.name)

			priv, err := b.NewPrivateKey()
			require.NoError(t, err)
			pub, err := b.PrivateToPublic(priv)
			require.NoError(t, err)

			stdPriv, err := tc.curve.NewPrivateKey(priv)
			require.NoError(t, err)
			assert.Equal(t, stdPriv.PublicKey().Bytes(), UncompressPublicKey(pub))

			peer, err := tc.curve.GenerateKey(rand.Reader)
			require.NoError(t, err)
			raw := peer.PublicKey().Bytes()
			size := b.PublicKeyLength()
			peerPub := types.PublicKey{X: raw[1 : 1+size], Y: raw[1+size:]}

			ours, err := b.ECDH(priv, peerPub)
			require.NoError(t, err)
			theirs, err := peer.ECDH(stdPriv.PublicKey())
			require.NoError(t, err)
			assert.Equal(t, theirs, ours)
		})
	}
}

// 通用后端的签名可被标准库 crypto/ecdsa 验证
func TestSignatureVerifiesWithStdlib(t *testing.T) {
	testCases := []struct {
		name  string
		curve elliptic.Curve
	}{
		{types.CurveSecp224r1, elliptic.P224()},
		{types.CurvePrime256v1, elliptic.P256()},
		{types.CurveSecp384r1, elliptic.P384()},
		{types.CurveSecp521r1, elliptic.P521()},
	}
	digest := sampleDigest()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBackend(t, tc.name)
			priv, err := b.NewPrivateKey()
			require.NoError(t, err)
			pub, err := b.PrivateToPublic(priv)
			require.NoError(t, err)

			sig, err := b.Sign(digest, priv, false, nil)
			require.NoError(t, err)

			sl := b.ScalarLength()
			r := new(big.Int).SetBytes(sig[:sl])
			s := new(big.Int).SetBytes(sig[sl:])
			stdPub := &ecdsa.PublicKey{
				Curve: tc.curve,
				X:     new(big.Int).SetBytes(pub.X),
				Y:     new(big.Int).SetBytes(pub.Y),
			}
			assert.True(t, ecdsa.Verify(stdPub, digest, r, s))
		})
	}
}

// 通用后端加载 secp256k1 参数时与 gnark-crypto 的标量乘一致
func TestScalarMultMatchesGnark(t *testing.T) {
	b := mustBackend(t, types.CurveSecp256k1)

	for i := 0; i < 4; i++ {
		priv, err := b.NewPrivateKey()
		require.NoError(t, err)
		pub, err := b.PrivateToPublic(priv)
		require.NoError(t, err)

		var expected gnarksecp.G1Affine
		expected.ScalarMultiplicationBase(new(big.Int).SetBytes(priv))
		ex := expected.X.Bytes()
		ey := expected.Y.Bytes()
		assert.True(t, bytes.Equal(ex[:], pub.X))
		assert.True(t, bytes.Equal(ey[:], pub.Y))
	}
}

func TestDeriveChild(t *testing.T) {
	seed := mustHexBytes(t, "000102030405060708090a0b0c0d0e0f")

	testCases := []struct {
		name  string
		index uint32
		want  string
	}{
		{types.CurveSecp256k1, 0, "4e2cdcf2f14e802810e878cf9e6411fc4e712edf19a06bcfcc5d5572e489a3b7"},
		{types.CurvePrime256v1, 0, "aa99fd5bdbefd92f802f278e0c8998ac0408b8afab8a77e695dcb9dc3addcc81"},
		{types.CurveSecp160k1, 1, "0020ef3d7a06346efb31cc15391f8c794ce8ab5971"},
		{types.CurveSecp112r1, 7, "335b647366fa3295796d66750af6"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBackend(t, tc.name)
			child, err := b.DeriveChild(seed, tc.index)
			require.NoError(t, err)
			assert.Equal(t, tc.want, hex.EncodeToString(child))
			assert.Len(t, child, b.ScalarLength())
		})
	}

	b := mustBackend(t, types.CurveSecp256k1)
	_, err := b.DeriveChild(seed, HardenedKeyStart)
	assert.True(t, errors.Is(err, types.ErrInvalidChildIndex))
}

func BenchmarkSignP256(b *testing.B) {
	backend := mustBackend(b, types.CurvePrime256v1)
	priv, _ := backend.NewPrivateKey()
	digest := sampleDigest()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = backend.Sign(digest, priv, true, nil)
	}
}
