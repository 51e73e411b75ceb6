package hash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/ecc/pkg/types"
)

func TestKnownVectors(t *testing.T) {
	hashService := NewHashService()
	abc := []byte("abc")

	testCases := []struct {
		name string
		fn   func([]byte) []byte
		want string
	}{
		{"SHA1", hashService.SHA1, "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"SHA256", hashService.SHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"SHA512", hashService.SHA512, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{"SHA3_256", hashService.SHA3_256, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{"RIPEMD160", hashService.RIPEMD160, "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
		{"Hash160", hashService.Hash160, "bb1be98c142444d7a56aa3981c3942a978e4dc33"},
		{"DoubleSHA256", hashService.DoubleSHA256, "4f8b42c22dd3729b519ba6f68d2da7cc5b2d606d05daed5ad5128cc03e6c6358"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hex.EncodeToString(tc.fn(abc)))
		})
	}
}

func TestKeccak256(t *testing.T) {
	hashService := NewHashService()

	// 以太坊空数据哈希
	got := hashService.Keccak256(nil)
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(got))
	assert.NotEqual(t, hashService.SHA3_256(nil), got, "Keccak256 与 SHA3-256 填充规则不同")
}

// RFC 4231 测试用例 2
func TestHMAC(t *testing.T) {
	hashService := NewHashService()
	key := []byte("Jefe")
	data := []byte("what do ya want for nothing?")

	assert.Equal(t,
		"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		hex.EncodeToString(hashService.HMACSHA256(key, data)))
	assert.Equal(t,
		"164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea2505549758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737",
		hex.EncodeToString(hashService.HMACSHA512(key, data)))
}

func TestDigestByName(t *testing.T) {
	hashService := NewHashService()
	data := []byte("你好，世界")

	testCases := []struct {
		name string
		size int
	}{
		{types.HashSHA1, 20},
		{types.HashSHA256, 32},
		{types.HashSHA512, 64},
		{types.HashKeccak256, 32},
		{types.HashSHA3_256, 32},
		{types.HashNone, len(data)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := hashService.Digest(tc.name, data)
			require.NoError(t, err)
			assert.Len(t, out, tc.size)
		})
	}

	t.Run("none 返回副本", func(t *testing.T) {
		out, err := hashService.Digest(types.HashNone, data)
		require.NoError(t, err)
		out[0] ^= 0xff
		assert.NotEqual(t, out[0], data[0])
	})

	t.Run("未知算法", func(t *testing.T) {
		_, err := hashService.Digest("md5", data)
		assert.True(t, errors.Is(err, types.ErrUnsupportedHash))
	})
}

func TestApplyDigestCallback(t *testing.T) {
	hashService := NewHashService()
	called := false
	d := types.CustomDigest(func(b []byte) []byte {
		called = true
		return append([]byte{0x01}, b...)
	})

	out, err := hashService.ApplyDigest(d, []byte{0x02})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, []byte{0x01, 0x02}, out)
}

func TestMAC(t *testing.T) {
	hashService := NewHashService()
	key := []byte("k")
	data := []byte("envelope")

	testCases := []struct {
		mac  types.MAC
		size int
	}{
		{types.NamedMAC(types.MACHMACSHA256), 32},
		{types.NamedMAC(types.MACHMACSHA512), 64},
		{types.NamedMAC(types.MACNone), 0},
		{types.CustomMAC(4, func(k, d []byte) []byte { return []byte{1, 2, 3, 4} }), 4},
	}

	for _, tc := range testCases {
		t.Run(tc.mac.Name, func(t *testing.T) {
			size, err := MACSize(tc.mac)
			require.NoError(t, err)
			assert.Equal(t, tc.size, size)

			tag, err := hashService.ComputeMAC(tc.mac, key, data)
			require.NoError(t, err)
			assert.Len(t, tag, tc.size)
		})
	}

	_, err := MACSize(types.NamedMAC("poly1305"))
	assert.True(t, errors.Is(err, types.ErrUnsupportedMAC))
	_, err = hashService.ComputeMAC(types.NamedMAC("poly1305"), key, data)
	assert.True(t, errors.Is(err, types.ErrUnsupportedMAC))
}

func TestConstantTimeCompare(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 3, 4}
	c := []byte{1, 2, 3, 5}
	d := []byte{1, 2, 3}

	// 相同长度、相同内容
	if !ConstantTimeCompare(a, b) {
		t.Errorf("ConstantTimeCompare 应该返回 true，但返回了 false")
	}

	// 相同长度、不同内容
	if ConstantTimeCompare(a, c) {
		t.Errorf("ConstantTimeCompare 应该返回 false，但返回了 true")
	}

	// 不同长度
	if ConstantTimeCompare(a, d) {
		t.Errorf("ConstantTimeCompare 应该返回 false，但返回了 true")
	}
}

func TestIdempotent(t *testing.T) {
	hashService := NewHashService()
	data := []byte("Hello World")
	if !bytes.Equal(hashService.SHA256(data), hashService.SHA256(data)) {
		t.Errorf("SHA256 不具有幂等性")
	}
}

// 基准测试

func BenchmarkSHA256(b *testing.B) {
	hashService := NewHashService()
	data := []byte("benchmark data for SHA256 testing with sufficient length to be meaningful")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hashService.SHA256(data)
	}
}

func BenchmarkHMACSHA512(b *testing.B) {
	hashService := NewHashService()
	key := []byte("Bitcoin seed")
	data := []byte("benchmark data for HMAC-SHA512 testing")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hashService.HMACSHA512(key, data)
	}
}
