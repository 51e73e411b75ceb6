package encryption

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/ecc/pkg/types"
)

const (
	testKey32 = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	testKey16 = "000102030405060708090a0b0c0d0e0f"
	testIV    = "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// 与 openssl enc 输出对照
func TestDecryptOpenSSLVectors(t *testing.T) {
	svc := NewCipherService()
	plaintext := []byte("hello ecies world")

	testCases := []struct {
		algo       string
		key        string
		iv         string
		ciphertext string
	}{
		{types.CipherAES256CBC, testKey32, testIV, "267a7f8573b33e6cfc12ec2e9e42655716fcdf7855905de963e0bdfbc9359ccf"},
		{types.CipherAES128CBC, testKey16, testIV, "397b7de3bdac48e195bb5c622b4c3b016774fa3dc60fd11de2bb81b954cadfd5"},
		{types.CipherAES128CTR, testKey16, testIV, "0ec2ab845b72542bfe34ad274479dfc1d6"},
		{types.CipherAES256CFB, testKey32, testIV, "fa65a1e14cb6e5a8330c9574375d117801"},
		{types.CipherAES128OFB, testKey16, testIV, "0ec2ab845b72542bfe34ad274479dfc10a"},
		{types.CipherChaCha20, testKey32, "00000000000000000000004a00000000", "c760722cd480502ae857e9a01d7b7cc3b6"},
		{types.CipherChaCha20, testKey32, "01000000000000000000004a00000000", "4a2a3d9f2f3bbc8246bb544fcf0c6f81e8"},
	}

	for _, tc := range testCases {
		t.Run(tc.algo+"/"+tc.iv[:2], func(t *testing.T) {
			out, err := svc.Decrypt(unhex(t, tc.ciphertext), unhex(t, tc.iv), unhex(t, tc.key), tc.algo)
			require.NoError(t, err)
			assert.Equal(t, plaintext, out)
		})
	}
}

func TestEncryptDecryptAllAlgorithms(t *testing.T) {
	svc := NewCipherService()

	for _, algo := range svc.Algorithms() {
		t.Run(algo, func(t *testing.T) {
			keyLen, err := svc.KeyLength(algo)
			require.NoError(t, err)
			key := bytes.Repeat([]byte{0x42}, keyLen)

			for _, size := range []int{0, 1, 15, 16, 17, 100} {
				plaintext := bytes.Repeat([]byte{0xa5}, size)
				ct, iv, err := svc.Encrypt(plaintext, key, algo)
				require.NoError(t, err)
				assert.Len(t, iv, IVSize)

				pt, err := svc.Decrypt(ct, iv, key, algo)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(plaintext, pt), "size %d", size)
			}
		})
	}
}

func TestKeyLength(t *testing.T) {
	svc := NewCipherService()

	testCases := []struct {
		algo string
		want int
	}{
		{types.CipherAES128CBC, 16},
		{types.CipherAES192CBC, 24},
		{types.CipherAES256CBC, 32},
		{types.CipherAES256CTR, 32},
		{types.CipherChaCha20, 32},
	}
	for _, tc := range testCases {
		got, err := svc.KeyLength(tc.algo)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.algo)
	}

	_, err := svc.KeyLength("des-cbc")
	assert.True(t, errors.Is(err, types.ErrUnsupportedAlgorithm))
}

func TestCipherErrors(t *testing.T) {
	svc := NewCipherService()
	key := bytes.Repeat([]byte{1}, 32)

	t.Run("密钥长度错误", func(t *testing.T) {
		_, _, err := svc.Encrypt([]byte("x"), key[:31], types.CipherAES256CBC)
		assert.True(t, errors.Is(err, types.ErrInvalidLength))
	})

	t.Run("IV长度错误", func(t *testing.T) {
		_, err := svc.Decrypt(make([]byte, 16), make([]byte, 12), key, types.CipherAES256CBC)
		assert.True(t, errors.Is(err, types.ErrInvalidLength))
	})

	t.Run("CBC密文不是块长度整数倍", func(t *testing.T) {
		_, err := svc.Decrypt(make([]byte, 17), make([]byte, IVSize), key, types.CipherAES256CBC)
		assert.True(t, errors.Is(err, types.ErrInvalidLength))
	})

	t.Run("错误密钥导致填充无效", func(t *testing.T) {
		ct, iv, err := svc.Encrypt([]byte("secret message"), key, types.CipherAES256CBC)
		require.NoError(t, err)
		wrong := bytes.Repeat([]byte{2}, 32)
		// 错误密钥解出的最后一个字节恰好构成合法填充的概率很低，这里固定密钥保证可复现
		_, err = svc.Decrypt(ct, iv, wrong, types.CipherAES256CBC)
		if err != nil {
			assert.True(t, errors.Is(err, ErrInvalidPadding))
		}
	})

	t.Run("ChaCha20计数器溢出", func(t *testing.T) {
		iv := unhex(t, "ffffffff000000000000000000000000")
		_, err := svc.Decrypt(make([]byte, 65), iv, key, types.CipherChaCha20)
		assert.True(t, errors.Is(err, types.ErrInvalidLength))
	})
}

func TestPKCS7(t *testing.T) {
	padded := pkcs7Pad([]byte("abc"), 16)
	assert.Len(t, padded, 16)
	assert.Equal(t, byte(13), padded[15])

	out, err := pkcs7Unpad(padded, 16)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	full := pkcs7Pad(make([]byte, 16), 16)
	assert.Len(t, full, 32)

	bad := append([]byte{}, padded...)
	bad[14] = 0x01
	_, err = pkcs7Unpad(bad, 16)
	assert.ErrorIs(t, err, ErrInvalidPadding)

	zero := make([]byte, 16)
	_, err = pkcs7Unpad(zero, 16)
	assert.ErrorIs(t, err, ErrInvalidPadding)
}
