package encryption

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/ecc/pkg/types"
)

func TestKeystoreSealOpen(t *testing.T) {
	privateKey := []byte("0123456789abcdef0123456789abcdef")
	passphrase := []byte("correct horse battery staple")

	for _, kdf := range []string{KDFScrypt, KDFPBKDF2} {
		t.Run(kdf, func(t *testing.T) {
			ks, err := NewKeystoreService(kdf)
			require.NoError(t, err)

			blob, err := ks.Seal(privateKey, passphrase)
			require.NoError(t, err)
			assert.NotContains(t, string(blob), string(privateKey))

			opened, err := ks.Open(blob, passphrase)
			require.NoError(t, err)
			assert.Equal(t, privateKey, opened)

			_, err = ks.Open(blob, []byte("wrong"))
			assert.True(t, errors.Is(err, types.ErrInvalidMAC))

			tampered := append([]byte{}, blob...)
			tampered[len(tampered)-1] ^= 0x01
			_, err = ks.Open(tampered, passphrase)
			assert.True(t, errors.Is(err, types.ErrInvalidMAC))
		})
	}
}

func TestKeystoreCrossKDF(t *testing.T) {
	// 解封时按 blob 内的 kdf 标识选择算法，与服务配置无关
	sealer, err := NewKeystoreService(KDFPBKDF2)
	require.NoError(t, err)
	opener, err := NewKeystoreService(KDFScrypt)
	require.NoError(t, err)

	blob, err := sealer.Seal([]byte{1, 2, 3}, []byte("pw"))
	require.NoError(t, err)
	out, err := opener.Open(blob, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, out)
}

func TestKeystoreErrors(t *testing.T) {
	_, err := NewKeystoreService("argon2")
	assert.True(t, errors.Is(err, types.ErrUnsupportedHash))

	ks, err := NewKeystoreService("")
	require.NoError(t, err)

	_, err = ks.Seal(nil, []byte("pw"))
	assert.True(t, errors.Is(err, types.ErrInvalidKey))

	_, err = ks.Open(make([]byte, 10), []byte("pw"))
	assert.True(t, errors.Is(err, types.ErrInvalidLength))

	blob := make([]byte, 64)
	blob[0] = 0x7f
	_, err = ks.Open(blob, []byte("pw"))
	assert.True(t, errors.Is(err, types.ErrUnsupportedHash))
}
