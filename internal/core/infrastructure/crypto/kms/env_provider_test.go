package kms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvPassphraseProvider(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    []byte
		wantErr error
	}{
		{name: "明文口令", value: "correct horse", want: []byte("correct horse")},
		{name: "Base64口令", value: "base64:AAEC/w==", want: []byte{0x00, 0x01, 0x02, 0xff}},
		{name: "未设置", value: "", wantErr: ErrPassphraseNotSet},
		{name: "Base64为空", value: "base64:", wantErr: ErrPassphraseNotSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ECC_PASSPHRASE", tt.value)
			p := NewEnvPassphraseProvider("TEST_ECC_PASSPHRASE", nil)

			got, err := p.GetPassphrase(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvPassphraseProviderErrors(t *testing.T) {
	t.Run("非法Base64", func(t *testing.T) {
		t.Setenv("TEST_ECC_PASSPHRASE", "base64:***")
		_, err := NewEnvPassphraseProvider("TEST_ECC_PASSPHRASE", nil).GetPassphrase(context.Background())
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrPassphraseNotSet))
	})

	t.Run("上下文已取消", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewEnvPassphraseProvider("", nil).GetPassphrase(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("默认变量名", func(t *testing.T) {
		t.Setenv(DefaultPassphraseEnv, "pw")
		got, err := NewEnvPassphraseProvider("", nil).GetPassphrase(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []byte("pw"), got)
	})
}
