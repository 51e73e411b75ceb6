package crypto

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	internalconfig "github.com/weisyn/ecc/internal/config"
	eccconfig "github.com/weisyn/ecc/internal/config/ecc"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/ecc"
	corelog "github.com/weisyn/ecc/internal/core/infrastructure/log"
	"github.com/weisyn/ecc/internal/core/infrastructure/metrics"
	"github.com/weisyn/ecc/pkg/interfaces/config"
	"github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ecc/pkg/types"
)

type staticOptions struct {
	cfg *types.AppConfig
}

func (o staticOptions) GetAppConfig() *types.AppConfig { return o.cfg }

func TestCreateCryptoServicesDefaults(t *testing.T) {
	out, err := CreateCryptoServices(ServiceInput{})
	require.NoError(t, err)

	assert.Equal(t, types.CurveSecp256k1, out.EllipticCurve.Name())
	_, instrumented := out.EllipticCurve.(*metrics.InstrumentedCurve)
	assert.False(t, instrumented, "未提供 Recorder 时不应包装")
	_, plain := out.ECCFactory.(*ecc.Factory)
	assert.True(t, plain)

	require.NotNil(t, out.HashManager)
	require.NotNil(t, out.AddressCodec)
	require.NotNil(t, out.SymmetricCipher)

	priv, err := out.EllipticCurve.NewPrivateKey()
	require.NoError(t, err)
	blob, err := out.KeystoreManager.Seal(priv, []byte("passphrase"))
	require.NoError(t, err)
	opened, err := out.KeystoreManager.Open(blob, []byte("passphrase"))
	require.NoError(t, err)
	assert.Equal(t, priv, opened)
}

func TestCreateCryptoServicesErrors(t *testing.T) {
	tests := []struct {
		name    string
		options *eccconfig.ECCOptions
		kind    types.ErrorKind
	}{
		{
			name:    "未知曲线",
			options: &eccconfig.ECCOptions{Curve: "secp999k1", KeystoreKDF: "scrypt"},
			kind:    types.ErrUnknownCurve,
		},
		{
			name:    "未知KDF",
			options: &eccconfig.ECCOptions{Curve: types.CurveSecp256k1, KeystoreKDF: "argon2"},
			kind:    types.ErrUnsupportedHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateCryptoServices(ServiceInput{Options: tt.options, Logger: corelog.NewNop()})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "期望 %v，实际 %v", tt.kind, err)
		})
	}
}

func TestCreateCryptoServicesInstrumented(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder("test", registry)

	out, err := CreateCryptoServices(ServiceInput{
		Options:  &eccconfig.ECCOptions{Curve: types.CurveSecp160r1, KeystoreKDF: "pbkdf2"},
		Recorder: recorder,
	})
	require.NoError(t, err)

	_, ok := out.EllipticCurve.(*metrics.InstrumentedCurve)
	require.True(t, ok)

	// 工厂新建的曲线同样带指标
	other, err := out.ECCFactory.NewCurve("P-256")
	require.NoError(t, err)
	_, ok = other.(*metrics.InstrumentedCurve)
	assert.True(t, ok)
	assert.Equal(t, types.CurvePrime256v1, other.Name())
	assert.Len(t, out.ECCFactory.SupportedCurves(), 15)

	_, err = other.NewPrivateKey()
	require.NoError(t, err)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestModule(t *testing.T) {
	var (
		curve    crypto.EllipticCurve
		factory  crypto.ECCFactory
		keystore crypto.KeystoreManager
		gatherer prometheus.Gatherer
	)

	app := fxtest.New(t,
		fx.Provide(func() config.AppOptions {
			return staticOptions{cfg: &types.AppConfig{
				Log: &types.UserLogConfig{ToConsole: types.BoolPtr(false)},
				ECC: &types.UserECCConfig{
					Curve:    types.StringPtr("P-256"),
					Keystore: &types.UserKeystoreConfig{KDF: types.StringPtr("pbkdf2")},
				},
			}}
		}),
		internalconfig.Module(),
		corelog.Module(),
		metrics.Module(),
		Module(),
		fx.Populate(&curve, &factory, &keystore, &gatherer),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, curve)
	assert.Equal(t, types.CurvePrime256v1, curve.Name())

	priv, err := curve.NewPrivateKey()
	require.NoError(t, err)
	sig, err := curve.Sign([]byte("hello"), priv)
	require.NoError(t, err)
	pub, err := curve.PrivateToPublic(priv)
	require.NoError(t, err)
	ok, err := curve.Verify(sig, []byte("hello"), pub)
	require.NoError(t, err)
	assert.True(t, ok)

	families, err := gatherer.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "ecc_crypto_operations_total")
	assert.Contains(t, factory.SupportedCurves(), types.CurveSecp112r1)
}
