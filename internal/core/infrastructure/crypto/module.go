package crypto

import (
	eccconfig "github.com/weisyn/ecc/internal/config/ecc"
	"github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/ecc/pkg/interfaces/infrastructure/log"
	metricsintf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// CryptoParams 定义加密模块的依赖参数
type CryptoParams struct {
	fx.In

	Options  *eccconfig.ECCOptions         // ECC 配置
	Logger   log.Logger                    `optional:"true"` // 日志记录器
	Recorder metricsintf.OperationRecorder `optional:"true"` // 指标记录器（关闭指标时为 nil）
}

// CryptoOutput 定义加密模块的输出结构
type CryptoOutput struct {
	fx.Out

	HashManager     crypto.HashManager
	SymmetricCipher crypto.SymmetricCipher
	AddressCodec    crypto.AddressCodec
	KeystoreManager crypto.KeystoreManager
	ECCFactory      crypto.ECCFactory

	// 默认曲线（由 ecc.curve 配置决定）
	EllipticCurve crypto.EllipticCurve
}

// Module 返回加密模块
func Module() fx.Option {
	return fx.Module("crypto",
		// 提供加密服务
		fx.Provide(ProvideCryptoServices),
	)
}

// ProvideCryptoServices 提供加密服务
func ProvideCryptoServices(params CryptoParams) (CryptoOutput, error) {
	serviceOutput, err := CreateCryptoServices(ServiceInput{
		Options:  params.Options,
		Logger:   params.Logger,
		Recorder: params.Recorder,
	})
	if err != nil {
		return CryptoOutput{}, err
	}

	return CryptoOutput{
		HashManager:     serviceOutput.HashManager,
		SymmetricCipher: serviceOutput.SymmetricCipher,
		AddressCodec:    serviceOutput.AddressCodec,
		KeystoreManager: serviceOutput.KeystoreManager,
		ECCFactory:      serviceOutput.ECCFactory,
		EllipticCurve:   serviceOutput.EllipticCurve,
	}, nil
}

// noopLogger 是一个无操作的Logger实现，用于可选Logger为nil时的回退
type noopLogger struct{}

func (l *noopLogger) Debug(msg string)                          {}
func (l *noopLogger) Debugf(format string, args ...interface{}) {}
func (l *noopLogger) Info(msg string)                           {}
func (l *noopLogger) Infof(format string, args ...interface{})  {}
func (l *noopLogger) Warn(msg string)                           {}
func (l *noopLogger) Warnf(format string, args ...interface{})  {}
func (l *noopLogger) Error(msg string)                          {}
func (l *noopLogger) Errorf(format string, args ...interface{}) {}
func (l *noopLogger) Fatal(msg string)                          {}
func (l *noopLogger) Fatalf(format string, args ...interface{}) {}
func (l *noopLogger) With(keyvals ...interface{}) log.Logger    { return l }
func (l *noopLogger) Sync() error                               { return nil }
func (l *noopLogger) GetZapLogger() *zap.Logger                 { return nil }
