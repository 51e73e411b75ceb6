// Package crypto 组装 ECC 引擎的各项服务
package crypto

import (
	"fmt"

	eccconfig "github.com/weisyn/ecc/internal/config/ecc"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/ecc"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/encryption"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/ecc/internal/core/infrastructure/metrics"
	"github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/ecc/pkg/interfaces/infrastructure/log"
	metricsintf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/metrics"
)

// ServiceInput 定义加密服务工厂的输入参数
type ServiceInput struct {
	Options  *eccconfig.ECCOptions
	Logger   log.Logger
	Recorder metricsintf.OperationRecorder
}

// ServiceOutput 定义加密服务工厂的输出结果
type ServiceOutput struct {
	HashManager     crypto.HashManager
	SymmetricCipher crypto.SymmetricCipher
	AddressCodec    crypto.AddressCodec
	KeystoreManager crypto.KeystoreManager
	ECCFactory      crypto.ECCFactory
	EllipticCurve   crypto.EllipticCurve
}

// CreateCryptoServices 创建加密服务
//
// 默认曲线由配置决定；提供 Recorder 时，工厂创建的所有曲线都带指标上报。
func CreateCryptoServices(input ServiceInput) (ServiceOutput, error) {
	// 初始化日志（处理可选Logger）
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "crypto")
	} else {
		logger = &noopLogger{}
	}

	options := input.Options
	if options == nil {
		options = eccconfig.New(nil).GetOptions()
	}

	hashService := hash.NewHashService()
	cipherService := encryption.NewCipherService()
	addressService := address.NewAddressService(hashService)

	keystoreService, err := encryption.NewKeystoreService(options.KeystoreKDF)
	if err != nil {
		return ServiceOutput{}, fmt.Errorf("初始化密钥库失败: %w", err)
	}

	factory := newInstrumentedFactory(ecc.NewFactory(cipherService, logger), input.Recorder)
	curve, err := factory.NewCurve(options.Curve)
	if err != nil {
		logger.Errorf("创建默认曲线失败: %v", err)
		return ServiceOutput{}, err
	}

	logger.Infof("加密模块初始化完成: curve=%s cipher=%s metrics=%t",
		curve.Name(), options.Cipher, input.Recorder != nil)

	return ServiceOutput{
		HashManager:     hashService,
		SymmetricCipher: cipherService,
		AddressCodec:    addressService,
		KeystoreManager: keystoreService,
		ECCFactory:      factory,
		EllipticCurve:   curve,
	}, nil
}

// instrumentedFactory 为工厂创建的曲线加上指标装饰
type instrumentedFactory struct {
	next     crypto.ECCFactory
	recorder metricsintf.OperationRecorder
}

func newInstrumentedFactory(next crypto.ECCFactory, recorder metricsintf.OperationRecorder) crypto.ECCFactory {
	if recorder == nil {
		return next
	}
	return &instrumentedFactory{next: next, recorder: recorder}
}

func (f *instrumentedFactory) NewCurve(name string) (crypto.EllipticCurve, error) {
	curve, err := f.next.NewCurve(name)
	if err != nil {
		return nil, err
	}
	return metrics.Instrument(curve, f.recorder), nil
}

func (f *instrumentedFactory) SupportedCurves() []string {
	return f.next.SupportedCurves()
}
