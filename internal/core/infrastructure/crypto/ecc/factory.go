package ecc

import (
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/curve"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/encryption"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/secp256k1"
	cryptointf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	logiface "github.com/weisyn/ecc/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/ecc/pkg/types"
)

// 确保Factory实现了cryptointf.ECCFactory接口
var _ cryptointf.ECCFactory = (*Factory)(nil)

// Factory 按曲线名称构造 ECC 服务
type Factory struct {
	cipher cryptointf.SymmetricCipher
	logger logiface.Logger
}

// NewFactory 创建工厂；cipher 为 nil 时使用默认对称加密服务
func NewFactory(cipher cryptointf.SymmetricCipher, logger logiface.Logger) *Factory {
	if cipher == nil {
		cipher = encryption.NewCipherService()
	}
	return &Factory{cipher: cipher, logger: logger}
}

// NewCurve 校验曲线名称并返回绑定该曲线的服务
//
// 接受 P-192/P-224/P-256/P-384/P-521 别名；不支持的名称返回 ErrUnknownCurve。
func (f *Factory) NewCurve(name string) (cryptointf.EllipticCurve, error) {
	return f.New(name)
}

// New 与 NewCurve 相同，但返回具体类型
func (f *Factory) New(name string) (*Curve, error) {
	backend, err := NewBackend(name)
	if err != nil {
		return nil, err
	}
	return New(backend, f.cipher, f.logger), nil
}

// SupportedCurves 返回支持的曲线名称（已排序）
func (f *Factory) SupportedCurves() []string {
	return curve.Names()
}

// NewBackend 为曲线选择后端：secp256k1 使用专用后端，其余曲线使用通用后端
func NewBackend(name string) (cryptointf.CurveBackend, error) {
	canonical, err := curve.CanonicalName(name)
	if err != nil {
		return nil, err
	}
	if canonical == types.CurveSecp256k1 {
		return secp256k1.NewBackend(), nil
	}
	params, err := curve.Lookup(canonical)
	if err != nil {
		return nil, err
	}
	return curve.NewBackend(params), nil
}
