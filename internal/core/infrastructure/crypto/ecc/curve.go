// Package ecc 实现绑定到单条具名曲线的 ECC 服务
//
// Curve 只负责编排：点运算委托给 CurveBackend，载荷加密委托给 SymmetricCipher，
// 摘要、MAC 与 base58check 委托给 hash / address 服务。
// 除绑定的后端外不持有可变状态，可在多个 goroutine 间共享。
package ecc

import (
	"fmt"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/curve"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
	corelog "github.com/weisyn/ecc/internal/core/infrastructure/log"
	cryptointf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	logiface "github.com/weisyn/ecc/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/ecc/pkg/types"
)

// 确保Curve实现了cryptointf.EllipticCurve接口
var _ cryptointf.EllipticCurve = (*Curve)(nil)

// Curve 绑定到一条曲线的 ECC 服务
type Curve struct {
	backend cryptointf.CurveBackend
	cipher  cryptointf.SymmetricCipher
	hasher  *hash.HashService
	codec   *address.AddressService
	logger  logiface.Logger
}

// New 创建绑定到 backend 的 ECC 服务
//
// logger 为 nil 时使用全局日志记录器。
func New(backend cryptointf.CurveBackend, cipher cryptointf.SymmetricCipher, logger logiface.Logger) *Curve {
	if logger == nil {
		logger = corelog.GetLogger()
	}
	hasher := hash.NewHashService()
	return &Curve{
		backend: backend,
		cipher:  cipher,
		hasher:  hasher,
		codec:   address.NewAddressService(hasher),
		logger:  corelog.NewModuleLogger(logger, "ecc").With("curve", backend.Name()),
	}
}

// Name 曲线名称
func (c *Curve) Name() string {
	return c.backend.Name()
}

// PublicKeyLength 域长度 L
func (c *Curve) PublicKeyLength() int {
	return c.backend.PublicKeyLength()
}

// ScalarLength 私钥长度 SL
func (c *Curve) ScalarLength() int {
	return c.backend.ScalarLength()
}

// Backend 返回底层曲线后端
func (c *Curve) Backend() cryptointf.CurveBackend {
	return c.backend
}

// ============================================================================
//                              密钥管理
// ============================================================================

// NewPrivateKey 生成新私钥
func (c *Curve) NewPrivateKey() ([]byte, error) {
	priv, err := c.backend.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("生成私钥失败: %w", err)
	}
	return priv, nil
}

// PrivateToPublic 由私钥推导压缩公钥
func (c *Curve) PrivateToPublic(priv []byte) ([]byte, error) {
	pub, err := c.backend.PrivateToPublic(priv)
	if err != nil {
		return nil, err
	}
	return curve.CompressPublicKey(pub), nil
}

// PrivateToWIF 私钥编码为WIF
func (c *Curve) PrivateToWIF(priv []byte) (string, error) {
	if err := c.checkPrivateKey(priv); err != nil {
		return "", err
	}
	return c.codec.EncodeWIF(priv), nil
}

// WIFToPrivate WIF解码为私钥
func (c *Curve) WIFToPrivate(wif string) ([]byte, error) {
	priv, err := c.codec.DecodeWIF(wif, c.backend.ScalarLength())
	if err != nil {
		return nil, err
	}
	return priv, nil
}

// PublicToAddress 公钥转地址；压缩公钥先解压，地址总是基于非压缩编码
func (c *Curve) PublicToAddress(pub []byte) (string, error) {
	decoded, err := c.DecodeFixed(pub)
	if err != nil {
		return "", err
	}
	return c.codec.PublicKeyToAddress(curve.UncompressPublicKey(decoded)), nil
}

// PrivateToAddress 私钥转地址
func (c *Curve) PrivateToAddress(priv []byte) (string, error) {
	pub, err := c.backend.PrivateToPublic(priv)
	if err != nil {
		return "", err
	}
	return c.codec.PublicKeyToAddress(curve.UncompressPublicKey(pub)), nil
}

// checkPrivateKey 通过推导公钥校验私钥长度与范围
func (c *Curve) checkPrivateKey(priv []byte) error {
	pub, err := c.backend.PrivateToPublic(priv)
	if err != nil {
		return err
	}
	key.SecureWipe(pub.X)
	key.SecureWipe(pub.Y)
	return nil
}

// ============================================================================
//                              子密钥派生
// ============================================================================

// DeriveChild 由种子派生非硬化子私钥
func (c *Curve) DeriveChild(seed []byte, index uint32) ([]byte, error) {
	if index >= curve.HardenedKeyStart {
		return nil, types.NewECCError(types.ErrInvalidChildIndex,
			fmt.Sprintf("child index %d is out of range [0, 2^31)", index))
	}
	child, err := c.backend.DeriveChild(seed, index)
	if err != nil {
		c.logger.Warnf("子密钥派生失败: index=%d err=%v", index, err)
		return nil, err
	}
	return child, nil
}
