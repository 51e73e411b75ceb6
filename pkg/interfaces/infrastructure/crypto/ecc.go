// Package crypto 提供ECC引擎的核心接口定义
//
// 🔑 **椭圆曲线服务 (Elliptic Curve Service)**
//
// 本文件定义了绑定到单条具名曲线的 ECC 服务接口，专注于：
// - 密钥管理：私钥生成、公钥推导、WIF 与地址编码
// - 公钥编解码：压缩/非压缩线格式，定长与前缀两种解码模式
// - 混合加密：ECDH + 摘要派生 + 对称加密 + MAC（ECIES）
// - 数字签名：ECDSA 签名、验证，可恢复签名与公钥恢复
// - 子密钥派生：BIP32 风格非硬化派生
//
// 🏗️ **设计原则**
// - 无状态：除绑定的曲线外不持有任何跨调用可变状态，可并发调用
// - 类型化错误：输入错误、认证错误、格式错误可通过 errors.Is 区分
// - 不记录密钥：日志与指标只包含曲线名、算法名与长度
//
// 🔗 **组件关系**
// - EllipticCurve → CurveBackend（点运算）
// - EllipticCurve → SymmetricCipher（载荷加密）
// - EllipticCurve → HashManager / AddressCodec（派生、校验和、MAC）
package crypto

import "github.com/weisyn/ecc/pkg/types"

// EllipticCurve 定义绑定到一条曲线的 ECC 服务
type EllipticCurve interface {
	// Name 曲线名称
	Name() string

	// PublicKeyLength 域长度 L
	PublicKeyLength() int

	// ScalarLength 私钥长度 SL
	ScalarLength() int

	// === 密钥管理 ===

	// NewPrivateKey 生成新私钥
	NewPrivateKey() ([]byte, error)

	// PrivateToPublic 由私钥推导压缩公钥
	PrivateToPublic(priv []byte) ([]byte, error)

	// PrivateToWIF 私钥编码为WIF
	PrivateToWIF(priv []byte) (string, error)

	// WIFToPrivate WIF解码为私钥
	WIFToPrivate(wif string) ([]byte, error)

	// PublicToAddress 公钥（压缩或非压缩）转地址
	PublicToAddress(pub []byte) (string, error)

	// PrivateToAddress 私钥转地址
	PrivateToAddress(priv []byte) (string, error)

	// === 公钥编解码 ===

	// EncodePublicKey 将内部公钥编码为线格式
	EncodePublicKey(pub types.PublicKey, compressed bool) ([]byte, error)

	// DecodeFixed 解码长度严格匹配的公钥
	DecodeFixed(b []byte) (types.PublicKey, error)

	// DecodePrefix 解码位于缓冲区开头的公钥，并返回消耗的字节数
	DecodePrefix(b []byte) (types.PublicKey, int, error)

	// DecompressPublicKey 将任意线格式公钥转为非压缩格式
	DecompressPublicKey(pub []byte) ([]byte, error)

	// === ECDH / ECIES ===

	// ECDH 计算未经摘要的共享秘密
	ECDH(priv, pub []byte) ([]byte, error)

	// Encrypt 使用接收方公钥进行 ECIES 加密
	// 返回：密文信封、k_enc（仅在 WithReturnKey 时非空）、错误
	Encrypt(plaintext, pub []byte, opts ...types.EncryptOption) ([]byte, []byte, error)

	// Decrypt 使用接收方私钥解密 ECIES 信封
	Decrypt(ciphertext, priv []byte, opts ...types.EncryptOption) ([]byte, error)

	// === ECDSA ===

	// Sign 先摘要后签名
	Sign(data, priv []byte, opts ...types.SignOption) ([]byte, error)

	// Verify 验证签名；长度不符返回错误而非 false
	Verify(sig, data, pub []byte, opts ...types.SignOption) (bool, error)

	// Recover 从可恢复签名恢复压缩公钥
	Recover(sig, data []byte, opts ...types.SignOption) ([]byte, error)

	// === 子密钥派生 ===

	// DeriveChild 由种子派生非硬化子私钥
	DeriveChild(seed []byte, index uint32) ([]byte, error)
}

// ECCFactory 按曲线名称构造 EllipticCurve
type ECCFactory interface {
	// NewCurve 校验曲线名称并返回绑定该曲线的服务；不支持时返回 ErrUnknownCurve
	NewCurve(name string) (EllipticCurve, error)

	// SupportedCurves 返回支持的曲线名称（已排序）
	SupportedCurves() []string
}
