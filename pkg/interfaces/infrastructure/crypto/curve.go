// Package crypto 提供ECC引擎的曲线后端接口定义
//
// 📐 **曲线后端 (Curve Backend)**
//
// CurveBackend 封装某一条具名曲线上的原始点运算，EllipticCurve 通过它完成
// 所有需要点运算的操作，自身不接触坐标算术。
//
// 🎯 **长度约定**
// - PublicKeyLength：域元素长度 L，公钥坐标 X、Y 各 L 字节
// - ScalarLength：阶的字节长度 SL，私钥与签名的 r、s 各 SL 字节
//   （secp160k1/r1/r2、secp224k1 的阶比域多一个字节，其余曲线 SL == L）
//
// 🔗 **实现**
// - secp256k1：基于 decred/btcec
// - 其他曲线：通用短 Weierstrass 后端 + 静态参数表
package crypto

import "github.com/weisyn/ecc/pkg/types"

// CurveBackend 定义单条曲线的点运算接口
type CurveBackend interface {
	// Name 曲线名称
	Name() string

	// PublicKeyLength 域长度 L
	PublicKeyLength() int

	// ScalarLength 阶长度 SL
	ScalarLength() int

	// NewPrivateKey 生成 [1, n-1] 内均匀分布的私钥（SL 字节）
	NewPrivateKey() ([]byte, error)

	// PrivateToPublic 计算 priv·G
	PrivateToPublic(priv []byte) (types.PublicKey, error)

	// ECDH 计算共享秘密（priv·Pub 的 X 坐标，L 字节），未经摘要
	ECDH(priv []byte, pub types.PublicKey) ([]byte, error)

	// DecompressPoint 解压 0x02/0x03 ‖ x 形式的公钥
	DecompressPoint(compressed []byte) (types.PublicKey, error)

	// IsOnCurve 判断点是否在曲线上
	IsOnCurve(pub types.PublicKey) bool

	// Sign 对摘要进行 ECDSA 签名
	// 参数：
	//   - digest: 消息摘要（超过阶位长时按 RFC6979 bits2int 截断）
	//   - priv: 私钥
	//   - recoverable: 为 true 时输出 (31+recid) ‖ r ‖ s
	//   - entropy: 附加熵，为空时使用纯 RFC6979
	// 返回：r ‖ s（2·SL）或可恢复签名（1+2·SL）
	Sign(digest, priv []byte, recoverable bool, entropy []byte) ([]byte, error)

	// Recover 从可恢复签名（1+2·SL）和摘要恢复公钥
	Recover(sig, digest []byte) (types.PublicKey, error)

	// Verify 验证 r ‖ s（2·SL）签名
	Verify(sig, digest []byte, pub types.PublicKey) (bool, error)

	// DeriveChild 基于 HMAC-SHA512 的 BIP32 风格非硬化子密钥派生
	DeriveChild(seed []byte, index uint32) ([]byte, error)
}
