// Package crypto 提供ECC引擎的哈希计算接口定义
//
// #️⃣ **哈希计算服务 (Hash Computation Service)**
//
// 本文件定义了ECC引擎依赖的哈希原语，专注于：
// - 消息摘要：SHA-1、SHA-256、SHA-512、Keccak-256、SHA3-256
// - 消息认证：HMAC-SHA256、HMAC-SHA512（ECIES 标签与 BIP32 派生）
// - 地址摘要：RIPEMD-160、Hash160、双重SHA256（base58check 校验和）
//
// 🎯 **核心功能**
// - HashManager：哈希管理器接口
// - Digest：按名称选择摘要算法，供签名与 ECIES 密钥派生使用
//
// 🔗 **组件关系**
// - HashManager：被 EllipticCurve、地址编码、子密钥派生使用
// - 与 SymmetricCipher：ECIES 中派生 k_enc / k_mac
package crypto

// HashManager 定义哈希计算相关接口
//
// 实现必须是无状态、并发安全的；不做任何结果缓存。
type HashManager interface {
	// SHA1 计算SHA-1哈希（20字节），仅用于兼容旧签名方案
	SHA1(data []byte) []byte

	// SHA256 计算SHA-256哈希（32字节）
	SHA256(data []byte) []byte

	// SHA512 计算SHA-512哈希（64字节）
	SHA512(data []byte) []byte

	// Keccak256 计算Keccak-256哈希（32字节）
	Keccak256(data []byte) []byte

	// SHA3_256 计算标准SHA3-256哈希（32字节）
	SHA3_256(data []byte) []byte

	// RIPEMD160 计算RIPEMD-160哈希（20字节）
	RIPEMD160(data []byte) []byte

	// DoubleSHA256 计算SHA256(SHA256(data))
	DoubleSHA256(data []byte) []byte

	// Hash160 计算RIPEMD160(SHA256(data))
	Hash160(data []byte) []byte

	// HMACSHA256 计算HMAC-SHA256
	HMACSHA256(key, data []byte) []byte

	// HMACSHA512 计算HMAC-SHA512
	HMACSHA512(key, data []byte) []byte

	// Digest 按名称计算摘要
	// 参数：
	//   - name: sha1 | sha256 | sha512 | keccak256 | sha3-256 | none
	//   - data: 输入数据
	// 返回：摘要；名称未知时返回 ErrUnsupportedHash
	Digest(name string, data []byte) ([]byte, error)
}
