// Package crypto 提供ECC引擎的对称加密接口定义
//
// 🔐 **对称加密服务 (Symmetric Cipher Service)**
//
// 本文件定义了ECIES混合加密所依赖的对称加密原语，以及私钥的口令保护：
// - SymmetricCipher：按算法名选择 AES-CBC/CTR/CFB/OFB 或 ChaCha20
// - KeystoreManager：基于口令（scrypt/pbkdf2 + AES-GCM）的私钥封装
//
// 🏗️ **设计原则**
// - IV 固定为 16 字节，由加密方随机生成并随密文返回
// - 算法名称遵循 OpenSSL 命名（aes-256-cbc 等）
// - 未知算法一律返回 ErrUnsupportedAlgorithm，不回退默认值
package crypto

// SymmetricCipher 定义对称加密相关接口
type SymmetricCipher interface {
	// Encrypt 使用随机 IV 加密明文
	// 参数：
	//   - plaintext: 明文
	//   - key: 对称密钥，长度必须等于 KeyLength(algo)
	//   - algo: 算法名称
	// 返回：密文、16字节IV、错误
	Encrypt(plaintext, key []byte, algo string) (ciphertext, iv []byte, err error)

	// Decrypt 使用给定 IV 解密密文
	Decrypt(ciphertext, iv, key []byte, algo string) ([]byte, error)

	// KeyLength 返回算法所需的密钥长度（字节）
	KeyLength(algo string) (int, error)

	// Algorithms 返回支持的算法名称（已排序）
	Algorithms() []string
}

// KeystoreManager 定义私钥口令封装接口
type KeystoreManager interface {
	// Seal 使用口令加密私钥
	// 返回：kdf标识 ‖ salt ‖ nonce ‖ 密文
	Seal(privateKey, passphrase []byte) ([]byte, error)

	// Open 使用口令解密私钥；口令错误返回 ErrInvalidMAC
	Open(blob, passphrase []byte) ([]byte, error)
}
