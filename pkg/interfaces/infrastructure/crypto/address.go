// Package crypto 提供ECC引擎的地址与WIF编码接口定义
//
// 📍 **地址编码服务 (Address Encoding Service)**
//
// 本文件定义了Bitcoin风格的 base58check 编码接口，专注于：
// - WIF：0x80 ‖ 私钥 ‖ 校验和(4)
// - 地址：0x00 ‖ RIPEMD160(SHA256(非压缩公钥)) ‖ 校验和(4)
// - 校验和：双SHA256的前4字节，常量时间比较
//
// 🔧 **推导算法**：
// 私钥 → 公钥 → 非压缩编码 → SHA256 → RIPEMD160 → Base58Check → 地址
package crypto

// AddressCodec 定义 base58check / WIF / 地址编码接口
type AddressCodec interface {
	// Base58CheckEncode 编码 version ‖ payload ‖ checksum
	Base58CheckEncode(version byte, payload []byte) string

	// Base58CheckDecode 解码并校验
	// 返回：版本字节、载荷；版本不符返回 ErrInvalidNetwork，校验和不符返回 ErrInvalidChecksum
	Base58CheckDecode(encoded string, expectedVersion byte) ([]byte, error)

	// EncodeWIF 将私钥编码为WIF字符串
	EncodeWIF(privateKey []byte) string

	// DecodeWIF 将WIF字符串解码为私钥
	// 参数：
	//   - wif: WIF字符串
	//   - scalarLength: 曲线私钥长度，用于校验载荷长度
	DecodeWIF(wif string, scalarLength int) ([]byte, error)

	// PublicKeyToAddress 由非压缩公钥（0x04 ‖ x ‖ y）计算地址
	PublicKeyToAddress(uncompressed []byte) string
}
