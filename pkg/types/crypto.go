// Package types provides cryptographic type definitions.
package types

// PublicKey 公钥的内部形式：定长大端仿射坐标
//
// X、Y 的长度均等于曲线域长度 L。外部线格式见 EncodePublicKey：
//   - 非压缩：0x04 ‖ X ‖ Y
//   - 压缩：  0x02/0x03 ‖ X（前缀编码 Y 的奇偶性）
type PublicKey struct {
	X []byte
	Y []byte
}

// 公钥前缀
const (
	PubKeyPrefixUncompressed byte = 0x04
	PubKeyPrefixEven         byte = 0x02
	PubKeyPrefixOdd          byte = 0x03
)

// 支持的曲线名称
const (
	CurveSecp112r1  = "secp112r1"
	CurveSecp112r2  = "secp112r2"
	CurveSecp128r1  = "secp128r1"
	CurveSecp128r2  = "secp128r2"
	CurveSecp160k1  = "secp160k1"
	CurveSecp160r1  = "secp160r1"
	CurveSecp160r2  = "secp160r2"
	CurveSecp192k1  = "secp192k1"
	CurvePrime192v1 = "prime192v1"
	CurveSecp224k1  = "secp224k1"
	CurveSecp224r1  = "secp224r1"
	CurveSecp256k1  = "secp256k1"
	CurvePrime256v1 = "prime256v1"
	CurveSecp384r1  = "secp384r1"
	CurveSecp521r1  = "secp521r1"
)

// 哈希 / 密钥派生算法名称
const (
	HashSHA1      = "sha1"
	HashSHA256    = "sha256"
	HashSHA512    = "sha512"
	HashKeccak256 = "keccak256"
	HashSHA3_256  = "sha3-256"
	HashNone      = "none"
)

// MAC 算法名称
const (
	MACHMACSHA256 = "hmac-sha256"
	MACHMACSHA512 = "hmac-sha512"
	MACNone       = "none"
)

// 对称加密算法名称
const (
	CipherAES128CBC = "aes-128-cbc"
	CipherAES192CBC = "aes-192-cbc"
	CipherAES256CBC = "aes-256-cbc"
	CipherAES128CTR = "aes-128-ctr"
	CipherAES256CTR = "aes-256-ctr"
	CipherAES128CFB = "aes-128-cfb"
	CipherAES256CFB = "aes-256-cfb"
	CipherAES128OFB = "aes-128-ofb"
	CipherAES256OFB = "aes-256-ofb"
	CipherChaCha20  = "chacha20"
)

// base58check 版本字节
const (
	WIFVersion     byte = 0x80
	AddressVersion byte = 0x00
)
