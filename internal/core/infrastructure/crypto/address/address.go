package address

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/hash"
	cryptointf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ecc/pkg/types"
)

const (
	// ChecksumLength base58check 校验和长度
	ChecksumLength = 4
	// AddressHashLength 地址哈希长度（20字节）
	AddressHashLength = 20
	// compressedWIFSuffix 压缩公钥标记后缀
	compressedWIFSuffix = 0x01
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// AddressService 提供 base58check、WIF 与地址编码
//
// 与曲线无关：私钥长度由调用方（EllipticCurve）传入并校验。
type AddressService struct {
	hashManager cryptointf.HashManager
}

// 确保AddressService实现了AddressCodec接口
var _ cryptointf.AddressCodec = (*AddressService)(nil)

// NewAddressService 创建新的地址服务实例
//
// 参数：
//   - hashManager: 哈希服务，为 nil 时使用默认实现
func NewAddressService(hashManager cryptointf.HashManager) *AddressService {
	if hashManager == nil {
		hashManager = hash.NewHashService()
	}
	return &AddressService{hashManager: hashManager}
}

// Base58CheckEncode 编码 version ‖ payload ‖ checksum
func (s *AddressService) Base58CheckEncode(version byte, payload []byte) string {
	// 构建载荷：版本字节 + 数据
	full := make([]byte, 0, 1+len(payload)+ChecksumLength)
	full = append(full, version)
	full = append(full, payload...)

	// 计算校验和：双SHA256的前4字节
	checksum := s.hashManager.DoubleSHA256(full)[:ChecksumLength]
	full = append(full, checksum...)

	return base58.Encode(full)
}

// Base58CheckDecode 解码Base58Check编码的数据
//
// 先完整计算校验和，再依次检查版本字节与校验和；返回不含版本和校验和的载荷。
func (s *AddressService) Base58CheckDecode(encoded string, expectedVersion byte) ([]byte, error) {
	if encoded == "" || !isValidBase58(encoded) {
		return nil, types.NewECCError(types.ErrInvalidChecksum, "invalid base58 string")
	}

	decoded := base58.Decode(encoded)
	if len(decoded) < 1+ChecksumLength {
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("base58check payload too short: %d bytes", len(decoded)))
	}

	// 分离载荷和校验和
	body := decoded[:len(decoded)-ChecksumLength]
	checksum := decoded[len(decoded)-ChecksumLength:]
	expected := s.hashManager.DoubleSHA256(body)[:ChecksumLength]
	checksumOK := hash.ConstantTimeCompare(checksum, expected)

	if body[0] != expectedVersion {
		return nil, types.NewECCError(types.ErrInvalidNetwork,
			fmt.Sprintf("version byte 0x%02x, expected 0x%02x", body[0], expectedVersion))
	}
	if !checksumOK {
		return nil, types.NewECCError(types.ErrInvalidChecksum, "base58check checksum mismatch")
	}

	payload := make([]byte, len(body)-1)
	copy(payload, body[1:])
	return payload, nil
}

// EncodeWIF 将私钥编码为WIF字符串
func (s *AddressService) EncodeWIF(privateKey []byte) string {
	return s.Base58CheckEncode(types.WIFVersion, privateKey)
}

// DecodeWIF 将WIF字符串解码为私钥
//
// 接受带 0x01 压缩标记后缀的载荷（Bitcoin 压缩公钥 WIF），后缀会被去除。
func (s *AddressService) DecodeWIF(wif string, scalarLength int) ([]byte, error) {
	payload, err := s.Base58CheckDecode(wif, types.WIFVersion)
	if err != nil {
		return nil, err
	}

	switch {
	case len(payload) == scalarLength:
		return payload, nil
	case len(payload) == scalarLength+1 && payload[scalarLength] == compressedWIFSuffix:
		return payload[:scalarLength], nil
	default:
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("wif payload is %d bytes, expected %d", len(payload), scalarLength))
	}
}

// PublicKeyToAddress 由非压缩公钥计算地址
//
// 推导算法：SHA256 → RIPEMD160 → 版本字节 0x00 → Base58Check
func (s *AddressService) PublicKeyToAddress(uncompressed []byte) string {
	return s.Base58CheckEncode(types.AddressVersion, s.hashManager.Hash160(uncompressed))
}

// ValidateAddress 验证地址格式、版本和校验和
func (s *AddressService) ValidateAddress(address string) error {
	data, err := s.Base58CheckDecode(address, types.AddressVersion)
	if err != nil {
		return err
	}
	if len(data) != AddressHashLength {
		return types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("address hash is %d bytes, expected %d", len(data), AddressHashLength))
	}
	return nil
}

// isValidBase58 检查字符串是否为有效的Base58编码
func isValidBase58(s string) bool {
	for _, char := range s {
		if !strings.ContainsRune(base58Alphabet, char) {
			return false
		}
	}
	return true
}
