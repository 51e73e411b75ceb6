package hash

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"

	cryptointf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ecc/pkg/types"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// 确保HashService实现了cryptointf.HashManager接口
var _ cryptointf.HashManager = (*HashService)(nil)

// HashService 提供哈希计算功能
//
// 无状态、无缓存：每次调用独立计算，可在多个 goroutine 间共享。
type HashService struct{}

// NewHashService 创建新的哈希服务
func NewHashService() *HashService {
	return &HashService{}
}

// SHA1 计算SHA-1哈希
func (s *HashService) SHA1(data []byte) []byte {
	h := sha1.Sum(data)
	return h[:]
}

// SHA256 计算SHA-256哈希
//
// 参数:
//   - data: 要计算哈希的数据
//
// 返回:
//   - []byte: 32字节的SHA-256哈希结果
func (s *HashService) SHA256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// SHA512 计算SHA-512哈希
func (s *HashService) SHA512(data []byte) []byte {
	h := sha512.Sum512(data)
	return h[:]
}

// Keccak256 计算Keccak-256哈希
//
// 参数:
//   - data: 要计算哈希的数据
//
// 返回:
//   - []byte: 32字节的Keccak-256哈希结果
func (s *HashService) Keccak256(data []byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	return hasher.Sum(nil)
}

// SHA3_256 计算FIPS-202 SHA3-256哈希
func (s *HashService) SHA3_256(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

// RIPEMD160 计算RIPEMD-160哈希
//
// 参数:
//   - data: 要计算哈希的数据
//
// 返回:
//   - []byte: 20字节的RIPEMD-160哈希结果
func (s *HashService) RIPEMD160(data []byte) []byte {
	hasher := ripemd160.New()
	hasher.Write(data)
	return hasher.Sum(nil)
}

// DoubleSHA256 计算双重SHA-256哈希
func (s *HashService) DoubleSHA256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash160 计算RIPEMD160(SHA256(data))，用于地址生成
func (s *HashService) Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	return s.RIPEMD160(sha[:])
}

// HMACSHA256 计算HMAC-SHA256
func (s *HashService) HMACSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// HMACSHA512 计算HMAC-SHA512
func (s *HashService) HMACSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// Digest 按名称计算摘要
//
// none 返回输入的副本，调用方可以安全地擦除结果而不影响原数据。
func (s *HashService) Digest(name string, data []byte) ([]byte, error) {
	switch name {
	case types.HashSHA1:
		return s.SHA1(data), nil
	case types.HashSHA256:
		return s.SHA256(data), nil
	case types.HashSHA512:
		return s.SHA512(data), nil
	case types.HashKeccak256:
		return s.Keccak256(data), nil
	case types.HashSHA3_256:
		return s.SHA3_256(data), nil
	case types.HashNone:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	default:
		return nil, types.NewECCError(types.ErrUnsupportedHash,
			fmt.Sprintf("unsupported hash algorithm %q", name))
	}
}

// ApplyDigest 应用摘要选择：回调优先，其次按名称
func (s *HashService) ApplyDigest(d types.Digest, data []byte) ([]byte, error) {
	if d.IsCustom() {
		return d.Func(data), nil
	}
	return s.Digest(d.Name, data)
}

// MACSize 返回MAC标签长度；未知名称返回 ErrUnsupportedMAC
func MACSize(m types.MAC) (int, error) {
	if m.IsCustom() {
		if m.Size < 0 {
			return 0, types.NewECCError(types.ErrUnsupportedMAC,
				fmt.Sprintf("custom mac has negative size %d", m.Size))
		}
		return m.Size, nil
	}
	switch m.Name {
	case types.MACHMACSHA256:
		return sha256.Size, nil
	case types.MACHMACSHA512:
		return sha512.Size, nil
	case types.MACNone:
		return 0, nil
	default:
		return 0, types.NewECCError(types.ErrUnsupportedMAC,
			fmt.Sprintf("unsupported mac algorithm %q", m.Name))
	}
}

// ComputeMAC 计算MAC标签；MAC 为 none 时返回空切片
func (s *HashService) ComputeMAC(m types.MAC, key, data []byte) ([]byte, error) {
	if m.IsCustom() {
		return m.Func(key, data), nil
	}
	switch m.Name {
	case types.MACHMACSHA256:
		return s.HMACSHA256(key, data), nil
	case types.MACHMACSHA512:
		return s.HMACSHA512(key, data), nil
	case types.MACNone:
		return []byte{}, nil
	default:
		return nil, types.NewECCError(types.ErrUnsupportedMAC,
			fmt.Sprintf("unsupported mac algorithm %q", m.Name))
	}
}

// ConstantTimeCompare 在常量时间内比较两个哈希值是否相等
// 用于防止时序攻击，无论何时都会比较整个字节数组
//
// 参数:
//   - a: 第一个哈希值
//   - b: 第二个哈希值
//
// 返回:
//   - bool: 如果两个哈希值相等返回true，否则返回false
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
