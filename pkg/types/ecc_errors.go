// Package types 定义 ECC 引擎的错误分类
package types

import (
	"errors"
)

// ErrorKind 标识一类 ECC 错误，可直接与 errors.Is 配合使用
type ErrorKind string

// Error 实现 error 接口
func (e ErrorKind) Error() string {
	return string(e)
}

// ErrorCategory 错误所属类别
type ErrorCategory string

const (
	// CategoryInput 调用方输入不合法，修正输入即可
	CategoryInput ErrorCategory = "input"
	// CategoryAuth 认证失败（MAC、校验和、网络版本），不应向不可信方暴露细节
	CategoryAuth ErrorCategory = "auth"
	// CategoryFormat 数据在结构上不支持所请求的能力
	CategoryFormat ErrorCategory = "format"
	// CategoryUnknown 非 ECC 错误
	CategoryUnknown ErrorCategory = "unknown"
)

// === 输入校验错误 ===
const (
	// ErrNoPublicKey 公钥为空
	ErrNoPublicKey = ErrorKind("ErrNoPublicKey")

	// ErrInvalidPrefix 公钥前缀既不是 0x04 也不是 0x02/0x03
	ErrInvalidPrefix = ErrorKind("ErrInvalidPrefix")

	// ErrInvalidLength 公钥、私钥、签名或密文长度不符合曲线要求
	ErrInvalidLength = ErrorKind("ErrInvalidLength")

	// ErrInvalidKey 密钥不在曲线上、超出阶范围，或解压结果与输入不一致
	ErrInvalidKey = ErrorKind("ErrInvalidKey")

	// ErrInvalidChildIndex 子密钥索引超出非硬化范围 [0, 2^31)
	ErrInvalidChildIndex = ErrorKind("ErrInvalidChildIndex")

	// ErrUnknownCurve 曲线名称不在支持列表中
	ErrUnknownCurve = ErrorKind("ErrUnknownCurve")

	// ErrUnsupportedMAC 未知的 MAC 算法
	ErrUnsupportedMAC = ErrorKind("ErrUnsupportedMAC")

	// ErrUnsupportedHash 未知的哈希/派生算法
	ErrUnsupportedHash = ErrorKind("ErrUnsupportedHash")

	// ErrUnsupportedAlgorithm 未知的对称加密算法
	ErrUnsupportedAlgorithm = ErrorKind("ErrUnsupportedAlgorithm")

	// ErrDigestTooShort 派生摘要长度小于对称算法所需的密钥长度
	ErrDigestTooShort = ErrorKind("ErrDigestTooShort")
)

// === 认证错误 ===
const (
	// ErrInvalidMAC 消息认证码不匹配，或认证后解密失败
	ErrInvalidMAC = ErrorKind("ErrInvalidMAC")

	// ErrInvalidChecksum base58check 校验和不匹配
	ErrInvalidChecksum = ErrorKind("ErrInvalidChecksum")

	// ErrInvalidNetwork 版本字节与期望的网络不符
	ErrInvalidNetwork = ErrorKind("ErrInvalidNetwork")
)

// === 格式错误 ===
const (
	// ErrNotRecoverable 签名不是可恢复格式，无法恢复公钥
	ErrNotRecoverable = ErrorKind("ErrNotRecoverable")
)

var kindCategories = map[ErrorKind]ErrorCategory{
	ErrNoPublicKey:          CategoryInput,
	ErrInvalidPrefix:        CategoryInput,
	ErrInvalidLength:        CategoryInput,
	ErrInvalidKey:           CategoryInput,
	ErrInvalidChildIndex:    CategoryInput,
	ErrUnknownCurve:         CategoryInput,
	ErrUnsupportedMAC:       CategoryInput,
	ErrUnsupportedHash:      CategoryInput,
	ErrUnsupportedAlgorithm: CategoryInput,
	ErrDigestTooShort:       CategoryInput,
	ErrInvalidMAC:           CategoryAuth,
	ErrInvalidChecksum:      CategoryAuth,
	ErrInvalidNetwork:       CategoryAuth,
	ErrNotRecoverable:       CategoryFormat,
}

// Category 返回错误类别
func (e ErrorKind) Category() ErrorCategory {
	if c, ok := kindCategories[e]; ok {
		return c
	}
	return CategoryUnknown
}

// ECCError 携带错误类别和描述的 ECC 错误
type ECCError struct {
	Err         error
	Description string
}

// Error 实现 error 接口
func (e ECCError) Error() string {
	return e.Description
}

// Unwrap 返回底层错误，使 errors.Is(err, ErrXxx) 生效
func (e ECCError) Unwrap() error {
	return e.Err
}

// NewECCError 根据错误类型和描述创建 ECCError
func NewECCError(kind ErrorKind, desc string) ECCError {
	return ECCError{Err: kind, Description: desc}
}

// ErrorCategoryOf 返回 err 所属的错误类别
//
// 调用方据此区分"输入错误"、"认证失败"与"格式不支持"，
// 例如认证失败时只向不可信方返回笼统的提示。
func ErrorCategoryOf(err error) ErrorCategory {
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind.Category()
	}
	return CategoryUnknown
}
