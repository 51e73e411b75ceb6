// Package signature 提供与曲线无关的 ECDSA 签名编码：r ‖ s 定长格式、
// 可恢复签名头字节、低S规范化与范围校验。
//
// 可恢复签名格式：
//
//	header(1) ‖ r(SL) ‖ s(SL)，header = 27 + 4 + recid
//
// 其中 4 为压缩公钥标记，recid 的 bit0 表示随机点 y 为奇数，
// bit1 表示随机点 x 坐标不小于阶 n。
package signature

import (
	"fmt"
	"math/big"

	"github.com/weisyn/ecc/pkg/types"
)

const (
	// RecoveryHeaderBase 可恢复签名头字节的起始值
	RecoveryHeaderBase = 27
	// CompressedFlag 压缩公钥标记
	CompressedFlag = 4
	// MaxRecoveryID recid 最大值
	MaxRecoveryID = 3

	// RecoveryOddBit 随机点 y 为奇数
	RecoveryOddBit = 1 << 0
	// RecoveryOverflowBit 随机点 x >= n
	RecoveryOverflowBit = 1 << 1
)

// Format 绑定某条曲线阶的签名编解码器
type Format struct {
	n            *big.Int
	halfN        *big.Int
	scalarLength int
}

// NewFormat 以曲线阶 n 创建编解码器，r、s 各占 ceil(bits(n)/8) 字节
func NewFormat(n *big.Int) Format {
	return Format{
		n:            n,
		halfN:        new(big.Int).Rsh(n, 1),
		scalarLength: (n.BitLen() + 7) / 8,
	}
}

// ScalarLength r、s 的字节长度 SL
func (f Format) ScalarLength() int {
	return f.scalarLength
}

// Length r ‖ s 签名长度（2·SL）
func (f Format) Length() int {
	return 2 * f.scalarLength
}

// RecoverableLength 可恢复签名长度（1+2·SL）
func (f Format) RecoverableLength() int {
	return 1 + 2*f.scalarLength
}

// Encode 编码 r ‖ s
func (f Format) Encode(r, s *big.Int) []byte {
	out := make([]byte, f.Length())
	r.FillBytes(out[:f.scalarLength])
	s.FillBytes(out[f.scalarLength:])
	return out
}

// EncodeRecoverable 编码 (31+recid) ‖ r ‖ s
func (f Format) EncodeRecoverable(r, s *big.Int, recid byte) []byte {
	out := make([]byte, f.RecoverableLength())
	out[0] = RecoveryHeaderBase + CompressedFlag + recid
	r.FillBytes(out[1 : 1+f.scalarLength])
	s.FillBytes(out[1+f.scalarLength:])
	return out
}

// Parse 解析 r ‖ s；长度必须严格为 2·SL
func (f Format) Parse(sig []byte) (*big.Int, *big.Int, error) {
	if len(sig) != f.Length() {
		return nil, nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("signature must be %d bytes, got %d", f.Length(), len(sig)))
	}
	r := new(big.Int).SetBytes(sig[:f.scalarLength])
	s := new(big.Int).SetBytes(sig[f.scalarLength:])
	return r, s, nil
}

// ParseRecoverable 解析可恢复签名
//
// 长度不是 1+2·SL 时返回 ErrNotRecoverable；头字节不在 27..34 时返回 ErrInvalidKey。
func (f Format) ParseRecoverable(sig []byte) (byte, *big.Int, *big.Int, error) {
	if len(sig) != f.RecoverableLength() {
		return 0, nil, nil, types.NewECCError(types.ErrNotRecoverable,
			fmt.Sprintf("recoverable signature must be %d bytes, got %d", f.RecoverableLength(), len(sig)))
	}
	recid, err := ParseHeader(sig[0])
	if err != nil {
		return 0, nil, nil, err
	}
	r, s, err := f.Parse(sig[1:])
	if err != nil {
		return 0, nil, nil, err
	}
	return recid, r, s, nil
}

// StripRecovery 接受 2·SL 或 1+2·SL 字节的签名，返回 r ‖ s 部分
func (f Format) StripRecovery(sig []byte) ([]byte, error) {
	switch len(sig) {
	case f.Length():
		return sig, nil
	case f.RecoverableLength():
		return sig[1:], nil
	default:
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("signature must be %d or %d bytes, got %d", f.Length(), f.RecoverableLength(), len(sig)))
	}
}

// ParseHeader 将头字节解析为 recid
func ParseHeader(header byte) (byte, error) {
	if header < RecoveryHeaderBase || header > RecoveryHeaderBase+CompressedFlag+MaxRecoveryID {
		return 0, types.NewECCError(types.ErrInvalidKey,
			fmt.Sprintf("invalid recovery header %d", header))
	}
	recid := header - RecoveryHeaderBase
	if recid >= CompressedFlag {
		recid -= CompressedFlag
	}
	return recid, nil
}

// InRange 判断 r、s 均在 [1, n-1] 内
func (f Format) InRange(r, s *big.Int) bool {
	return r.Sign() > 0 && r.Cmp(f.n) < 0 && s.Sign() > 0 && s.Cmp(f.n) < 0
}

// IsLowS 判断 s <= n/2
func (f Format) IsLowS(s *big.Int) bool {
	return s.Cmp(f.halfN) <= 0
}

// NormalizeS 规范化为低S值：如果 s > n/2，则使用 s = n - s
//
// 返回规范化后的 s 以及是否发生了取反；取反时调用方需翻转 recid 的奇偶位。
func (f Format) NormalizeS(s *big.Int) (*big.Int, bool) {
	if f.IsLowS(s) {
		return s, false
	}
	return new(big.Int).Sub(f.n, s), true
}

// Normalize 规范化 r ‖ s 签名
func (f Format) Normalize(sig []byte) ([]byte, error) {
	r, s, err := f.Parse(sig)
	if err != nil {
		return nil, err
	}
	s, _ = f.NormalizeS(s)
	return f.Encode(r, s), nil
}
