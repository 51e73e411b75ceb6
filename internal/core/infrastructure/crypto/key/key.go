// Package key 提供与曲线无关的私钥辅助功能：标量生成与校验、定长编码、内存擦除
package key

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/weisyn/ecc/pkg/types"
)

// ScalarLength 返回阶 n 的字节长度
func ScalarLength(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

// RandomScalar 在 [1, n-1] 内均匀生成私钥
//
// 采用拒绝采样：读取与阶同位长的随机数，超出范围则重试，避免取模带来的偏差。
func RandomScalar(r io.Reader, n *big.Int) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	size := ScalarLength(n)
	excess := uint(size*8 - n.BitLen())
	buf := make([]byte, size)
	defer SecureWipe(buf)

	k := new(big.Int)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("读取随机数失败: %w", err)
		}
		// 屏蔽高于阶位长的比特，使接受率不低于 1/2
		buf[0] &= byte(0xff >> excess)
		k.SetBytes(buf)
		if k.Sign() > 0 && k.Cmp(n) < 0 {
			out := PadScalar(k, size)
			k.SetInt64(0)
			return out, nil
		}
	}
}

// ParseScalar 将定长大端私钥解析为整数并校验 1 <= k < n
func ParseScalar(priv []byte, n *big.Int) (*big.Int, error) {
	size := ScalarLength(n)
	if len(priv) != size {
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("private key must be %d bytes, got %d", size, len(priv)))
	}
	k := new(big.Int).SetBytes(priv)
	if k.Sign() == 0 || k.Cmp(n) >= 0 {
		return nil, types.NewECCError(types.ErrInvalidKey, "private key out of range [1, n-1]")
	}
	return k, nil
}

// PadScalar 将整数编码为 size 字节的大端定长形式（左侧补零）
func PadScalar(k *big.Int, size int) []byte {
	out := make([]byte, size)
	return k.FillBytes(out)
}

// SecureWipe 安全清除敏感数据
//
// 依次使用随机数据、全1、全0覆盖缓冲区。
func SecureWipe(data []byte) {
	if len(data) == 0 {
		return
	}

	// 第一阶段：随机数据覆盖
	randomData := make([]byte, len(data))
	rand.Read(randomData)
	copy(data, randomData)

	// 第二阶段：全1覆盖
	for i := range data {
		data[i] = 0xFF
	}

	// 第三阶段：全0覆盖（最终状态）
	for i := range data {
		data[i] = 0x00
	}

	// 清除临时随机数据
	for i := range randomData {
		randomData[i] = 0
	}
}

// WipeInt 清零大整数
func WipeInt(k *big.Int) {
	if k != nil {
		k.SetInt64(0)
	}
}
