package key

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"github.com/weisyn/ecc/pkg/types"
)

// 助记词熵位数：128(12词), 160(15词), 192(18词), 224(21词), 256(24词)
var validEntropyBits = map[int]bool{128: true, 160: true, 192: true, 224: true, 256: true}

// NewMnemonic 生成 BIP39 助记词
func NewMnemonic(bits int) (string, error) {
	if !validEntropyBits[bits] {
		return "", types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("entropy must be 128, 160, 192, 224 or 256 bits, got %d", bits))
	}

	entropy := make([]byte, bits/8)
	defer SecureWipe(entropy)
	if _, err := io.ReadFull(rand.Reader, entropy); err != nil {
		return "", fmt.Errorf("读取随机数失败: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// SeedFromMnemonic 校验助记词并派生 64 字节种子（PBKDF2-HMAC-SHA512，2048 轮）
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, types.NewECCError(types.ErrInvalidChecksum, "invalid bip39 mnemonic")
	}
	return bip39.NewSeed(mnemonic, passphrase), nil
}
