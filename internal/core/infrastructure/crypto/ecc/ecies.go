package ecc

import (
	"errors"
	"fmt"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/curve"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/encryption"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
	"github.com/weisyn/ecc/pkg/types"
)

// ECDH 计算未经摘要的共享秘密（priv·Pub 的 X 坐标）
func (c *Curve) ECDH(priv, pub []byte) ([]byte, error) {
	decoded, err := c.DecodeFixed(pub)
	if err != nil {
		return nil, err
	}
	return c.backend.ECDH(priv, decoded)
}

// Encrypt ECIES 加密
//
// 信封格式：iv(16) ‖ 压缩临时公钥 ‖ 密文 ‖ MAC标签
//
//	S     = ECDH(e, Pub)
//	km    = Digest(S)，k_enc = km[:N]，k_mac = km[N:]
//	tag   = MAC(k_mac, iv ‖ e·G ‖ 密文)
//
// 设置 WithReturnKey 时第二个返回值为 k_enc，否则为 nil。
func (c *Curve) Encrypt(plaintext, pub []byte, opts ...types.EncryptOption) ([]byte, []byte, error) {
	o := types.DefaultEncryptOptions()
	for _, opt := range opts {
		opt(&o)
	}

	keyLen, err := c.cipher.KeyLength(o.Algorithm)
	if err != nil {
		return nil, nil, err
	}
	if _, err := hash.MACSize(o.MAC); err != nil {
		return nil, nil, err
	}
	recipient, err := c.DecodeFixed(pub)
	if err != nil {
		return nil, nil, err
	}

	// 1. 临时密钥
	ephemeral, err := c.backend.NewPrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("生成临时密钥失败: %w", err)
	}
	defer key.SecureWipe(ephemeral)

	ephemeralPub, err := c.backend.PrivateToPublic(ephemeral)
	if err != nil {
		return nil, nil, err
	}

	// 2-3. 共享秘密与密钥派生
	kEnc, kMac, km, err := c.deriveKeys(ephemeral, recipient, o, keyLen)
	if err != nil {
		return nil, nil, err
	}
	defer key.SecureWipe(km)

	// 4. 对称加密
	body, iv, err := c.cipher.Encrypt(plaintext, kEnc, o.Algorithm)
	if err != nil {
		return nil, nil, err
	}

	// 5. 组装信封
	compressed := curve.CompressPublicKey(ephemeralPub)
	envelope := make([]byte, 0, len(iv)+len(compressed)+len(body))
	envelope = append(envelope, iv...)
	envelope = append(envelope, compressed...)
	envelope = append(envelope, body...)

	// 6-7. 追加 MAC 标签
	tag, err := c.hasher.ComputeMAC(o.MAC, kMac, envelope)
	if err != nil {
		return nil, nil, err
	}
	out := append(envelope, tag...)

	var returned []byte
	if o.ReturnKey {
		returned = append([]byte(nil), kEnc...)
	}

	c.logger.Debugf("ECIES加密完成: algo=%s derivation=%s mac=%s size=%d",
		o.Algorithm, o.Derivation.Name, o.MAC.Name, len(out))
	return out, returned, nil
}

// Decrypt ECIES 解密
//
// 先在常量时间内校验 MAC，校验通过后才解密载荷。
func (c *Curve) Decrypt(ciphertext, priv []byte, opts ...types.EncryptOption) ([]byte, error) {
	o := types.DefaultEncryptOptions()
	for _, opt := range opts {
		opt(&o)
	}

	tagSize, err := hash.MACSize(o.MAC)
	if err != nil {
		return nil, err
	}
	keyLen, err := c.cipher.KeyLength(o.Algorithm)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < tagSize+encryption.IVSize {
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("ciphertext too short: %d bytes", len(ciphertext)))
	}

	envelope := ciphertext[:len(ciphertext)-tagSize]
	tag := ciphertext[len(ciphertext)-tagSize:]
	iv := envelope[:encryption.IVSize]

	// 临时公钥受 MAC 保护，解码失败与 MAC 不匹配同样视为认证失败
	ephemeralPub, consumed, err := c.DecodePrefix(envelope[encryption.IVSize:])
	if err != nil {
		return nil, types.NewECCError(types.ErrInvalidMAC,
			fmt.Sprintf("invalid ephemeral public key: %v", err))
	}
	body := envelope[encryption.IVSize+consumed:]

	kEnc, kMac, km, err := c.deriveKeys(priv, ephemeralPub, o, keyLen)
	if err != nil {
		return nil, err
	}
	defer key.SecureWipe(km)

	expected, err := c.hasher.ComputeMAC(o.MAC, kMac, envelope)
	if err != nil {
		return nil, err
	}
	if !hash.ConstantTimeCompare(expected, tag) {
		c.logger.Debugf("ECIES解密失败: MAC不匹配 mac=%s", o.MAC.Name)
		return nil, types.NewECCError(types.ErrInvalidMAC, "message authentication failed")
	}

	plaintext, err := c.cipher.Decrypt(body, iv, kEnc, o.Algorithm)
	if err != nil {
		if errors.Is(err, encryption.ErrInvalidPadding) {
			return nil, types.NewECCError(types.ErrInvalidMAC, "decryption failed")
		}
		return nil, err
	}
	return plaintext, nil
}

// deriveKeys 计算共享秘密并派生 k_enc、k_mac
//
// 返回的 km 是两者的底层缓冲区，调用方负责擦除。
func (c *Curve) deriveKeys(priv []byte, pub types.PublicKey, o types.EncryptOptions, keyLen int) (kEnc, kMac, km []byte, err error) {
	shared, err := c.backend.ECDH(priv, pub)
	if err != nil {
		return nil, nil, nil, err
	}
	defer key.SecureWipe(shared)

	derived, err := c.hasher.ApplyDigest(o.Derivation, shared)
	if err != nil {
		return nil, nil, nil, err
	}
	// 回调摘要可能返回与输入共享的缓冲区
	km = append([]byte(nil), derived...)
	if !o.Derivation.IsCustom() {
		key.SecureWipe(derived)
	}
	if len(km) < keyLen {
		key.SecureWipe(km)
		return nil, nil, nil, types.NewECCError(types.ErrDigestTooShort,
			fmt.Sprintf("derived key material is %d bytes, %s needs %d", len(km), o.Algorithm, keyLen))
	}
	return km[:keyLen], km[keyLen:], km, nil
}
