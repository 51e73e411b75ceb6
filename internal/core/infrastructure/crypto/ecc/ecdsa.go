package ecc

import (
	"fmt"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/curve"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/signature"
	"github.com/weisyn/ecc/pkg/types"
)

// Sign 先摘要后签名
//
// 默认摘要为 sha256，输出 r ‖ s；WithRecoverable 时输出 (31+recid) ‖ r ‖ s。
func (c *Curve) Sign(data, priv []byte, opts ...types.SignOption) ([]byte, error) {
	o := types.DefaultSignOptions()
	for _, opt := range opts {
		opt(&o)
	}

	digest, err := c.hasher.ApplyDigest(o.Hash, data)
	if err != nil {
		return nil, err
	}
	sig, err := c.backend.Sign(digest, priv, o.Recoverable, o.Entropy)
	if err != nil {
		return nil, err
	}
	c.logger.Debugf("签名完成: hash=%s recoverable=%t", o.Hash.Name, o.Recoverable)
	return sig, nil
}

// Verify 验证签名
//
// 接受 r ‖ s 与可恢复签名（忽略首字节）。长度不符返回 ErrInvalidLength，
// 签名合法但不匹配返回 (false, nil)。
func (c *Curve) Verify(sig, data, pub []byte, opts ...types.SignOption) (bool, error) {
	o := types.DefaultSignOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bare, err := c.stripRecovery(sig)
	if err != nil {
		return false, err
	}
	decoded, err := c.DecodeFixed(pub)
	if err != nil {
		return false, err
	}
	digest, err := c.hasher.ApplyDigest(o.Hash, data)
	if err != nil {
		return false, err
	}
	return c.backend.Verify(bare, digest, decoded)
}

// Recover 从可恢复签名恢复压缩公钥
//
// 签名长度必须是 1+2·SL，否则返回 ErrNotRecoverable。
func (c *Curve) Recover(sig, data []byte, opts ...types.SignOption) ([]byte, error) {
	o := types.DefaultSignOptions()
	for _, opt := range opts {
		opt(&o)
	}

	expected := 1 + 2*c.backend.ScalarLength()
	if len(sig) != expected {
		return nil, types.NewECCError(types.ErrNotRecoverable,
			fmt.Sprintf("recoverable signature must be %d bytes, got %d", expected, len(sig)))
	}
	if _, err := signature.ParseHeader(sig[0]); err != nil {
		return nil, err
	}

	digest, err := c.hasher.ApplyDigest(o.Hash, data)
	if err != nil {
		return nil, err
	}
	pub, err := c.backend.Recover(sig, digest)
	if err != nil {
		return nil, err
	}
	return curve.CompressPublicKey(pub), nil
}

// stripRecovery 接受 2·SL 或 1+2·SL 字节的签名，返回 r ‖ s
func (c *Curve) stripRecovery(sig []byte) ([]byte, error) {
	size := 2 * c.backend.ScalarLength()
	switch len(sig) {
	case size:
		return sig, nil
	case size + 1:
		return sig[1:], nil
	default:
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("signature must be %d or %d bytes, got %d", size, size+1, len(sig)))
	}
}
