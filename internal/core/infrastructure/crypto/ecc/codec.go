package ecc

import (
	"bytes"
	"fmt"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/curve"
	"github.com/weisyn/ecc/pkg/types"
)

// EncodePublicKey 将内部公钥编码为线格式
//
//	非压缩：0x04 ‖ x ‖ y
//	压缩：  0x02/0x03 ‖ x
func (c *Curve) EncodePublicKey(pub types.PublicKey, compressed bool) ([]byte, error) {
	size := c.backend.PublicKeyLength()
	if len(pub.X) != size || len(pub.Y) != size {
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("public key coordinates must be %d bytes", size))
	}
	if compressed {
		return curve.CompressPublicKey(pub), nil
	}
	return curve.UncompressPublicKey(pub), nil
}

// DecodeFixed 解码长度严格匹配的公钥
func (c *Curve) DecodeFixed(b []byte) (types.PublicKey, error) {
	pub, _, err := c.decode(b, true)
	return pub, err
}

// DecodePrefix 解码位于 b 开头的公钥，返回公钥与消耗的字节数
//
// ECIES 信封中临时公钥的长度取决于压缩形式，解密时据此定位密文起点。
func (c *Curve) DecodePrefix(b []byte) (types.PublicKey, int, error) {
	return c.decode(b, false)
}

// DecompressPublicKey 将任意线格式公钥转为非压缩格式
func (c *Curve) DecompressPublicKey(pub []byte) ([]byte, error) {
	decoded, err := c.DecodeFixed(pub)
	if err != nil {
		return nil, err
	}
	return curve.UncompressPublicKey(decoded), nil
}

func (c *Curve) decode(b []byte, exact bool) (types.PublicKey, int, error) {
	if len(b) == 0 {
		return types.PublicKey{}, 0, types.NewECCError(types.ErrNoPublicKey, "public key is empty")
	}

	size := c.backend.PublicKeyLength()
	var need int
	switch b[0] {
	case types.PubKeyPrefixUncompressed:
		need = 1 + 2*size
	case types.PubKeyPrefixEven, types.PubKeyPrefixOdd:
		need = 1 + size
	default:
		return types.PublicKey{}, 0, types.NewECCError(types.ErrInvalidPrefix,
			fmt.Sprintf("invalid public key prefix 0x%02x", b[0]))
	}

	if len(b) < need || (exact && len(b) != need) {
		return types.PublicKey{}, 0, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("public key with prefix 0x%02x must be %d bytes, got %d", b[0], need, len(b)))
	}

	if b[0] == types.PubKeyPrefixUncompressed {
		pub := types.PublicKey{
			X: append([]byte(nil), b[1:1+size]...),
			Y: append([]byte(nil), b[1+size:need]...),
		}
		if !c.backend.IsOnCurve(pub) {
			return types.PublicKey{}, 0, types.NewECCError(types.ErrInvalidKey, "public key is not on the curve")
		}
		return pub, need, nil
	}

	pub, err := c.backend.DecompressPoint(b[:need])
	if err != nil {
		return types.PublicKey{}, 0, err
	}
	// 解压结果的 x 必须与输入一致
	if !bytes.Equal(pub.X, b[1:need]) {
		return types.PublicKey{}, 0, types.NewECCError(types.ErrInvalidKey, "decompressed x does not match the encoded x")
	}
	return pub, need, nil
}
