package curve

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/signature"
	cryptointf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ecc/pkg/types"
)

// 确保Backend实现了cryptointf.CurveBackend接口
var _ cryptointf.CurveBackend = (*Backend)(nil)

// Backend 基于参数表的通用短 Weierstrass 曲线后端
//
// 无可变状态，可在多个 goroutine 间共享。
type Backend struct {
	params *Params
	format signature.Format
	rand   io.Reader
}

// NewBackend 创建绑定到 params 的后端
func NewBackend(params *Params) *Backend {
	return &Backend{
		params: params,
		format: signature.NewFormat(params.N),
		rand:   rand.Reader,
	}
}

// Params 返回曲线参数
func (b *Backend) Params() *Params {
	return b.params
}

// Name 曲线名称
func (b *Backend) Name() string {
	return b.params.Name
}

// PublicKeyLength 域长度 L
func (b *Backend) PublicKeyLength() int {
	return b.params.FieldLength
}

// ScalarLength 阶长度 SL
func (b *Backend) ScalarLength() int {
	return b.params.ScalarLength
}

// NewPrivateKey 生成 [1, n-1] 内均匀分布的私钥
func (b *Backend) NewPrivateKey() ([]byte, error) {
	return key.RandomScalar(b.rand, b.params.N)
}

// PrivateToPublic 计算 priv·G
func (b *Backend) PrivateToPublic(priv []byte) (types.PublicKey, error) {
	d, err := key.ParseScalar(priv, b.params.N)
	if err != nil {
		return types.PublicKey{}, err
	}
	defer key.WipeInt(d)

	x, y := b.params.ScalarBaseMult(d)
	return b.toPublicKey(x, y), nil
}

// ECDH 计算 priv·Pub 的 X 坐标
func (b *Backend) ECDH(priv []byte, pub types.PublicKey) ([]byte, error) {
	d, err := key.ParseScalar(priv, b.params.N)
	if err != nil {
		return nil, err
	}
	defer key.WipeInt(d)

	px, py, err := b.parsePublicKey(pub)
	if err != nil {
		return nil, err
	}

	sx, sy := b.params.ScalarMult(px, py, d)
	if sx.Sign() == 0 && sy.Sign() == 0 {
		return nil, types.NewECCError(types.ErrInvalidKey, "shared point is at infinity")
	}
	secret := key.PadScalar(sx, b.params.FieldLength)
	sx.SetInt64(0)
	sy.SetInt64(0)
	return secret, nil
}

// DecompressPoint 解压 0x02/0x03 ‖ x
func (b *Backend) DecompressPoint(compressed []byte) (types.PublicKey, error) {
	size := 1 + b.params.FieldLength
	if len(compressed) != size {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("compressed point must be %d bytes, got %d", size, len(compressed)))
	}
	prefix := compressed[0]
	if prefix != types.PubKeyPrefixEven && prefix != types.PubKeyPrefixOdd {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidPrefix,
			fmt.Sprintf("invalid compressed point prefix 0x%02x", prefix))
	}

	x := new(big.Int).SetBytes(compressed[1:])
	y, ok := b.params.DecompressY(x, prefix == types.PubKeyPrefixOdd)
	if !ok {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidKey, "x coordinate is not on the curve")
	}
	return b.toPublicKey(x, y), nil
}

// IsOnCurve 判断点是否在曲线上
func (b *Backend) IsOnCurve(pub types.PublicKey) bool {
	_, _, err := b.parsePublicKey(pub)
	return err == nil
}

// Sign 对摘要进行 ECDSA 签名，nonce 由 RFC 6979 确定
//
// 随机点 x 坐标不小于 2n 时无法用两位 recid 表示，此时取下一个 nonce。
// 只有余因子大于 1 的曲线可能出现这种情况。
func (b *Backend) Sign(digest, priv []byte, recoverable bool, entropy []byte) ([]byte, error) {
	c := b.params
	d, err := key.ParseScalar(priv, c.N)
	if err != nil {
		return nil, err
	}
	defer key.WipeInt(d)

	e := hashToInt(digest, c.N)
	nonces := newNonceGenerator(c, d, digest, entropy)
	defer func() {
		key.SecureWipe(nonces.k)
		key.SecureWipe(nonces.v)
	}()

	for {
		k := nonces.next()
		rx, ry := c.ScalarBaseMult(k)
		if rx.Sign() == 0 && ry.Sign() == 0 {
			continue
		}

		overflow, r := new(big.Int).DivMod(rx, c.N, new(big.Int))
		if r.Sign() == 0 || overflow.Cmp(big.NewInt(1)) > 0 {
			key.WipeInt(k)
			continue
		}
		recid := byte(overflow.Int64()<<1) | byte(ry.Bit(0))

		// s = k⁻¹(e + r·d) mod n
		s := new(big.Int).Mul(r, d)
		s.Add(s, e)
		kInv := new(big.Int).ModInverse(k, c.N)
		s.Mul(s, kInv)
		s.Mod(s, c.N)
		key.WipeInt(k)
		key.WipeInt(kInv)
		if s.Sign() == 0 {
			continue
		}

		s, flipped := b.format.NormalizeS(s)
		if flipped {
			// -k 对应的随机点 y 坐标奇偶性相反
			recid ^= signature.RecoveryOddBit
		}

		if recoverable {
			return b.format.EncodeRecoverable(r, s, recid), nil
		}
		return b.format.Encode(r, s), nil
	}
}

// Recover 从可恢复签名恢复公钥：Q = r⁻¹(sR - eG)
func (b *Backend) Recover(sig, digest []byte) (types.PublicKey, error) {
	c := b.params
	recid, r, s, err := b.format.ParseRecoverable(sig)
	if err != nil {
		return types.PublicKey{}, err
	}
	if !b.format.InRange(r, s) {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidKey, "signature r or s out of range")
	}

	x := new(big.Int).Set(r)
	if recid&signature.RecoveryOverflowBit != 0 {
		x.Add(x, c.N)
	}
	ry, ok := c.DecompressY(x, recid&signature.RecoveryOddBit != 0)
	if !ok {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidKey, "signature r is not a curve point")
	}

	e := hashToInt(digest, c.N)
	rInv := new(big.Int).ModInverse(r, c.N)

	// u1 = -e·r⁻¹，u2 = s·r⁻¹
	u1 := new(big.Int).Mul(e, rInv)
	u1.Neg(u1)
	u1.Mod(u1, c.N)
	u2 := new(big.Int).Mul(s, rInv)
	u2.Mod(u2, c.N)

	q := c.combinedMult(x, ry, u1, u2)
	if q.isInfinity() {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidKey, "recovered point is at infinity")
	}
	qx, qy := c.toAffine(q)
	return b.toPublicKey(qx, qy), nil
}

// Verify 验证 r ‖ s 签名
func (b *Backend) Verify(sig, digest []byte, pub types.PublicKey) (bool, error) {
	c := b.params
	r, s, err := b.format.Parse(sig)
	if err != nil {
		return false, err
	}
	px, py, err := b.parsePublicKey(pub)
	if err != nil {
		return false, err
	}
	if !b.format.InRange(r, s) {
		return false, nil
	}

	e := hashToInt(digest, c.N)
	w := new(big.Int).ModInverse(s, c.N)
	u1 := new(big.Int).Mul(e, w)
	u1.Mod(u1, c.N)
	u2 := new(big.Int).Mul(r, w)
	u2.Mod(u2, c.N)

	pt := c.combinedMult(px, py, u1, u2)
	if pt.isInfinity() {
		return false, nil
	}
	x, _ := c.toAffine(pt)
	x.Mod(x, c.N)
	return x.Cmp(r) == 0, nil
}

// DeriveChild 非硬化子密钥派生
func (b *Backend) DeriveChild(seed []byte, index uint32) ([]byte, error) {
	return DeriveChild(b.params, seed, index, b.compressedPublicKey)
}

func (b *Backend) compressedPublicKey(priv []byte) ([]byte, error) {
	pub, err := b.PrivateToPublic(priv)
	if err != nil {
		return nil, err
	}
	return CompressPublicKey(pub), nil
}

// parsePublicKey 检查坐标长度并确认点在曲线上
func (b *Backend) parsePublicKey(pub types.PublicKey) (*big.Int, *big.Int, error) {
	size := b.params.FieldLength
	if len(pub.X) != size || len(pub.Y) != size {
		return nil, nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("public key coordinates must be %d bytes", size))
	}
	x := new(big.Int).SetBytes(pub.X)
	y := new(big.Int).SetBytes(pub.Y)
	if !b.params.IsOnCurve(x, y) {
		return nil, nil, types.NewECCError(types.ErrInvalidKey, "public key is not on the curve")
	}
	return x, y, nil
}

func (b *Backend) toPublicKey(x, y *big.Int) types.PublicKey {
	return types.PublicKey{
		X: key.PadScalar(x, b.params.FieldLength),
		Y: key.PadScalar(y, b.params.FieldLength),
	}
}

// CompressPublicKey 将公钥编码为 0x02/0x03 ‖ x
func CompressPublicKey(pub types.PublicKey) []byte {
	out := make([]byte, 1+len(pub.X))
	out[0] = types.PubKeyPrefixEven
	if len(pub.Y) > 0 && pub.Y[len(pub.Y)-1]&1 == 1 {
		out[0] = types.PubKeyPrefixOdd
	}
	copy(out[1:], pub.X)
	return out
}

// UncompressPublicKey 将公钥编码为 0x04 ‖ x ‖ y
func UncompressPublicKey(pub types.PublicKey) []byte {
	out := make([]byte, 0, 1+len(pub.X)+len(pub.Y))
	out = append(out, types.PubKeyPrefixUncompressed)
	out = append(out, pub.X...)
	return append(out, pub.Y...)
}
