// Package secp256k1 提供 secp256k1 曲线后端
//
// 🎯 **设计目的**：
// 封装 decred/dcrd 与 btcd/btcec 的 secp256k1 实现，对外提供与通用后端一致的
// CurveBackend 接口。常数时间标量运算、RFC6979 nonce 与公钥恢复都由底层库完成。
//
// 🔒 **安全原则**：
// - 私钥进入底层库前先按阶范围校验
// - 中间标量使用后立即清零
package secp256k1

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	dsecp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/curve"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/signature"
	cryptointf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ecc/pkg/types"
)

const (
	// coordinateLength 域元素与标量长度
	coordinateLength = 32

	// compactHeaderCompressed 紧凑签名头部：27 + 4（压缩公钥）
	compactHeaderCompressed = signature.RecoveryHeaderBase + signature.CompressedFlag
)

// 确保Backend实现了cryptointf.CurveBackend接口
var _ cryptointf.CurveBackend = (*Backend)(nil)

// Backend secp256k1 曲线后端
type Backend struct {
	params *curve.Params
	format signature.Format
	rand   io.Reader
}

// NewBackend 创建 secp256k1 后端
func NewBackend() *Backend {
	params, err := curve.Lookup(types.CurveSecp256k1)
	if err != nil {
		// 参数表内置该曲线，查找不会失败
		panic(err)
	}
	return &Backend{
		params: params,
		format: signature.NewFormat(params.N),
		rand:   rand.Reader,
	}
}

// Name 曲线名称
func (b *Backend) Name() string {
	return types.CurveSecp256k1
}

// PublicKeyLength 域长度 L = 32
func (b *Backend) PublicKeyLength() int {
	return coordinateLength
}

// ScalarLength 阶长度 SL = 32
func (b *Backend) ScalarLength() int {
	return coordinateLength
}

// NewPrivateKey 生成新私钥
func (b *Backend) NewPrivateKey() ([]byte, error) {
	return key.RandomScalar(b.rand, b.params.N)
}

// PrivateToPublic 计算 priv·G
func (b *Backend) PrivateToPublic(priv []byte) (types.PublicKey, error) {
	privKey, err := b.parsePrivateKey(priv)
	if err != nil {
		return types.PublicKey{}, err
	}
	defer privKey.Zero()
	return toPublicKey(privKey.PubKey()), nil
}

// ECDH 计算 priv·Pub 的 X 坐标
func (b *Backend) ECDH(priv []byte, pub types.PublicKey) ([]byte, error) {
	privKey, err := b.parsePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	defer privKey.Zero()

	pubKey, err := parsePublicKey(pub)
	if err != nil {
		return nil, err
	}
	return dsecp.GenerateSharedSecret(privKey, pubKey), nil
}

// DecompressPoint 解压 0x02/0x03 ‖ x
func (b *Backend) DecompressPoint(compressed []byte) (types.PublicKey, error) {
	if len(compressed) != 1+coordinateLength {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("compressed point must be %d bytes, got %d", 1+coordinateLength, len(compressed)))
	}
	if compressed[0] != types.PubKeyPrefixEven && compressed[0] != types.PubKeyPrefixOdd {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidPrefix,
			fmt.Sprintf("invalid compressed point prefix 0x%02x", compressed[0]))
	}

	pubKey, err := btcec.ParsePubKey(compressed)
	if err != nil {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidKey,
			fmt.Sprintf("x coordinate is not on the curve: %v", err))
	}
	return toPublicKey(pubKey), nil
}

// IsOnCurve 判断点是否在曲线上
func (b *Backend) IsOnCurve(pub types.PublicKey) bool {
	_, err := parsePublicKey(pub)
	return err == nil
}

// Sign 对摘要进行 ECDSA 签名
//
// 无附加熵时直接使用 btcec 的紧凑签名；有附加熵时把熵作为 RFC6979 额外数据，
// 长度不是 32 字节的熵先经 SHA-256 压缩。
func (b *Backend) Sign(digest, priv []byte, recoverable bool, entropy []byte) ([]byte, error) {
	privKey, err := b.parsePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	defer privKey.Zero()

	digest = truncateDigest(digest)
	var compact []byte
	if len(entropy) == 0 {
		compact = ecdsa.SignCompact(privKey, digest, true)
	} else {
		compact = signWithEntropy(privKey, digest, entropy)
	}

	if recoverable {
		return compact, nil
	}
	out := make([]byte, 2*coordinateLength)
	copy(out, compact[1:])
	return out, nil
}

// signWithEntropy RFC6979 + 额外数据，返回 (31+recid) ‖ r ‖ s
func signWithEntropy(privKey *dsecp.PrivateKey, digest, entropy []byte) []byte {
	extra := entropy
	if len(extra) != sha256.Size {
		sum := sha256.Sum256(entropy)
		extra = sum[:]
	}

	privBytes := privKey.Key.Bytes()
	defer func() {
		for i := range privBytes {
			privBytes[i] = 0
		}
	}()

	var e dsecp.ModNScalar
	e.SetByteSlice(digest)

	for iteration := uint32(0); ; iteration++ {
		k := dsecp.NonceRFC6979(privBytes[:], digest, extra, nil, iteration)

		var kG dsecp.JacobianPoint
		dsecp.ScalarBaseMultNonConst(k, &kG)
		kG.ToAffine()

		// r = kG.x mod n
		var r dsecp.ModNScalar
		overflow := r.SetByteSlice(kG.X.Bytes()[:])
		if r.IsZero() {
			k.Zero()
			continue
		}
		recid := byte(0)
		if overflow {
			recid |= signature.RecoveryOverflowBit
		}
		if kG.Y.IsOdd() {
			recid |= signature.RecoveryOddBit
		}

		// s = k⁻¹(e + d·r) mod n
		kInv := new(dsecp.ModNScalar).InverseValNonConst(k)
		k.Zero()
		s := new(dsecp.ModNScalar).Mul2(&privKey.Key, &r).Add(&e).Mul(kInv)
		kInv.Zero()
		if s.IsZero() {
			continue
		}
		if s.IsOverHalfOrder() {
			s.Negate()
			recid ^= signature.RecoveryOddBit
		}

		out := make([]byte, 1+2*coordinateLength)
		out[0] = compactHeaderCompressed + recid
		rb := r.Bytes()
		sb := s.Bytes()
		copy(out[1:], rb[:])
		copy(out[1+coordinateLength:], sb[:])
		return out
	}
}

// Recover 从可恢复签名恢复公钥
func (b *Backend) Recover(sig, digest []byte) (types.PublicKey, error) {
	recid, r, s, err := b.format.ParseRecoverable(sig)
	if err != nil {
		return types.PublicKey{}, err
	}
	if !b.format.InRange(r, s) {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidKey, "signature r or s out of range")
	}

	// 统一为 btcec 紧凑签名头部
	compact := make([]byte, 1+2*coordinateLength)
	compact[0] = compactHeaderCompressed + recid
	copy(compact[1:], sig[1:])

	pubKey, _, err := ecdsa.RecoverCompact(compact, truncateDigest(digest))
	if err != nil {
		return types.PublicKey{}, types.NewECCError(types.ErrInvalidKey,
			fmt.Sprintf("public key recovery failed: %v", err))
	}
	return toPublicKey(pubKey), nil
}

// Verify 验证 r ‖ s 签名
func (b *Backend) Verify(sig, digest []byte, pub types.PublicKey) (bool, error) {
	if len(sig) != b.format.Length() {
		return false, &SignatureLengthError{Expected: b.format.Length(), Got: len(sig)}
	}
	pubKey, err := parsePublicKey(pub)
	if err != nil {
		return false, err
	}

	var r, s dsecp.ModNScalar
	if r.SetByteSlice(sig[:coordinateLength]) || r.IsZero() {
		return false, nil
	}
	if s.SetByteSlice(sig[coordinateLength:]) || s.IsZero() {
		return false, nil
	}
	return ecdsa.NewSignature(&r, &s).Verify(truncateDigest(digest), pubKey), nil
}

// DeriveChild 非硬化子密钥派生
func (b *Backend) DeriveChild(seed []byte, index uint32) ([]byte, error) {
	return curve.DeriveChild(b.params, seed, index, b.compressedPublicKey)
}

func (b *Backend) compressedPublicKey(priv []byte) ([]byte, error) {
	privKey, err := b.parsePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	defer privKey.Zero()
	return privKey.PubKey().SerializeCompressed(), nil
}

// parsePrivateKey 校验范围后构造底层私钥
func (b *Backend) parsePrivateKey(priv []byte) (*dsecp.PrivateKey, error) {
	d, err := key.ParseScalar(priv, b.params.N)
	if err != nil {
		return nil, err
	}
	key.WipeInt(d)
	return dsecp.PrivKeyFromBytes(priv), nil
}

// parsePublicKey 检查坐标长度并确认点在曲线上
func parsePublicKey(pub types.PublicKey) (*dsecp.PublicKey, error) {
	if len(pub.X) != coordinateLength || len(pub.Y) != coordinateLength {
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("public key coordinates must be %d bytes", coordinateLength))
	}
	var x, y dsecp.FieldVal
	if x.SetByteSlice(pub.X) || y.SetByteSlice(pub.Y) {
		return nil, types.NewECCError(types.ErrInvalidKey, "public key coordinate exceeds field prime")
	}
	pubKey := dsecp.NewPublicKey(&x, &y)
	if !pubKey.IsOnCurve() {
		return nil, types.NewECCError(types.ErrInvalidKey, "public key is not on the curve")
	}
	return pubKey, nil
}

func toPublicKey(pubKey *dsecp.PublicKey) types.PublicKey {
	raw := pubKey.SerializeUncompressed()
	return types.PublicKey{
		X: raw[1 : 1+coordinateLength],
		Y: raw[1+coordinateLength:],
	}
}

// truncateDigest 超过 32 字节的摘要只取最左 256 位
func truncateDigest(digest []byte) []byte {
	if len(digest) > coordinateLength {
		return digest[:coordinateLength]
	}
	return digest
}

// 错误类型定义

// SignatureLengthError 签名长度无效
type SignatureLengthError struct {
	Expected int
	Got      int
}

func (e *SignatureLengthError) Error() string {
	return fmt.Sprintf("无效的签名长度: 期望 %d 字节，实际 %d 字节", e.Expected, e.Got)
}

// Unwrap 使 errors.Is(err, types.ErrInvalidLength) 成立
func (e *SignatureLengthError) Unwrap() error {
	return types.ErrInvalidLength
}
