package metrics

import (
	"time"

	"github.com/weisyn/ecc/internal/core/infrastructure/clock"
	clockintf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/clock"
	cryptointf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	metricsintf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/metrics"
	"github.com/weisyn/ecc/pkg/types"
)

// 操作名称（op 标签取值）
const (
	OpNewPrivateKey    = "new_private_key"
	OpPrivateToPublic  = "private_to_public"
	OpPrivateToWIF     = "private_to_wif"
	OpWIFToPrivate     = "wif_to_private"
	OpPublicToAddress  = "public_to_address"
	OpPrivateToAddress = "private_to_address"
	OpEncodePublicKey  = "encode_public_key"
	OpDecodePublicKey  = "decode_public_key"
	OpDecompress       = "decompress_public_key"
	OpECDH             = "ecdh"
	OpEncrypt          = "encrypt"
	OpDecrypt          = "decrypt"
	OpSign             = "sign"
	OpVerify           = "verify"
	OpRecover          = "recover"
	OpDeriveChild      = "derive_child"
)

// InstrumentedCurve 在 EllipticCurve 外记录每次操作的耗时与结果
type InstrumentedCurve struct {
	next     cryptointf.EllipticCurve
	recorder metricsintf.OperationRecorder
	clock    clockintf.Clock
}

var _ cryptointf.EllipticCurve = (*InstrumentedCurve)(nil)

// Instrument 返回带指标上报的曲线；recorder 为 nil 时原样返回
func Instrument(curve cryptointf.EllipticCurve, recorder metricsintf.OperationRecorder) cryptointf.EllipticCurve {
	return InstrumentWithClock(curve, recorder, clock.NewSystemClock())
}

// InstrumentWithClock 同 Instrument，使用指定时钟计时
func InstrumentWithClock(curve cryptointf.EllipticCurve, recorder metricsintf.OperationRecorder, clk clockintf.Clock) cryptointf.EllipticCurve {
	if recorder == nil {
		return curve
	}
	return &InstrumentedCurve{next: curve, recorder: recorder, clock: clk}
}

// Unwrap 返回被装饰的曲线
func (c *InstrumentedCurve) Unwrap() cryptointf.EllipticCurve {
	return c.next
}

func (c *InstrumentedCurve) observe(op string, start time.Time, err error) {
	c.recorder.ObserveOperation(c.next.Name(), op, c.clock.Since(start), err)
}

// Name 曲线名称
func (c *InstrumentedCurve) Name() string { return c.next.Name() }

// PublicKeyLength 坐标字节长度
func (c *InstrumentedCurve) PublicKeyLength() int { return c.next.PublicKeyLength() }

// ScalarLength 标量字节长度
func (c *InstrumentedCurve) ScalarLength() int { return c.next.ScalarLength() }

func (c *InstrumentedCurve) NewPrivateKey() ([]byte, error) {
	start := c.clock.Now()
	priv, err := c.next.NewPrivateKey()
	c.observe(OpNewPrivateKey, start, err)
	return priv, err
}

func (c *InstrumentedCurve) PrivateToPublic(priv []byte) ([]byte, error) {
	start := c.clock.Now()
	pub, err := c.next.PrivateToPublic(priv)
	c.observe(OpPrivateToPublic, start, err)
	return pub, err
}

func (c *InstrumentedCurve) PrivateToWIF(priv []byte) (string, error) {
	start := c.clock.Now()
	wif, err := c.next.PrivateToWIF(priv)
	c.observe(OpPrivateToWIF, start, err)
	return wif, err
}

func (c *InstrumentedCurve) WIFToPrivate(wif string) ([]byte, error) {
	start := c.clock.Now()
	priv, err := c.next.WIFToPrivate(wif)
	c.observe(OpWIFToPrivate, start, err)
	return priv, err
}

func (c *InstrumentedCurve) PublicToAddress(pub []byte) (string, error) {
	start := c.clock.Now()
	addr, err := c.next.PublicToAddress(pub)
	c.observe(OpPublicToAddress, start, err)
	return addr, err
}

func (c *InstrumentedCurve) PrivateToAddress(priv []byte) (string, error) {
	start := c.clock.Now()
	addr, err := c.next.PrivateToAddress(priv)
	c.observe(OpPrivateToAddress, start, err)
	return addr, err
}

func (c *InstrumentedCurve) EncodePublicKey(pub types.PublicKey, compressed bool) ([]byte, error) {
	start := c.clock.Now()
	out, err := c.next.EncodePublicKey(pub, compressed)
	c.observe(OpEncodePublicKey, start, err)
	return out, err
}

func (c *InstrumentedCurve) DecodeFixed(b []byte) (types.PublicKey, error) {
	start := c.clock.Now()
	pub, err := c.next.DecodeFixed(b)
	c.observe(OpDecodePublicKey, start, err)
	return pub, err
}

func (c *InstrumentedCurve) DecodePrefix(b []byte) (types.PublicKey, int, error) {
	start := c.clock.Now()
	pub, n, err := c.next.DecodePrefix(b)
	c.observe(OpDecodePublicKey, start, err)
	return pub, n, err
}

func (c *InstrumentedCurve) DecompressPublicKey(pub []byte) ([]byte, error) {
	start := c.clock.Now()
	out, err := c.next.DecompressPublicKey(pub)
	c.observe(OpDecompress, start, err)
	return out, err
}

func (c *InstrumentedCurve) ECDH(priv, pub []byte) ([]byte, error) {
	start := c.clock.Now()
	secret, err := c.next.ECDH(priv, pub)
	c.observe(OpECDH, start, err)
	return secret, err
}

func (c *InstrumentedCurve) Encrypt(plaintext, pub []byte, opts ...types.EncryptOption) ([]byte, []byte, error) {
	start := c.clock.Now()
	ciphertext, key, err := c.next.Encrypt(plaintext, pub, opts...)
	c.observe(OpEncrypt, start, err)
	return ciphertext, key, err
}

func (c *InstrumentedCurve) Decrypt(ciphertext, priv []byte, opts ...types.EncryptOption) ([]byte, error) {
	start := c.clock.Now()
	plaintext, err := c.next.Decrypt(ciphertext, priv, opts...)
	c.observe(OpDecrypt, start, err)
	return plaintext, err
}

func (c *InstrumentedCurve) Sign(data, priv []byte, opts ...types.SignOption) ([]byte, error) {
	start := c.clock.Now()
	sig, err := c.next.Sign(data, priv, opts...)
	c.observe(OpSign, start, err)
	return sig, err
}

// Verify 签名不匹配 (false, nil) 按成功计数，只有输入错误计为失败
func (c *InstrumentedCurve) Verify(sig, data, pub []byte, opts ...types.SignOption) (bool, error) {
	start := c.clock.Now()
	ok, err := c.next.Verify(sig, data, pub, opts...)
	c.observe(OpVerify, start, err)
	return ok, err
}

func (c *InstrumentedCurve) Recover(sig, data []byte, opts ...types.SignOption) ([]byte, error) {
	start := c.clock.Now()
	pub, err := c.next.Recover(sig, data, opts...)
	c.observe(OpRecover, start, err)
	return pub, err
}

func (c *InstrumentedCurve) DeriveChild(seed []byte, index uint32) ([]byte, error) {
	start := c.clock.Now()
	child, err := c.next.DeriveChild(seed, index)
	c.observe(OpDeriveChild, start, err)
	return child, err
}
