package curve

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

// nonceGenerator 按 RFC 6979 以 HMAC-SHA256 产生确定性 nonce 序列
//
// 额外熵按 RFC 6979 §3.6 作为附加数据拼在 bits2octets(h1) 之后。
// 签名过程中 r 或 s 为零、或随机点 x 坐标溢出过多时，继续调用 next 取下一个候选值。
type nonceGenerator struct {
	n    *big.Int
	qlen int
	k, v []byte
}

func newNonceGenerator(c *Params, d *big.Int, digest, extra []byte) *nonceGenerator {
	rolen := c.ScalarLength

	// int2octets(x) ‖ bits2octets(h1) ‖ extra
	seed := make([]byte, 0, 2*rolen+len(extra))
	seed = append(seed, int2octets(d, rolen)...)
	h1 := hashToInt(digest, c.N)
	h1.Mod(h1, c.N)
	seed = append(seed, int2octets(h1, rolen)...)
	seed = append(seed, extra...)

	g := &nonceGenerator{
		n:    c.N,
		qlen: c.N.BitLen(),
		k:    make([]byte, sha256.Size),
		v:    make([]byte, sha256.Size),
	}
	for i := range g.v {
		g.v[i] = 0x01
	}

	// K = HMAC_K(V ‖ 0x00 ‖ seed)，V = HMAC_K(V)
	g.k = g.mac(g.k, g.v, []byte{0x00}, seed)
	g.v = g.mac(g.k, g.v)
	// K = HMAC_K(V ‖ 0x01 ‖ seed)，V = HMAC_K(V)
	g.k = g.mac(g.k, g.v, []byte{0x01}, seed)
	g.v = g.mac(g.k, g.v)

	for i := range seed {
		seed[i] = 0
	}
	return g
}

// next 返回下一个位于 [1, n-1] 的候选 nonce
func (g *nonceGenerator) next() *big.Int {
	for {
		var t []byte
		for len(t)*8 < g.qlen {
			g.v = g.mac(g.k, g.v)
			t = append(t, g.v...)
		}
		k := bitsToInt(t, g.qlen)

		// 无论是否可用都推进状态，保证后续调用得到新的候选值
		g.k = g.mac(g.k, g.v, []byte{0x00})
		g.v = g.mac(g.k, g.v)

		if k.Sign() > 0 && k.Cmp(g.n) < 0 {
			return k
		}
	}
}

func (g *nonceGenerator) mac(key []byte, parts ...[]byte) []byte {
	h := hmac.New(sha256.New, key)
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// bitsToInt 取 b 的最左 qlen 位作为整数
func bitsToInt(b []byte, qlen int) *big.Int {
	v := new(big.Int).SetBytes(b)
	if excess := len(b)*8 - qlen; excess > 0 {
		v.Rsh(v, uint(excess))
	}
	return v
}

// hashToInt 将摘要按 bits2int 截断到阶的位长，即 ECDSA 中的 e
func hashToInt(digest []byte, n *big.Int) *big.Int {
	return bitsToInt(digest, n.BitLen())
}

func int2octets(v *big.Int, rolen int) []byte {
	out := make([]byte, rolen)
	return v.FillBytes(out)
}
