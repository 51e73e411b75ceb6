package curve

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
	"github.com/weisyn/ecc/pkg/types"
)

const (
	// HardenedKeyStart 硬化索引起点，不支持硬化派生
	HardenedKeyStart = uint32(0x80000000)

	// bip32FullOrderBits 阶位长不低于该值时按 BIP32 拒绝 IL >= n
	bip32FullOrderBits = 256
)

var masterKeySalt = []byte("Bitcoin seed")

// CompressFunc 计算私钥对应的压缩公钥
type CompressFunc func(priv []byte) ([]byte, error)

// DeriveChild BIP32 风格的非硬化子私钥派生
//
//	I  = HMAC-SHA512("Bitcoin seed", seed)，k = parse(I[:32])
//	I2 = HMAC-SHA512(I[32:], compressed(k·G) ‖ ser32(index))
//	child = (k + parse(I2[:32])) mod n
//
// 阶小于 256 位的曲线上，32 字节的 IL 对 n 取模。
func DeriveChild(c *Params, seed []byte, index uint32, compress CompressFunc) ([]byte, error) {
	if index >= HardenedKeyStart {
		return nil, types.NewECCError(types.ErrInvalidChildIndex,
			fmt.Sprintf("child index %d is hardened, only [0, 2^31) is supported", index))
	}

	hasher := hash.NewHashService()
	master := hasher.HMACSHA512(masterKeySalt, seed)
	defer key.SecureWipe(master)

	k, err := parseIL(master[:32], c.N, false)
	if err != nil {
		return nil, err
	}
	defer key.WipeInt(k)

	masterKey := key.PadScalar(k, c.ScalarLength)
	defer key.SecureWipe(masterKey)
	pub, err := compress(masterKey)
	if err != nil {
		return nil, err
	}

	data := make([]byte, len(pub)+4)
	copy(data, pub)
	binary.BigEndian.PutUint32(data[len(pub):], index)
	child := hasher.HMACSHA512(master[32:], data)
	defer key.SecureWipe(child)

	tweak, err := parseIL(child[:32], c.N, true)
	if err != nil {
		return nil, err
	}
	defer key.WipeInt(tweak)

	derived := new(big.Int).Add(k, tweak)
	derived.Mod(derived, c.N)
	defer key.WipeInt(derived)
	if derived.Sign() == 0 {
		return nil, types.NewECCError(types.ErrInvalidKey, "derived child key is zero")
	}
	return key.PadScalar(derived, c.ScalarLength), nil
}

func parseIL(il []byte, n *big.Int, allowZero bool) (*big.Int, error) {
	v := new(big.Int).SetBytes(il)
	if n.BitLen() >= bip32FullOrderBits {
		if v.Cmp(n) >= 0 {
			return nil, types.NewECCError(types.ErrInvalidKey, "derived key material is not less than the curve order")
		}
	} else {
		v.Mod(v, n)
	}
	if !allowZero && v.Sign() == 0 {
		return nil, types.NewECCError(types.ErrInvalidKey, "derived master key is zero")
	}
	return v, nil
}
