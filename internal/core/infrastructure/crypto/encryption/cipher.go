package encryption

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"golang.org/x/crypto/chacha20"

	cryptointf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ecc/pkg/types"
)

// IVSize 所有算法统一使用 16 字节 IV
const IVSize = 16

// ErrInvalidPadding PKCS#7 填充无效（通常意味着密钥错误或密文被篡改）
var ErrInvalidPadding = errors.New("invalid pkcs7 padding")

type cipherMode int

const (
	modeCBC cipherMode = iota
	modeCTR
	modeCFB
	modeOFB
	modeChaCha20
)

type algoSpec struct {
	keyLen int
	mode   cipherMode
}

// 算法表，名称遵循 OpenSSL 约定
var algorithms = map[string]algoSpec{
	types.CipherAES128CBC: {16, modeCBC},
	types.CipherAES192CBC: {24, modeCBC},
	types.CipherAES256CBC: {32, modeCBC},
	types.CipherAES128CTR: {16, modeCTR},
	types.CipherAES256CTR: {32, modeCTR},
	types.CipherAES128CFB: {16, modeCFB},
	types.CipherAES256CFB: {32, modeCFB},
	types.CipherAES128OFB: {16, modeOFB},
	types.CipherAES256OFB: {32, modeOFB},
	types.CipherChaCha20:  {chacha20.KeySize, modeChaCha20},
}

// CipherService 提供 ECIES 载荷加密所需的对称加密
type CipherService struct {
	rand io.Reader
}

// NewCipherService 创建对称加密服务
func NewCipherService() *CipherService {
	return &CipherService{rand: rand.Reader}
}

// KeyLength 返回算法所需的密钥长度
func (s *CipherService) KeyLength(algo string) (int, error) {
	spec, err := lookup(algo)
	if err != nil {
		return 0, err
	}
	return spec.keyLen, nil
}

// Algorithms 返回支持的算法名称
func (s *CipherService) Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encrypt 生成随机 IV 并加密
func (s *CipherService) Encrypt(plaintext, key []byte, algo string) ([]byte, []byte, error) {
	spec, err := lookup(algo)
	if err != nil {
		return nil, nil, err
	}
	if err := checkKey(spec, key, algo); err != nil {
		return nil, nil, err
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(s.rand, iv); err != nil {
		return nil, nil, fmt.Errorf("生成IV失败: %w", err)
	}
	if spec.mode == modeChaCha20 {
		// 计数器从 0 开始，避免随机计数器在长消息上溢出
		binary.LittleEndian.PutUint32(iv[:4], 0)
	}

	ciphertext, err := crypt(spec, key, iv, plaintext, true)
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, iv, nil
}

// Decrypt 使用给定 IV 解密
func (s *CipherService) Decrypt(ciphertext, iv, key []byte, algo string) ([]byte, error) {
	spec, err := lookup(algo)
	if err != nil {
		return nil, err
	}
	if err := checkKey(spec, key, algo); err != nil {
		return nil, err
	}
	if len(iv) != IVSize {
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("iv must be %d bytes, got %d", IVSize, len(iv)))
	}
	return crypt(spec, key, iv, ciphertext, false)
}

func lookup(algo string) (algoSpec, error) {
	spec, ok := algorithms[algo]
	if !ok {
		return algoSpec{}, types.NewECCError(types.ErrUnsupportedAlgorithm,
			fmt.Sprintf("unsupported cipher algorithm %q", algo))
	}
	return spec, nil
}

func checkKey(spec algoSpec, key []byte, algo string) error {
	if len(key) != spec.keyLen {
		return types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("%s requires a %d-byte key, got %d", algo, spec.keyLen, len(key)))
	}
	return nil
}

func crypt(spec algoSpec, key, iv, in []byte, encrypt bool) ([]byte, error) {
	if spec.mode == modeChaCha20 {
		return chachaXOR(key, iv, in)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("创建AES加密器失败: %w", err)
	}

	switch spec.mode {
	case modeCBC:
		if encrypt {
			padded := pkcs7Pad(in, aes.BlockSize)
			out := make([]byte, len(padded))
			cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
			return out, nil
		}
		if len(in) == 0 || len(in)%aes.BlockSize != 0 {
			return nil, types.NewECCError(types.ErrInvalidLength,
				fmt.Sprintf("cbc ciphertext length %d is not a positive multiple of %d", len(in), aes.BlockSize))
		}
		out := make([]byte, len(in))
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, in)
		return pkcs7Unpad(out, aes.BlockSize)

	case modeCTR:
		out := make([]byte, len(in))
		cipher.NewCTR(block, iv).XORKeyStream(out, in)
		return out, nil

	case modeCFB:
		var stream cipher.Stream
		if encrypt {
			stream = cipher.NewCFBEncrypter(block, iv)
		} else {
			stream = cipher.NewCFBDecrypter(block, iv)
		}
		out := make([]byte, len(in))
		stream.XORKeyStream(out, in)
		return out, nil

	case modeOFB:
		out := make([]byte, len(in))
		cipher.NewOFB(block, iv).XORKeyStream(out, in)
		return out, nil
	}

	return nil, fmt.Errorf("unknown cipher mode %d", spec.mode)
}

// chachaXOR 按 OpenSSL 约定解释 16 字节 IV：4 字节小端计数器 ‖ 12 字节 nonce
func chachaXOR(key, iv, in []byte) ([]byte, error) {
	counter := binary.LittleEndian.Uint32(iv[:4])
	blocks := (uint64(len(in)) + 63) / 64
	if uint64(counter)+blocks > 1<<32 {
		return nil, types.NewECCError(types.ErrInvalidLength, "chacha20 counter would overflow")
	}

	c, err := chacha20.NewUnauthenticatedCipher(key, iv[4:])
	if err != nil {
		return nil, fmt.Errorf("创建ChaCha20加密器失败: %w", err)
	}
	c.SetCounter(counter)

	out := make([]byte, len(in))
	c.XORKeyStream(out, in)
	return out, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(append(make([]byte, 0, len(data)+padding), data...), bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := len(data)
	padding := int(data[n-1])
	if padding == 0 || padding > blockSize || padding > n {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[n-padding:] {
		if int(b) != padding {
			return nil, ErrInvalidPadding
		}
	}
	return data[:n-padding], nil
}

// 确保CipherService实现了cryptointf.SymmetricCipher接口
var _ cryptointf.SymmetricCipher = (*CipherService)(nil)
