package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
	cryptointf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ecc/pkg/types"
)

// 口令派生算法
const (
	KDFScrypt = "scrypt"
	KDFPBKDF2 = "pbkdf2"
)

const (
	kdfIDScrypt byte = 0x01
	kdfIDPBKDF2 byte = 0x02

	saltSize = 16

	scryptN = 32768
	scryptR = 8
	scryptP = 1

	pbkdf2Iterations = 10000

	derivedKeySize = 32
)

// KeystoreService 使用口令保护私钥
//
// 封装格式：kdf标识(1) ‖ salt(16) ‖ nonce(12) ‖ AES-256-GCM 密文
type KeystoreService struct {
	kdf  string
	rand io.Reader
}

// NewKeystoreService 创建口令封装服务；kdf 为空时使用 scrypt
func NewKeystoreService(kdf string) (*KeystoreService, error) {
	switch kdf {
	case "":
		kdf = KDFScrypt
	case KDFScrypt, KDFPBKDF2:
	default:
		return nil, types.NewECCError(types.ErrUnsupportedHash, fmt.Sprintf("unsupported kdf %q", kdf))
	}
	return &KeystoreService{kdf: kdf, rand: rand.Reader}, nil
}

// Seal 使用口令加密私钥
func (s *KeystoreService) Seal(privateKey, passphrase []byte) ([]byte, error) {
	if len(privateKey) == 0 {
		return nil, types.NewECCError(types.ErrInvalidKey, "empty private key")
	}

	kdfID := kdfIDScrypt
	if s.kdf == KDFPBKDF2 {
		kdfID = kdfIDPBKDF2
	}

	// 生成随机盐
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(s.rand, salt); err != nil {
		return nil, fmt.Errorf("生成盐失败: %w", err)
	}

	gcm, err := newKeystoreGCM(kdfID, passphrase, salt)
	if err != nil {
		return nil, err
	}

	// 生成随机nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(s.rand, nonce); err != nil {
		return nil, fmt.Errorf("生成nonce失败: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, privateKey, []byte{kdfID})

	// 拼接标识、盐、nonce和密文
	result := make([]byte, 0, 1+len(salt)+len(nonce)+len(ciphertext))
	result = append(result, kdfID)
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)
	return result, nil
}

// Open 使用口令解密私钥
func (s *KeystoreService) Open(blob, passphrase []byte) ([]byte, error) {
	// 标识(1) + 盐(16) + nonce(12) + GCM标签(16)
	if len(blob) < 1+saltSize+12+16 {
		return nil, types.NewECCError(types.ErrInvalidLength,
			fmt.Sprintf("keystore blob too short: %d bytes", len(blob)))
	}

	kdfID := blob[0]
	salt := blob[1 : 1+saltSize]

	gcm, err := newKeystoreGCM(kdfID, passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := blob[1+saltSize : 1+saltSize+gcm.NonceSize()]
	ciphertext := blob[1+saltSize+gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, []byte{kdfID})
	if err != nil {
		return nil, types.NewECCError(types.ErrInvalidMAC, "keystore authentication failed")
	}
	return plaintext, nil
}

func newKeystoreGCM(kdfID byte, passphrase, salt []byte) (cipher.AEAD, error) {
	derived, err := deriveKey(kdfID, passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer key.SecureWipe(derived)

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("创建AES加密器失败: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("创建GCM失败: %w", err)
	}
	return gcm, nil
}

// deriveKey 从口令和盐派生密钥
func deriveKey(kdfID byte, passphrase, salt []byte) ([]byte, error) {
	switch kdfID {
	case kdfIDScrypt:
		derived, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, derivedKeySize)
		if err != nil {
			return nil, fmt.Errorf("scrypt派生失败: %w", err)
		}
		return derived, nil
	case kdfIDPBKDF2:
		return pbkdf2.Key(passphrase, salt, pbkdf2Iterations, derivedKeySize, sha256.New), nil
	default:
		return nil, types.NewECCError(types.ErrUnsupportedHash, fmt.Sprintf("unknown kdf id 0x%02x", kdfID))
	}
}

// 确保KeystoreService实现了cryptointf.KeystoreManager接口
var _ cryptointf.KeystoreManager = (*KeystoreService)(nil)
