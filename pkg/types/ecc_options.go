package types

// DigestFunc 自定义摘要回调
type DigestFunc func(data []byte) []byte

// Digest 摘要算法选择：内置算法名称，或调用方提供的回调
//
// Func 非空时优先使用回调，Name 仅用于日志与指标标签。
type Digest struct {
	Name string
	Func DigestFunc
}

// NamedDigest 选择内置摘要算法（sha1/sha256/sha512/keccak256/sha3-256/none）
func NamedDigest(name string) Digest {
	return Digest{Name: name}
}

// CustomDigest 使用自定义摘要回调
func CustomDigest(fn DigestFunc) Digest {
	return Digest{Name: "custom", Func: fn}
}

// IsCustom 是否为回调摘要
func (d Digest) IsCustom() bool {
	return d.Func != nil
}

// MACFunc 自定义 MAC 回调
type MACFunc func(key, data []byte) []byte

// MAC 消息认证码选择
//
// 回调形式必须给出 Size，解密时据此从密文尾部切出标签。
type MAC struct {
	Name string
	Size int
	Func MACFunc
}

// NamedMAC 选择内置 MAC（hmac-sha256/hmac-sha512/none）
func NamedMAC(name string) MAC {
	return MAC{Name: name}
}

// CustomMAC 使用自定义 MAC 回调
func CustomMAC(size int, fn MACFunc) MAC {
	return MAC{Name: "custom", Size: size, Func: fn}
}

// IsCustom 是否为回调 MAC
func (m MAC) IsCustom() bool {
	return m.Func != nil
}

// EncryptOptions ECIES 加解密参数
type EncryptOptions struct {
	Algorithm  string // 对称算法，默认 aes-256-cbc
	Derivation Digest // 共享密钥派生摘要，默认 sha256
	MAC        MAC    // 默认 hmac-sha256
	ReturnKey  bool   // 加密时额外返回 k_enc
}

// EncryptOption 修改 EncryptOptions 的函数式选项
type EncryptOption func(*EncryptOptions)

// DefaultEncryptOptions 返回默认 ECIES 参数
func DefaultEncryptOptions() EncryptOptions {
	return EncryptOptions{
		Algorithm:  CipherAES256CBC,
		Derivation: NamedDigest(HashSHA256),
		MAC:        NamedMAC(MACHMACSHA256),
	}
}

// WithAlgorithm 指定对称加密算法
func WithAlgorithm(algo string) EncryptOption {
	return func(o *EncryptOptions) { o.Algorithm = algo }
}

// WithDerivation 指定共享密钥派生摘要
func WithDerivation(d Digest) EncryptOption {
	return func(o *EncryptOptions) { o.Derivation = d }
}

// WithMAC 指定消息认证码
func WithMAC(m MAC) EncryptOption {
	return func(o *EncryptOptions) { o.MAC = m }
}

// WithReturnKey 加密时一并返回对称密钥 k_enc（用于流式场景复用会话密钥）
func WithReturnKey() EncryptOption {
	return func(o *EncryptOptions) { o.ReturnKey = true }
}

// SignOptions 签名参数
type SignOptions struct {
	Hash        Digest // 消息摘要，默认 sha256
	Recoverable bool   // 是否输出可恢复签名
	Entropy     []byte // 附加熵；为空时使用纯 RFC6979 确定性随机数
}

// SignOption 修改 SignOptions 的函数式选项
type SignOption func(*SignOptions)

// DefaultSignOptions 返回默认签名参数
func DefaultSignOptions() SignOptions {
	return SignOptions{Hash: NamedDigest(HashSHA256)}
}

// WithHash 指定消息摘要
func WithHash(d Digest) SignOption {
	return func(o *SignOptions) { o.Hash = d }
}

// WithRecoverable 输出 recovery_byte ‖ r ‖ s 格式的可恢复签名
func WithRecoverable() SignOption {
	return func(o *SignOptions) { o.Recoverable = true }
}

// WithEntropy 提供附加熵（作为 RFC6979 额外数据混入随机数生成）
func WithEntropy(entropy []byte) SignOption {
	return func(o *SignOptions) { o.Entropy = entropy }
}
