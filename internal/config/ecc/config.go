// Package ecc 提供 ECC 引擎的配置：默认值、用户配置覆盖、环境变量覆盖与校验
package ecc

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/weisyn/ecc/pkg/types"
)

// ECCOptions ECC 引擎配置选项
type ECCOptions struct {
	// === 曲线 ===
	Curve string `json:"curve" envconfig:"CURVE"` // 默认曲线

	// === ECIES ===
	Cipher     string `json:"cipher" envconfig:"CIPHER"`         // 对称算法
	Derivation string `json:"derivation" envconfig:"DERIVATION"` // 共享密钥派生摘要
	MAC        string `json:"mac" envconfig:"MAC"`               // 消息认证码

	// === ECDSA ===
	Hash string `json:"hash" envconfig:"HASH"` // 签名消息摘要

	// === 密钥库 ===
	KeystoreKDF string `json:"keystore_kdf" envconfig:"KEYSTORE_KDF"`

	// === 指标 ===
	MetricsEnabled   bool   `json:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	MetricsNamespace string `json:"metrics_namespace" envconfig:"METRICS_NAMESPACE"`
}

// Config ECC 配置实现
type Config struct {
	options *ECCOptions
}

// New 创建 ECC 配置：先填充默认值，再应用用户配置
func New(userConfig *types.UserECCConfig) *Config {
	options := createDefaultECCOptions()
	if userConfig != nil {
		applyUserECCConfig(options, userConfig)
	}
	return &Config{options: options}
}

func createDefaultECCOptions() *ECCOptions {
	return &ECCOptions{
		Curve:            defaultCurve,
		Cipher:           defaultCipher,
		Derivation:       defaultDerivation,
		MAC:              defaultMAC,
		Hash:             defaultHash,
		KeystoreKDF:      defaultKeystoreKDF,
		MetricsEnabled:   defaultMetricsEnabled,
		MetricsNamespace: defaultMetricsNamespace,
	}
}

// applyUserECCConfig 只覆盖 JSON 中实际出现的字段
func applyUserECCConfig(options *ECCOptions, user *types.UserECCConfig) {
	if user.Curve != nil {
		options.Curve = *user.Curve
	}
	if user.Cipher != nil {
		options.Cipher = *user.Cipher
	}
	if user.Derivation != nil {
		options.Derivation = *user.Derivation
	}
	if user.MAC != nil {
		options.MAC = *user.MAC
	}
	if user.Hash != nil {
		options.Hash = *user.Hash
	}
	if user.Keystore != nil && user.Keystore.KDF != nil {
		options.KeystoreKDF = *user.Keystore.KDF
	}
	if user.Metrics != nil {
		if user.Metrics.Enabled != nil {
			options.MetricsEnabled = *user.Metrics.Enabled
		}
		if user.Metrics.Namespace != nil {
			options.MetricsNamespace = *user.Metrics.Namespace
		}
	}
}

// ApplyEnv 使用 ECC_* 环境变量覆盖当前配置
//
// 未设置的变量保持原值，因此优先级为：环境变量 > 配置文件 > 默认值。
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(envPrefix, c.options); err != nil {
		return fmt.Errorf("解析 %s_* 环境变量失败: %w", envPrefix, err)
	}
	return nil
}

// GetOptions 获取完整的 ECC 配置选项
func (c *Config) GetOptions() *ECCOptions {
	return c.options
}

// EncryptOptions 将配置转换为 ECIES 默认参数
func (o *ECCOptions) EncryptOptions() []types.EncryptOption {
	return []types.EncryptOption{
		types.WithAlgorithm(o.Cipher),
		types.WithDerivation(types.NamedDigest(o.Derivation)),
		types.WithMAC(types.NamedMAC(o.MAC)),
	}
}

// SignOptions 将配置转换为签名默认参数
func (o *ECCOptions) SignOptions() []types.SignOption {
	return []types.SignOption{types.WithHash(types.NamedDigest(o.Hash))}
}
