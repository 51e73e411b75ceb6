package ecc

import "github.com/weisyn/ecc/pkg/types"

// ECC 配置默认值
const (
	// defaultCurve 默认曲线，与 Bitcoin/Ethereum 生态一致
	defaultCurve = types.CurveSecp256k1

	// === ECIES 默认参数 ===
	defaultCipher     = types.CipherAES256CBC
	defaultDerivation = types.HashSHA256
	defaultMAC        = types.MACHMACSHA256

	// defaultHash 签名前对消息做的摘要
	defaultHash = types.HashSHA256

	// defaultKeystoreKDF 私钥口令封装使用 scrypt
	defaultKeystoreKDF = "scrypt"

	// === 指标 ===
	defaultMetricsEnabled   = true
	defaultMetricsNamespace = "ecc"
)

// envPrefix 环境变量前缀，例如 ECC_CURVE、ECC_METRICS_ENABLED
const envPrefix = "ECC"
