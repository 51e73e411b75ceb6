package types

// AppConfig 用户配置文件的顶层结构
//
// 所有字段均为指针：只有 JSON 中实际出现的字段才会覆盖默认值。
type AppConfig struct {
	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// ECC 引擎配置
	ECC *UserECCConfig `json:"ecc,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level     *string `json:"level,omitempty"`      // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty"`  // 日志文件路径
	ToConsole *bool   `json:"to_console,omitempty"` // 是否输出到控制台
}

// UserECCConfig 用户 ECC 配置
//
// 名称字段取值与 pkg/types/crypto.go 中的常量一致。
type UserECCConfig struct {
	Curve      *string `json:"curve,omitempty"`      // 默认曲线，接受 P-256 等别名
	Cipher     *string `json:"cipher,omitempty"`     // ECIES 对称算法
	Derivation *string `json:"derivation,omitempty"` // ECIES 共享密钥派生摘要
	MAC        *string `json:"mac,omitempty"`        // ECIES 消息认证码
	Hash       *string `json:"hash,omitempty"`       // 签名消息摘要

	// 密钥库
	Keystore *UserKeystoreConfig `json:"keystore,omitempty"`

	// 指标
	Metrics *UserMetricsConfig `json:"metrics,omitempty"`
}

// UserKeystoreConfig 私钥加密导出配置
type UserKeystoreConfig struct {
	KDF *string `json:"kdf,omitempty"` // scrypt | pbkdf2
}

// UserMetricsConfig Prometheus 指标配置
type UserMetricsConfig struct {
	Enabled   *bool   `json:"enabled,omitempty"`
	Namespace *string `json:"namespace,omitempty"`
}

// StringPtr 返回字符串指针，便于构造用户配置
func StringPtr(s string) *string {
	return &s
}

// BoolPtr 返回布尔指针
func BoolPtr(b bool) *bool {
	return &b
}
