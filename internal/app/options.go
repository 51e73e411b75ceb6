package app

import (
	"github.com/weisyn/ecc/pkg/interfaces/config"
	"github.com/weisyn/ecc/pkg/types"
)

// Option 引擎选项函数类型
type Option func(*options)

// options 引擎选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 嵌入的配置内容（优先级高于configFilePath）
	embeddedConfig []byte

	// 直接给出的用户配置（优先级最高，跳过文件加载）
	appConfig *types.AppConfig

	// 在加载结果之上覆盖的分段配置
	eccOverride *types.UserECCConfig
	logOverride *types.UserLogConfig
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEmbeddedConfig 设置嵌入的配置内容（优先级高于WithConfigFile）
// 这允许直接使用编译时嵌入的配置，无需创建临时文件
func WithEmbeddedConfig(configBytes []byte) Option {
	return func(o *options) {
		o.embeddedConfig = configBytes
	}
}

// WithAppConfig 直接提供完整的用户配置
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithECC 覆盖 ECC 配置中非空的字段
func WithECC(userECCConfig *types.UserECCConfig) Option {
	return func(o *options) {
		o.eccOverride = userECCConfig
	}
}

// WithLog 覆盖日志配置中非空的字段
func WithLog(userLogConfig *types.UserLogConfig) Option {
	return func(o *options) {
		o.logOverride = userLogConfig
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{}

	// 应用自定义选项
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}

// mergeOverrides 把分段覆盖写入已加载的配置
func (o *options) mergeOverrides() {
	if o.appConfig == nil {
		o.appConfig = &types.AppConfig{}
	}

	if o.eccOverride != nil {
		if o.appConfig.ECC == nil {
			o.appConfig.ECC = &types.UserECCConfig{}
		}
		dst, src := o.appConfig.ECC, o.eccOverride
		if src.Curve != nil {
			dst.Curve = src.Curve
		}
		if src.Cipher != nil {
			dst.Cipher = src.Cipher
		}
		if src.Derivation != nil {
			dst.Derivation = src.Derivation
		}
		if src.MAC != nil {
			dst.MAC = src.MAC
		}
		if src.Hash != nil {
			dst.Hash = src.Hash
		}
		if src.Keystore != nil {
			dst.Keystore = src.Keystore
		}
		if src.Metrics != nil {
			dst.Metrics = src.Metrics
		}
	}

	if o.logOverride != nil {
		if o.appConfig.Log == nil {
			o.appConfig.Log = &types.UserLogConfig{}
		}
		dst, src := o.appConfig.Log, o.logOverride
		if src.Level != nil {
			dst.Level = src.Level
		}
		if src.FilePath != nil {
			dst.FilePath = src.FilePath
		}
		if src.ToConsole != nil {
			dst.ToConsole = src.ToConsole
		}
	}
}
