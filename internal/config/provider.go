package config

import (
	"sync"

	"github.com/weisyn/ecc/internal/config/ecc"
	"github.com/weisyn/ecc/internal/config/log"
	"github.com/weisyn/ecc/pkg/interfaces/config"
	"github.com/weisyn/ecc/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig

	eccOnce    sync.Once
	eccOptions *ecc.ECCOptions
	eccEnvErr  error
}

// 编译时校验Provider是否实现了config.Provider接口
var _ config.Provider = (*Provider)(nil)

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) *Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	// 直接传递用户日志配置给log.New，让它处理默认值和转换
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}

	// log.New会处理默认值应用和用户配置覆盖
	return log.New(userLogConfig).GetOptions()
}

// GetECC 获取 ECC 引擎配置
//
// 依次应用默认值、配置文件与 ECC_* 环境变量，结果只计算一次。
func (p *Provider) GetECC() *ecc.ECCOptions {
	p.eccOnce.Do(func() {
		var userECCConfig *types.UserECCConfig
		if p.appConfig != nil && p.appConfig.ECC != nil {
			userECCConfig = p.appConfig.ECC
		}
		cfg := ecc.New(userECCConfig)
		p.eccEnvErr = cfg.ApplyEnv()
		p.eccOptions = cfg.GetOptions()
	})
	return p.eccOptions
}

// GetAppConfig 返回原始用户配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}
