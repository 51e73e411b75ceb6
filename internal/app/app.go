// Package app 装配并启动 ECC 引擎
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	internalconfig "github.com/weisyn/ecc/internal/config"
	eccconfig "github.com/weisyn/ecc/internal/config/ecc"
	"github.com/weisyn/ecc/pkg/interfaces/config"
	"github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
)

// ConfigPathEnv 未显式指定配置文件时读取的环境变量
const ConfigPathEnv = "ECC_CONFIG_PATH"

// stopTimeout 停止引擎时等待生命周期钩子的上限
const stopTimeout = 10 * time.Second

// AppModule 应用模块定义
func AppModule(opts *options) fx.Option {
	return fx.Options(
		// 提供应用配置选项，供config模块使用
		fx.Provide(func() config.AppOptions { return opts }),
	)
}

// Engine 是 ECC 引擎的对外接口
type Engine interface {
	// Curve 返回配置中的默认曲线
	Curve() crypto.EllipticCurve

	// Factory 返回曲线工厂，用于按名称创建其他曲线
	Factory() crypto.ECCFactory

	// Keystore 返回口令保护私钥的密钥库
	Keystore() crypto.KeystoreManager

	// Hasher 返回哈希服务
	Hasher() crypto.HashManager

	// Codec 返回 Base58Check 编解码器
	Codec() crypto.AddressCodec

	// Options 返回生效的 ECC 配置
	Options() *eccconfig.ECCOptions

	// Gatherer 返回指标采集器
	Gatherer() prometheus.Gatherer

	// Stop 停止引擎
	Stop() error
}

// engineServices 引擎从依赖注入容器取出的服务
type engineServices struct {
	fx.In

	Curve    crypto.EllipticCurve
	Factory  crypto.ECCFactory
	Keystore crypto.KeystoreManager
	Hasher   crypto.HashManager
	Codec    crypto.AddressCodec
	Options  *eccconfig.ECCOptions
	Gatherer prometheus.Gatherer
}

// internalEngine 引擎的内部实现
type internalEngine struct {
	bootstrap *Bootstrap
	services  engineServices
}

func (e *internalEngine) Curve() crypto.EllipticCurve      { return e.services.Curve }
func (e *internalEngine) Factory() crypto.ECCFactory       { return e.services.Factory }
func (e *internalEngine) Keystore() crypto.KeystoreManager { return e.services.Keystore }
func (e *internalEngine) Hasher() crypto.HashManager       { return e.services.Hasher }
func (e *internalEngine) Codec() crypto.AddressCodec       { return e.services.Codec }
func (e *internalEngine) Options() *eccconfig.ECCOptions   { return e.services.Options }
func (e *internalEngine) Gatherer() prometheus.Gatherer    { return e.services.Gatherer }

// Stop 停止引擎
func (e *internalEngine) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return e.bootstrap.StopApp(ctx)
}

// Start 加载配置并启动引擎
func Start(appOptions ...Option) (Engine, error) {
	opts := newOptions(appOptions...)
	if err := loadAppConfig(opts); err != nil {
		return nil, err
	}
	return BootstrapApp(opts)
}

// loadAppConfig 按优先级确定用户配置：直接给出的配置 > 嵌入配置 > 配置文件 > ECC_CONFIG_PATH
func loadAppConfig(opts *options) error {
	if opts.appConfig == nil {
		switch {
		case len(opts.embeddedConfig) > 0:
			appConfig, err := internalconfig.ParseAppConfig(opts.embeddedConfig)
			if err != nil {
				return err
			}
			opts.appConfig = appConfig
		default:
			path := opts.configFilePath
			if path == "" {
				path = os.Getenv(ConfigPathEnv)
			}
			appConfig, err := internalconfig.LoadAppConfig(path)
			if err != nil {
				return fmt.Errorf("加载配置 %q 失败: %w", path, err)
			}
			opts.appConfig = appConfig
		}
	}

	opts.mergeOverrides()
	return nil
}
