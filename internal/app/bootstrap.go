package app

import (
	"context"
	"fmt"
	"time"

	internalconfig "github.com/weisyn/ecc/internal/config"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto"
	log "github.com/weisyn/ecc/internal/core/infrastructure/log"
	"github.com/weisyn/ecc/internal/core/infrastructure/metrics"
	"go.uber.org/fx"
)

// startTimeout 启动引擎的超时时间
const startTimeout = 30 * time.Second

// Bootstrap 引擎引导程序
type Bootstrap struct {
	opts     *options
	fxApp    *fx.App
	services engineServices
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		internalconfig.Module(), // 1. 配置(不依赖其他)
		log.Module(),            // 2. 日志(依赖配置)
		metrics.Module(),        // 3. 指标(依赖配置和日志)
		crypto.Module(),         // 4. 密码学(依赖配置、日志和指标)
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	return []fx.Option{
		AppModule(b.opts),

		// 取出引擎对外暴露的服务
		fx.Invoke(func(services engineServices) {
			b.services = services
		}),
	}
}

// SetupModules 设置所有模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupApplicationLayer()...)
	return allModules
}

// CreateFxApp 创建并配置fx应用
func (b *Bootstrap) CreateFxApp() error {
	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),

		// 禁用fx内部日志
		fx.NopLogger,

		fx.Invoke(func(lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					if logger := log.GetLogger(); logger != nil {
						_ = logger.Sync()
					}
					return nil
				},
			})
		}),
	)
	return b.fxApp.Err()
}

// StartApp 启动引擎
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动引擎失败: %w", err)
	}
	return nil
}

// StopApp 停止引擎
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止引擎失败: %w", err)
	}
	return nil
}

// BootstrapApp 执行完整的引导过程并返回引擎实例
func BootstrapApp(opts *options) (Engine, error) {
	bootstrap := NewBootstrap(opts)

	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, fmt.Errorf("创建引擎失败: %w", err)
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), startTimeout)
	defer startupCancel()

	if err := bootstrap.StartApp(startupCtx); err != nil {
		return nil, err
	}

	log.Debugf("ECC 引擎已启动: curve=%s", bootstrap.services.Curve.Name())

	return &internalEngine{
		bootstrap: bootstrap,
		services:  bootstrap.services,
	}, nil
}
