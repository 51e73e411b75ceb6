package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	eccconfig "github.com/weisyn/ecc/internal/config/ecc"
	logiface "github.com/weisyn/ecc/pkg/interfaces/infrastructure/log"
	metricsintf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/metrics"
)

// Module 返回 metrics 模块的 fx.Option
//
// 提供：
// - *prometheus.Registry / prometheus.Registerer / prometheus.Gatherer
// - metricsintf.OperationRecorder（ecc.metrics_enabled=false 时为 nil）
//
// 依赖：
// - *eccconfig.ECCOptions: ECC 配置
// - logiface.Logger: 日志记录器（可选）
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideRegistry),
		fx.Provide(ProvideRecorder),
	)
}

// RegistryOutput 指标注册表的输出
type RegistryOutput struct {
	fx.Out

	Registry   *prometheus.Registry
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// ProvideRegistry 创建独立的指标注册表，不污染全局默认注册表
func ProvideRegistry() RegistryOutput {
	registry := prometheus.NewRegistry()
	return RegistryOutput{
		Registry:   registry,
		Registerer: registry,
		Gatherer:   registry,
	}
}

// RecorderInput 定义 Recorder 的输入依赖
type RecorderInput struct {
	fx.In

	Options    *eccconfig.ECCOptions
	Registerer prometheus.Registerer
	Logger     logiface.Logger `optional:"true"`
}

// RecorderOutput 定义 Recorder 的输出
type RecorderOutput struct {
	fx.Out

	Recorder metricsintf.OperationRecorder
}

// ProvideRecorder 按配置创建操作记录器
func ProvideRecorder(input RecorderInput) RecorderOutput {
	if !input.Options.MetricsEnabled {
		if input.Logger != nil {
			input.Logger.Debug("ECC 指标已关闭")
		}
		return RecorderOutput{}
	}

	recorder := NewRecorder(input.Options.MetricsNamespace, input.Registerer)
	if input.Logger != nil {
		input.Logger.With("module", "metrics").Infof("ECC 指标已启用: namespace=%s", input.Options.MetricsNamespace)
	}
	return RecorderOutput{Recorder: recorder}
}
