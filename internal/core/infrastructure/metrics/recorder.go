// Package metrics 提供 ECC 操作的 Prometheus 指标
//
// 本模块提供：
// - Recorder: 按曲线、操作、结果统计次数与耗时
// - Instrument: 为 EllipticCurve 加上指标上报的装饰器
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	metricsintf "github.com/weisyn/ecc/pkg/interfaces/infrastructure/metrics"
	"github.com/weisyn/ecc/pkg/types"
)

// 结果标签
const (
	resultOK    = "ok"
	resultError = "error"
)

// Recorder 基于 Prometheus 的操作记录器
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var _ metricsintf.OperationRecorder = (*Recorder)(nil)

// NewRecorder 在 reg 中注册 ECC 指标
//
// 指标：
//   - <namespace>_crypto_operations_total{curve,op,result}
//   - <namespace>_crypto_operation_duration_seconds{curve,op}
//
// result 为 ok、具体的错误类型（如 ErrInvalidMAC）或 error。
func NewRecorder(namespace string, reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "crypto",
				Name:      "operations_total",
				Help:      "Total number of ECC operations",
			},
			[]string{"curve", "op", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "crypto",
				Name:      "operation_duration_seconds",
				Help:      "ECC operation duration in seconds",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"curve", "op"},
		),
	}
}

// ObserveOperation 记录一次操作
func (r *Recorder) ObserveOperation(curve, op string, duration time.Duration, err error) {
	r.operations.WithLabelValues(curve, op, resultLabel(err)).Inc()
	r.duration.WithLabelValues(curve, op).Observe(duration.Seconds())
}

// resultLabel 把错误映射为有限的标签集合，避免错误描述进入标签
func resultLabel(err error) string {
	if err == nil {
		return resultOK
	}
	var kind types.ErrorKind
	if errors.As(err, &kind) {
		return string(kind)
	}
	return resultError
}
