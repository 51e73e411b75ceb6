// Package metrics 定义密码学操作的指标上报接口
//
// 接口定义与实现分离：实现位于 internal/core/infrastructure/metrics，
// 装饰后的 EllipticCurve 通过本接口上报每次操作的耗时与结果。
package metrics

import "time"

// OperationRecorder 记录单次 ECC 操作
type OperationRecorder interface {
	// ObserveOperation 记录一次操作
	//
	// curve 为规范曲线名，op 为操作名（sign、encrypt 等），
	// err 为 nil 表示成功，否则按错误类型计数。
	ObserveOperation(curve, op string, duration time.Duration, err error)
}
