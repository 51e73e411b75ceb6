// Package clock provides the time source interface used for operation timing.
package clock

import "time"

// Clock 提供统一的时间源接口（基础设施层接口）
//
// 指标装饰器通过它计时，测试中可替换为步进时钟。
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration
}
