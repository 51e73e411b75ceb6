package clock

import (
	"sync/atomic"
	"time"

	infraClock "github.com/weisyn/ecc/pkg/interfaces/infrastructure/clock"
)

// StepClock 基于固定基准时间的确定性时钟，每次读取前进一个步长
//
// Since 本身也读取一次时钟，因此 Since(Now()) 恒等于一个步长。可并发使用。
type StepClock struct {
	base     time.Time
	step     time.Duration
	sequence atomic.Int64
}

var _ infraClock.Clock = (*StepClock)(nil)

func NewStepClock(base time.Time, step time.Duration) *StepClock {
	return &StepClock{base: base, step: step}
}

func (c *StepClock) Now() time.Time {
	n := c.sequence.Add(1)
	return c.base.Add(time.Duration(n) * c.step)
}

func (c *StepClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

// Reads 返回时钟被读取的次数
func (c *StepClock) Reads() int64 { return c.sequence.Load() }
