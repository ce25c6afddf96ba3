package game

import "time"

// Clock 单调时钟，返回以秒计的当前时间
type Clock interface {
	Now() float64
}

// RealClock 基于墙钟的单调时钟
type RealClock struct {
	start time.Time
}

// NewRealClock 创建从零开始计时的墙钟
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

// Now 返回创建以来经过的秒数
func (c *RealClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// SteppedClock 固定步长的时钟
// 每帧显式推进固定间隔，与 ebiten 的固定 tick 模型一致，
// 也便于测试中精确控制时间
type SteppedClock struct {
	now  float64
	step float64
}

// NewSteppedClock 创建固定步长时钟
func NewSteppedClock(step float64) *SteppedClock {
	return &SteppedClock{step: step}
}

// Now 返回当前时间（秒）
func (c *SteppedClock) Now() float64 {
	return c.now
}

// Step 推进一个步长并返回新的当前时间
func (c *SteppedClock) Step() float64 {
	c.now += c.step
	return c.now
}
