package action

import (
	"fmt"

	"github.com/decker502/motion/pkg/types"
)

// BezierConfig 三次贝塞尔曲线的控制点
// 各点都相对起始位置（P0 隐含为增量坐标系的原点）
type BezierConfig struct {
	CP1 types.Vec3 // 第一控制点
	CP2 types.Vec3 // 第二控制点
	End types.Vec3 // 终点
}

// BezierBy 沿三次贝塞尔曲线移动目标（控制点为相对量）
// 与 MoveBy 相同，支持可选的叠加模式
type BezierBy struct {
	ActionInterval
	config    BezierConfig
	start     types.Vec3
	previous  types.Vec3
	stackable bool
}

// NewBezierBy 创建相对贝塞尔移动动作
func NewBezierBy(duration float64, config BezierConfig) *BezierBy {
	return &BezierBy{
		ActionInterval: newActionInterval(duration),
		config:         config,
	}
}

// SetStackable 开启/关闭叠加模式（默认关闭）
func (b *BezierBy) SetStackable(on bool) {
	b.stackable = on
}

// Start 捕获起始位置
func (b *BezierBy) Start(target Target) {
	b.ActionInterval.Start(target)
	b.start = target.Position()
	b.previous = b.start
}

// Step 推进计时并应用效果
func (b *BezierBy) Step(dt float64) {
	b.Update(b.tick(dt))
}

// Update 按进度写入曲线上的位置
func (b *BezierBy) Update(t float64) {
	if b.target == nil {
		return
	}
	offset := types.Vec3{
		X: bezierAt(b.config.CP1.X, b.config.CP2.X, b.config.End.X, t),
		Y: bezierAt(b.config.CP1.Y, b.config.CP2.Y, b.config.End.Y, t),
		Z: bezierAt(b.config.CP1.Z, b.config.CP2.Z, b.config.End.Z, t),
	}
	if b.stackable {
		current := b.target.Position()
		diff := current.Sub(b.previous)
		b.start = b.start.Add(diff)
		pos := b.start.Add(offset)
		b.target.SetPosition(pos)
		b.previous = pos
		return
	}
	b.target.SetPosition(b.start.Add(offset))
}

// Clone 克隆贝塞尔动作
func (b *BezierBy) Clone() Action {
	n := NewBezierBy(b.duration, b.config)
	n.stackable = b.stackable
	b.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 控制点相对终点镜像、终点取反即为逆动作
func (b *BezierBy) Reverse() (Action, error) {
	n := NewBezierBy(b.duration, BezierConfig{
		CP1: b.config.CP2.Sub(b.config.End),
		CP2: b.config.CP1.Sub(b.config.End),
		End: b.config.End.Neg(),
	})
	n.stackable = b.stackable
	b.copyDecorationTo(&n.ActionInterval)
	return n, nil
}

// BezierTo 沿三次贝塞尔曲线移动到绝对位置
// 控制点在绑定目标时换算成相对量，因此不可逆
type BezierTo struct {
	BezierBy
	toConfig BezierConfig
}

// NewBezierTo 创建绝对贝塞尔移动动作
func NewBezierTo(duration float64, config BezierConfig) *BezierTo {
	return &BezierTo{
		BezierBy: BezierBy{ActionInterval: newActionInterval(duration)},
		toConfig: config,
	}
}

// Start 捕获起始位置并把控制点换算为相对量
func (b *BezierTo) Start(target Target) {
	b.ActionInterval.Start(target)
	b.start = target.Position()
	b.previous = b.start
	b.config = BezierConfig{
		CP1: b.toConfig.CP1.Sub(b.start),
		CP2: b.toConfig.CP2.Sub(b.start),
		End: b.toConfig.End.Sub(b.start),
	}
}

// Clone 克隆贝塞尔动作
func (b *BezierTo) Clone() Action {
	n := NewBezierTo(b.duration, b.toConfig)
	b.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 终点型动作依赖运行时起始值，不可逆
func (b *BezierTo) Reverse() (Action, error) {
	return nil, fmt.Errorf("bezier_to: %w", ErrNotReversible)
}

// bezierAt 三次贝塞尔插值，P0 隐含为 0
// B(t) = 3t(1-t)²·p1 + 3t²(1-t)·p2 + t³·p3
func bezierAt(p1, p2, p3, t float64) float64 {
	u := 1 - t
	return 3*t*u*u*p1 + 3*t*t*u*p2 + t*t*t*p3
}
