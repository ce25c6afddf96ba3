package action

import (
	"fmt"

	"github.com/decker502/motion/pkg/types"
)

// ScaleTo 把目标缩放到给定值
// 增量在绑定目标时由终值减去当时缩放得出，因此不可逆
type ScaleTo struct {
	ActionInterval
	end   types.Vec3
	start types.Vec3
	delta types.Vec3
}

// NewScaleTo 创建缩放到指定值的动作
func NewScaleTo(duration float64, end types.Vec3) *ScaleTo {
	return &ScaleTo{
		ActionInterval: newActionInterval(duration),
		end:            end,
	}
}

// Start 捕获起始缩放并推导增量
func (s *ScaleTo) Start(target Target) {
	s.ActionInterval.Start(target)
	s.start = target.Scale()
	s.delta = s.end.Sub(s.start)
}

// Step 推进计时并应用效果
func (s *ScaleTo) Step(dt float64) {
	s.Update(s.tick(dt))
}

// Update 按进度写入缩放
func (s *ScaleTo) Update(t float64) {
	if s.target == nil {
		return
	}
	s.target.SetScale(s.start.Add(s.delta.Scale(t)))
}

// Clone 克隆缩放动作
func (s *ScaleTo) Clone() Action {
	n := NewScaleTo(s.duration, s.end)
	s.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 终点型动作依赖运行时起始值，不可逆
func (s *ScaleTo) Reverse() (Action, error) {
	return nil, fmt.Errorf("scale_to: %w", ErrNotReversible)
}

// ScaleBy 把目标缩放乘以给定倍率
// 倍率是相对量，取倒数即为逆动作
type ScaleBy struct {
	ScaleTo
	factor types.Vec3
}

// NewScaleBy 创建按倍率缩放的动作
func NewScaleBy(duration float64, factor types.Vec3) *ScaleBy {
	return &ScaleBy{
		ScaleTo: ScaleTo{ActionInterval: newActionInterval(duration)},
		factor:  factor,
	}
}

// Start 捕获起始缩放；终值 = 起始缩放 × 倍率
func (s *ScaleBy) Start(target Target) {
	s.ActionInterval.Start(target)
	s.start = target.Scale()
	s.delta = s.start.Mul(s.factor).Sub(s.start)
}

// Clone 克隆缩放动作
func (s *ScaleBy) Clone() Action {
	n := NewScaleBy(s.duration, s.factor)
	s.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 倍率取倒数即为逆动作
func (s *ScaleBy) Reverse() (Action, error) {
	n := NewScaleBy(s.duration, types.Vec3{
		X: 1 / s.factor.X,
		Y: 1 / s.factor.Y,
		Z: 1 / s.factor.Z,
	})
	s.copyDecorationTo(&n.ActionInterval)
	return n, nil
}
