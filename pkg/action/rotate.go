package action

import (
	"fmt"
	"math"

	"github.com/decker502/motion/pkg/types"
)

// RotateBy 把目标旋转增加给定角度（欧拉角，度）
// 与 MoveBy 相同，支持可选的叠加模式
type RotateBy struct {
	ActionInterval
	delta     types.Vec3
	start     types.Vec3
	previous  types.Vec3
	stackable bool
}

// NewRotateBy 创建按角度增量旋转的动作
func NewRotateBy(duration float64, delta types.Vec3) *RotateBy {
	return &RotateBy{
		ActionInterval: newActionInterval(duration),
		delta:          delta,
	}
}

// SetStackable 开启/关闭叠加模式（默认关闭）
func (r *RotateBy) SetStackable(on bool) {
	r.stackable = on
}

// Start 捕获起始角度
func (r *RotateBy) Start(target Target) {
	r.ActionInterval.Start(target)
	r.start = target.Rotation()
	r.previous = r.start
}

// Step 推进计时并应用效果
func (r *RotateBy) Step(dt float64) {
	r.Update(r.tick(dt))
}

// Update 按进度写入角度
func (r *RotateBy) Update(t float64) {
	if r.target == nil {
		return
	}
	if r.stackable {
		current := r.target.Rotation()
		diff := current.Sub(r.previous)
		r.start = r.start.Add(diff)
		rot := r.start.Add(r.delta.Scale(t))
		r.target.SetRotation(rot)
		r.previous = rot
		return
	}
	r.target.SetRotation(r.start.Add(r.delta.Scale(t)))
}

// Clone 克隆旋转动作
func (r *RotateBy) Clone() Action {
	n := NewRotateBy(r.duration, r.delta)
	n.stackable = r.stackable
	r.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 角度增量取反即为逆动作
func (r *RotateBy) Reverse() (Action, error) {
	n := NewRotateBy(r.duration, r.delta.Neg())
	n.stackable = r.stackable
	r.copyDecorationTo(&n.ActionInterval)
	return n, nil
}

// RotateTo 把目标旋转到给定角度（欧拉角，度）
// 每个轴都沿最短路径旋转；依赖运行时起始角度，不可逆
type RotateTo struct {
	ActionInterval
	dstAngle   types.Vec3
	startAngle types.Vec3
	diffAngle  types.Vec3
}

// NewRotateTo 创建旋转到指定角度的动作
func NewRotateTo(duration float64, dst types.Vec3) *RotateTo {
	return &RotateTo{
		ActionInterval: newActionInterval(duration),
		dstAngle:       dst,
	}
}

// Start 捕获起始角度并计算每轴最短路径差值
func (r *RotateTo) Start(target Target) {
	r.ActionInterval.Start(target)
	rot := target.Rotation()
	r.startAngle = types.Vec3{
		X: math.Mod(rot.X, 360),
		Y: math.Mod(rot.Y, 360),
		Z: math.Mod(rot.Z, 360),
	}
	r.diffAngle = types.Vec3{
		X: shortestAngle(r.startAngle.X, r.dstAngle.X),
		Y: shortestAngle(r.startAngle.Y, r.dstAngle.Y),
		Z: shortestAngle(r.startAngle.Z, r.dstAngle.Z),
	}
}

// Step 推进计时并应用效果
func (r *RotateTo) Step(dt float64) {
	r.Update(r.tick(dt))
}

// Update 按进度写入角度
func (r *RotateTo) Update(t float64) {
	if r.target == nil {
		return
	}
	r.target.SetRotation(r.startAngle.Add(r.diffAngle.Scale(t)))
}

// Clone 克隆旋转动作
func (r *RotateTo) Clone() Action {
	n := NewRotateTo(r.duration, r.dstAngle)
	r.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 终点型动作依赖运行时起始值，不可逆
func (r *RotateTo) Reverse() (Action, error) {
	return nil, fmt.Errorf("rotate_to: %w", ErrNotReversible)
}

// shortestAngle 计算 from 到 to 的最短有符号角度差（度）
func shortestAngle(from, to float64) float64 {
	diff := math.Mod(to, 360) - from
	if diff > 180 {
		diff -= 360
	}
	if diff < -180 {
		diff += 360
	}
	return diff
}
