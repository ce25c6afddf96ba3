package action

import (
	"fmt"

	"github.com/decker502/motion/pkg/types"
)

// MoveBy 把目标位置平移给定增量
//
// 可选的叠加模式（stackable）跟踪上一次写入的位置：若外部系统在
// 动作运行期间也改动了目标位置，动作的贡献以增量方式叠加而不是
// 整体覆盖。上一值在 Start 中重置，重复启动不会累积漂移。
type MoveBy struct {
	ActionInterval
	delta     types.Vec3
	start     types.Vec3
	previous  types.Vec3
	stackable bool
}

// NewMoveBy 创建按增量移动的动作
func NewMoveBy(duration float64, delta types.Vec3) *MoveBy {
	return &MoveBy{
		ActionInterval: newActionInterval(duration),
		delta:          delta,
	}
}

// SetStackable 开启/关闭叠加模式（默认关闭）
func (m *MoveBy) SetStackable(on bool) {
	m.stackable = on
}

// Start 捕获起始位置
func (m *MoveBy) Start(target Target) {
	m.ActionInterval.Start(target)
	m.start = target.Position()
	m.previous = m.start
}

// Step 推进计时并应用效果
func (m *MoveBy) Step(dt float64) {
	m.Update(m.tick(dt))
}

// Update 按进度写入位置
func (m *MoveBy) Update(t float64) {
	if m.target == nil {
		return
	}
	if m.stackable {
		current := m.target.Position()
		diff := current.Sub(m.previous)
		m.start = m.start.Add(diff)
		pos := m.start.Add(m.delta.Scale(t))
		m.target.SetPosition(pos)
		m.previous = pos
		return
	}
	m.target.SetPosition(m.start.Add(m.delta.Scale(t)))
}

// Clone 克隆移动动作
func (m *MoveBy) Clone() Action {
	n := NewMoveBy(m.duration, m.delta)
	n.stackable = m.stackable
	m.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 增量取反即为逆动作
func (m *MoveBy) Reverse() (Action, error) {
	n := NewMoveBy(m.duration, m.delta.Neg())
	n.stackable = m.stackable
	m.copyDecorationTo(&n.ActionInterval)
	return n, nil
}

// MoveTo 把目标位置移动到给定终点
// 增量在绑定目标时由终点减去当时位置得出，因此不可逆
type MoveTo struct {
	MoveBy
	end types.Vec3
}

// NewMoveTo 创建移动到终点的动作
func NewMoveTo(duration float64, end types.Vec3) *MoveTo {
	return &MoveTo{
		MoveBy: MoveBy{ActionInterval: newActionInterval(duration)},
		end:    end,
	}
}

// Start 捕获起始位置并推导增量
func (m *MoveTo) Start(target Target) {
	m.ActionInterval.Start(target)
	m.start = target.Position()
	m.previous = m.start
	m.delta = m.end.Sub(m.start)
}

// Clone 克隆移动动作
func (m *MoveTo) Clone() Action {
	n := NewMoveTo(m.duration, m.end)
	m.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 终点型动作依赖运行时起始值，不可逆
func (m *MoveTo) Reverse() (Action, error) {
	return nil, fmt.Errorf("move_to: %w", ErrNotReversible)
}
