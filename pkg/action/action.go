// Package action 提供可组合的时间驱动动作系统
//
// 动作是施加在目标（带变换状态的空间实体）上的时间驱动变化单元。
// 基础能力集为 Start/Stop/Step/Update/IsDone/Reverse/Clone；
// 有限时长动作在此之上跟踪 elapsed/duration 并支持缓动管线；
// 组合动作（Sequence/Spawn/Repeat/RepeatForever/Speed）独占持有
// 子动作，复用动作定义必须通过 Clone。
package action

import (
	"errors"

	"github.com/decker502/motion/pkg/types"
)

// TagInvalid 表示动作未设置标签
const TagInvalid = -1

// fltEpsilon 归一化时的最小时长，保证零时长动作不会除零
const fltEpsilon = 1.192092896e-07

// ErrNotReversible 动作没有定义逆变换
// "-to" 类动作的增量依赖运行时观测到的起始值，因此不可逆；
// 调用方必须在使用 Reverse 结果前检查该错误
var ErrNotReversible = errors.New("action: not reversible")

// Target 动作作用的空间实体
// 暴露位置/旋转/缩放的读写以及一个可作查找键的稳定标识
type Target interface {
	ID() uint64
	Position() types.Vec3
	SetPosition(p types.Vec3)
	Rotation() types.Vec3
	SetRotation(r types.Vec3)
	Scale() types.Vec3
	SetScale(s types.Vec3)
}

// Action 动作的基础能力集
//
// 生命周期：构造 → Start 绑定目标（捕获起始值）→ 每帧 Step →
// IsDone 查询完成 → Stop 释放目标关系 → 丢弃。
// Stop 之后不支持恢复，需要新建（或 Clone）动作。
type Action interface {
	// Start 绑定目标并捕获计算所需的起始值
	// 重复动作会再次调用它，实现必须可安全重入
	Start(target Target)
	// Stop 释放目标关系，Running 状态下随时可调用
	Stop()
	// Step 以帧间隔推进动作（秒）
	Step(dt float64)
	// Update 以归一化进度 t 应用动作效果
	Update(t float64)
	// IsDone 动作是否已完成
	IsDone() bool
	// Clone 返回一棵全新的、未绑定目标的动作树
	Clone() Action
	// Reverse 返回时序镜像、效果取反的新动作树，不修改原动作
	Reverse() (Action, error)

	Tag() int
	SetTag(tag int)
	Speed() float64
	SetSpeed(speed float64)

	// OriginalTarget 返回动作注册时的目标（供管理器按目标索引）
	OriginalTarget() Target
	SetOriginalTarget(target Target)
}

// FiniteAction 有限时长动作
// 组合动作（Sequence/Spawn/Repeat）只接受有限时长的子动作
type FiniteAction interface {
	Action
	Duration() float64
	Elapsed() float64
}

// baseAction 所有动作共享的状态
type baseAction struct {
	target         Target
	originalTarget Target
	tag            int
	speed          float64
}

func newBaseAction() baseAction {
	return baseAction{tag: TagInvalid, speed: 1}
}

// Start 绑定目标
func (b *baseAction) Start(target Target) {
	b.originalTarget = target
	b.target = target
}

// Stop 释放目标关系
func (b *baseAction) Stop() {
	b.target = nil
}

// Tag 返回动作标签
func (b *baseAction) Tag() int {
	return b.tag
}

// SetTag 设置动作标签
func (b *baseAction) SetTag(tag int) {
	b.tag = tag
}

// Speed 返回速度倍率
// 管理器在驱动 Step 时用它缩放 dt
func (b *baseAction) Speed() float64 {
	return b.speed
}

// SetSpeed 设置速度倍率
func (b *baseAction) SetSpeed(speed float64) {
	b.speed = speed
}

// OriginalTarget 返回动作注册时的目标
func (b *baseAction) OriginalTarget() Target {
	return b.originalTarget
}

// SetOriginalTarget 设置注册目标（由管理器调用）
func (b *baseAction) SetOriginalTarget(target Target) {
	b.originalTarget = target
}

// cloneFinite 克隆有限时长子动作
func cloneFinite(a FiniteAction) FiniteAction {
	return a.Clone().(FiniteAction)
}

// reverseFinite 反转有限时长子动作
func reverseFinite(a FiniteAction) (FiniteAction, error) {
	r, err := a.Reverse()
	if err != nil {
		return nil, err
	}
	return r.(FiniteAction), nil
}
