// Package game 提供引擎编排与演示设置
//
// Engine 把定时器调度、动作驱动和实体清理串成一个同步的逻辑帧：
// 每帧先触发所有到期定时器，再推进所有运行中的动作，最后清理
// 被标记销毁的实体。宿主在这之后执行渲染。
package game

import (
	"github.com/decker502/motion/pkg/action"
	"github.com/decker502/motion/pkg/ecs"
	"github.com/decker502/motion/pkg/manager"
	"github.com/decker502/motion/pkg/scheduler"
)

// Engine 帧驱动引擎
//
// 单线程协作模型：一个逻辑帧内的所有操作严格同步执行，
// 目标的变换状态在帧内被就地修改，帧结束后供渲染读取。
type Engine struct {
	scheduler *scheduler.Scheduler
	actions   *manager.ActionManager
	nodes     *ecs.NodeManager

	lastNow float64
	started bool
}

// NewEngine 创建引擎
func NewEngine() *Engine {
	return &Engine{
		scheduler: scheduler.NewScheduler(),
		actions:   manager.NewActionManager(),
		nodes:     ecs.NewNodeManager(),
	}
}

// Scheduler 返回定时器调度器
func (e *Engine) Scheduler() *scheduler.Scheduler {
	return e.scheduler
}

// Actions 返回动作管理器
func (e *Engine) Actions() *manager.ActionManager {
	return e.actions
}

// Nodes 返回实体管理器
func (e *Engine) Nodes() *ecs.NodeManager {
	return e.nodes
}

// Play 在目标上启动动作
func (e *Engine) Play(a action.Action, target action.Target, paused bool) error {
	return e.actions.AddAction(a, target, paused)
}

// Tick 推进一个逻辑帧，返回本帧的时间间隔（秒）
//
// 帧内顺序固定：先触发所有到期定时器，再按注册顺序推进每个目标
// 的动作，最后清理被标记销毁的实体（连带移除其剩余动作）。
func (e *Engine) Tick(now float64) float64 {
	if !e.started {
		e.started = true
		e.lastNow = now
	}
	dt := now - e.lastNow
	if dt < 0 {
		dt = 0
	}
	e.lastNow = now

	e.scheduler.Advance(now)
	e.actions.Update(dt)
	e.nodes.RemoveMarkedNodes(func(n *ecs.Node) {
		e.actions.RemoveAllActionsFromTarget(n)
	})
	return dt
}
