// Package manager 提供按目标索引的动作注册与驱动
//
// 每个拥有至少一个动作的目标对应一条记录；管理器每帧按注册顺序
// 遍历记录，按列表顺序驱动动作。记录在遍历期间加锁，删除被推迟
// 到解锁之后，因此动作回调可以在本帧更新过程中安全地增删动作。
package manager

import (
	"errors"
	"log"

	"github.com/decker502/motion/pkg/action"
)

// ErrNilAction 注册时动作为空
var ErrNilAction = errors.New("manager: nil action")

// ErrNilTarget 注册时目标为空
var ErrNilTarget = errors.New("manager: nil target")

// targetRecord 单个目标的动作记录
type targetRecord struct {
	target        action.Target
	actions       []action.Action
	actionIndex   int
	currentAction action.Action
	paused        bool
	locked        bool // 正在被遍历
	salvaged      bool // 延迟删除标记，解锁后回收
}

// reset 彻底清空记录再入池
// 残留的目标/动作引用是正确性隐患，不只是内存泄漏
func (r *targetRecord) reset() {
	r.target = nil
	for i := range r.actions {
		r.actions[i] = nil
	}
	r.actions = r.actions[:0]
	r.actionIndex = 0
	r.currentAction = nil
	r.paused = false
	r.locked = false
	r.salvaged = false
}

// ActionManager 动作管理器
type ActionManager struct {
	records []*targetRecord          // 注册顺序
	index   map[uint64]*targetRecord // 目标 id → 记录
	pool    []*targetRecord          // 回收的记录，避免逐帧分配

	// Update 遍历状态；删除记录时用于修正外层循环下标
	updating    bool
	updateIndex int
}

// NewActionManager 创建动作管理器
func NewActionManager() *ActionManager {
	return &ActionManager{
		records: make([]*targetRecord, 0),
		index:   make(map[uint64]*targetRecord),
	}
}

// AddAction 把动作注册到目标并立即绑定
// 动作或目标为空时返回错误，管理器状态不受影响
func (m *ActionManager) AddAction(a action.Action, target action.Target, paused bool) error {
	if a == nil {
		return ErrNilAction
	}
	if target == nil {
		return ErrNilTarget
	}

	rec, ok := m.index[target.ID()]
	if !ok {
		rec = m.obtainRecord()
		rec.target = target
		rec.paused = paused
		m.records = append(m.records, rec)
		m.index[target.ID()] = rec
	}

	rec.actions = append(rec.actions, a)
	a.SetOriginalTarget(target)
	a.Start(target)
	return nil
}

// RemoveAction 移除单个动作
// 动作不在管理器中时为无操作，不是错误
func (m *ActionManager) RemoveAction(a action.Action) {
	if a == nil || a.OriginalTarget() == nil {
		return
	}
	rec, ok := m.index[a.OriginalTarget().ID()]
	if !ok {
		return
	}
	for i, cur := range rec.actions {
		if cur == a {
			m.removeActionAtIndex(rec, i)
			return
		}
	}
}

// RemoveActionByTag 移除目标上第一个匹配标签的动作
func (m *ActionManager) RemoveActionByTag(tag int, target action.Target) {
	if target == nil || tag == action.TagInvalid {
		return
	}
	rec, ok := m.index[target.ID()]
	if !ok {
		return
	}
	for i, cur := range rec.actions {
		if cur.Tag() == tag {
			m.removeActionAtIndex(rec, i)
			return
		}
	}
}

// RemoveAllActionsFromTarget 移除目标上的所有动作
func (m *ActionManager) RemoveAllActionsFromTarget(target action.Target) {
	if target == nil {
		return
	}
	rec, ok := m.index[target.ID()]
	if !ok {
		return
	}
	for i := range rec.actions {
		rec.actions[i] = nil
	}
	rec.actions = rec.actions[:0]
	rec.currentAction = nil
	m.deleteRecord(rec)
}

// RemoveAllActions 移除所有目标上的所有动作
func (m *ActionManager) RemoveAllActions() {
	for i := 0; i < len(m.records); {
		rec := m.records[i]
		before := len(m.records)
		m.RemoveAllActionsFromTarget(rec.target)
		if len(m.records) == before {
			// 记录被加锁延迟删除，继续下一条
			i++
		}
	}
}

// GetActionByTag 返回目标上第一个匹配标签的动作
func (m *ActionManager) GetActionByTag(tag int, target action.Target) (action.Action, bool) {
	if target == nil {
		return nil, false
	}
	rec, ok := m.index[target.ID()]
	if !ok {
		return nil, false
	}
	for _, cur := range rec.actions {
		if cur.Tag() == tag {
			return cur, true
		}
	}
	return nil, false
}

// NumberOfRunningActionsInTarget 返回目标上正在运行的动作数量
func (m *ActionManager) NumberOfRunningActionsInTarget(target action.Target) int {
	if target == nil {
		return 0
	}
	if rec, ok := m.index[target.ID()]; ok {
		return len(rec.actions)
	}
	return 0
}

// PauseTarget 暂停目标的所有动作（保留在列表中，不再被驱动）
func (m *ActionManager) PauseTarget(target action.Target) {
	if target == nil {
		return
	}
	if rec, ok := m.index[target.ID()]; ok {
		rec.paused = true
	}
}

// ResumeTarget 恢复目标的所有动作
func (m *ActionManager) ResumeTarget(target action.Target) {
	if target == nil {
		return
	}
	if rec, ok := m.index[target.ID()]; ok {
		rec.paused = false
	}
}

// PauseAllRunningActions 暂停所有未暂停的目标
// 返回被本次调用暂停的目标集合，供之后选择性恢复
func (m *ActionManager) PauseAllRunningActions() []action.Target {
	var paused []action.Target
	for _, rec := range m.records {
		if !rec.paused {
			rec.paused = true
			paused = append(paused, rec.target)
		}
	}
	return paused
}

// ResumeTargets 恢复一组目标
func (m *ActionManager) ResumeTargets(targets []action.Target) {
	for _, t := range targets {
		m.ResumeTarget(t)
	}
}

// Update 驱动一帧
//
// 按注册顺序遍历目标记录；未暂停的记录加锁后按列表顺序驱动每个
// 动作的 Step(dt × 速度倍率)，完成的动作先 Stop 再移除。解锁后
// 处理延迟删除，并修正外层循环下标，保证没有记录被跳过。
func (m *ActionManager) Update(dt float64) {
	m.updating = true
	for m.updateIndex = 0; m.updateIndex < len(m.records); m.updateIndex++ {
		rec := m.records[m.updateIndex]
		if !rec.paused {
			rec.locked = true
			m.stepRecord(rec, dt)
			rec.locked = false
		}
		if rec.salvaged || len(rec.actions) == 0 {
			m.deleteRecordNow(rec)
		}
	}
	m.updating = false
}

// stepRecord 驱动单条记录，隔离动作回调的 panic
// 一个目标上的回调失败不应使同一帧内其余目标停摆
func (m *ActionManager) stepRecord(rec *targetRecord, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ActionManager] 目标 %d 的动作 panic: %v", rec.target.ID(), r)
		}
	}()

	for rec.actionIndex = 0; rec.actionIndex < len(rec.actions); rec.actionIndex++ {
		a := rec.actions[rec.actionIndex]
		rec.currentAction = a

		a.Step(dt * a.Speed())

		if a.IsDone() {
			a.Stop()
			m.RemoveAction(a)
		}
		rec.currentAction = nil
	}
}

// removeActionAtIndex 从记录中移除下标 i 处的动作
// 移除位置在当前遍历下标之前（含）时回退遍历下标，
// 保证进行中的更新循环不漏驱动、不重复驱动兄弟动作
func (m *ActionManager) removeActionAtIndex(rec *targetRecord, i int) {
	rec.actions = append(rec.actions[:i], rec.actions[i+1:]...)
	if i <= rec.actionIndex {
		rec.actionIndex--
	}
	if len(rec.actions) == 0 {
		m.deleteRecord(rec)
	}
}

// deleteRecord 删除记录；加锁记录推迟到解锁后删除
func (m *ActionManager) deleteRecord(rec *targetRecord) {
	if rec.locked {
		rec.salvaged = true
		return
	}
	m.deleteRecordNow(rec)
}

// deleteRecordNow 立即删除记录并回收入池
func (m *ActionManager) deleteRecordNow(rec *targetRecord) {
	for i, cur := range m.records {
		if cur == rec {
			m.records = append(m.records[:i], m.records[i+1:]...)
			if m.updating && i <= m.updateIndex {
				m.updateIndex--
			}
			break
		}
	}
	delete(m.index, rec.target.ID())
	rec.reset()
	m.pool = append(m.pool, rec)
}

// obtainRecord 从池中取出或新建记录
func (m *ActionManager) obtainRecord() *targetRecord {
	if n := len(m.pool); n > 0 {
		rec := m.pool[n-1]
		m.pool = m.pool[:n-1]
		return rec
	}
	return &targetRecord{}
}
