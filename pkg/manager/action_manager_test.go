package manager

import (
	"math"
	"testing"

	"github.com/decker502/motion/pkg/action"
	"github.com/decker502/motion/pkg/ecs"
	"github.com/decker502/motion/pkg/types"
)

// newTestWorld 创建管理器和若干实体
func newTestWorld(n int) (*ActionManager, []*ecs.Node) {
	m := NewActionManager()
	nm := ecs.NewNodeManager()
	nodes := make([]*ecs.Node, n)
	for i := range nodes {
		nodes[i] = nm.CreateNode()
	}
	return m, nodes
}

// near 浮点近似相等
func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestAddActionValidation 测试注册参数校验
func TestAddActionValidation(t *testing.T) {
	m, nodes := newTestWorld(1)

	if err := m.AddAction(nil, nodes[0], false); err != ErrNilAction {
		t.Errorf("空动作错误 = %v, 期望 ErrNilAction", err)
	}
	if err := m.AddAction(action.NewDelayTime(1), nil, false); err != ErrNilTarget {
		t.Errorf("空目标错误 = %v, 期望 ErrNilTarget", err)
	}
	if err := m.AddAction(action.NewDelayTime(1), nodes[0], false); err != nil {
		t.Errorf("合法注册返回错误: %v", err)
	}
}

// TestUpdateDrivesActions 测试每帧驱动与完成后自动移除
func TestUpdateDrivesActions(t *testing.T) {
	m, nodes := newTestWorld(1)
	node := nodes[0]

	if err := m.AddAction(action.NewMoveBy(1.0, types.Vec3{X: 10}), node, false); err != nil {
		t.Fatalf("AddAction 失败: %v", err)
	}
	if got := m.NumberOfRunningActionsInTarget(node); got != 1 {
		t.Fatalf("运行中动作数量 = %d, 期望 1", got)
	}

	m.Update(0) // 第一帧吸收杂散间隔
	m.Update(0.5)
	if !near(node.Position().X, 5) {
		t.Errorf("半程 X = %v, 期望 5", node.Position().X)
	}

	m.Update(0.5)
	if !near(node.Position().X, 10) {
		t.Errorf("终点 X = %v, 期望 10", node.Position().X)
	}
	if got := m.NumberOfRunningActionsInTarget(node); got != 0 {
		t.Errorf("完成后动作数量 = %d, 期望 0", got)
	}
}

// TestActionSpeedScalesStep 测试动作速度倍率缩放驱动时间
func TestActionSpeedScalesStep(t *testing.T) {
	m, nodes := newTestWorld(1)
	node := nodes[0]

	a := action.NewMoveBy(1.0, types.Vec3{X: 10})
	a.SetSpeed(2.0)
	m.AddAction(a, node, false)

	m.Update(0)
	m.Update(0.25)
	if !near(node.Position().X, 5) {
		t.Errorf("两倍速 0.25 秒后 X = %v, 期望 5", node.Position().X)
	}
}

// TestRemoveActionByTag 测试按标签移除与查找
func TestRemoveActionByTag(t *testing.T) {
	m, nodes := newTestWorld(1)
	node := nodes[0]

	a1 := action.NewMoveBy(10, types.Vec3{X: 10})
	a1.SetTag(1)
	a2 := action.NewRotateBy(10, types.Vec3{Z: 90})
	a2.SetTag(2)
	m.AddAction(a1, node, false)
	m.AddAction(a2, node, false)

	t.Run("按标签查找", func(t *testing.T) {
		got, ok := m.GetActionByTag(2, node)
		if !ok || got != action.Action(a2) {
			t.Error("GetActionByTag(2) 没有找到对应动作")
		}
		if _, ok := m.GetActionByTag(99, node); ok {
			t.Error("不存在的标签不应该找到动作")
		}
	})

	t.Run("按标签移除", func(t *testing.T) {
		m.RemoveActionByTag(1, node)
		if got := m.NumberOfRunningActionsInTarget(node); got != 1 {
			t.Errorf("移除后数量 = %d, 期望 1", got)
		}
		if _, ok := m.GetActionByTag(1, node); ok {
			t.Error("已移除的标签仍能找到")
		}
	})

	t.Run("无效标签为无操作", func(t *testing.T) {
		m.RemoveActionByTag(action.TagInvalid, node)
		if got := m.NumberOfRunningActionsInTarget(node); got != 1 {
			t.Errorf("无效标签移除后数量 = %d, 期望 1", got)
		}
	})
}

// TestPauseResume 测试暂停目标不被驱动
func TestPauseResume(t *testing.T) {
	m, nodes := newTestWorld(1)
	node := nodes[0]
	m.AddAction(action.NewMoveBy(1.0, types.Vec3{X: 10}), node, false)

	m.Update(0)
	m.PauseTarget(node)
	m.Update(0.5)
	if !near(node.Position().X, 0) {
		t.Errorf("暂停期间被驱动: X = %v", node.Position().X)
	}

	m.ResumeTarget(node)
	m.Update(0.5)
	if !near(node.Position().X, 5) {
		t.Errorf("恢复后 X = %v, 期望 5", node.Position().X)
	}
}

// TestPausedOnAdd 测试以暂停状态注册
func TestPausedOnAdd(t *testing.T) {
	m, nodes := newTestWorld(1)
	node := nodes[0]
	m.AddAction(action.NewMoveBy(1.0, types.Vec3{X: 10}), node, true)

	m.Update(0.5)
	if !near(node.Position().X, 0) {
		t.Errorf("暂停注册的动作被驱动: X = %v", node.Position().X)
	}
}

// TestPauseAllResumeTargets 测试全体暂停返回新暂停的目标集合
func TestPauseAllResumeTargets(t *testing.T) {
	m, nodes := newTestWorld(3)
	for _, n := range nodes {
		m.AddAction(action.NewMoveBy(1.0, types.Vec3{X: 10}), n, false)
	}
	// 预先暂停一个
	m.PauseTarget(nodes[1])

	paused := m.PauseAllRunningActions()
	if len(paused) != 2 {
		t.Fatalf("新暂停目标数量 = %d, 期望 2（跳过已暂停的）", len(paused))
	}

	m.Update(0)
	m.Update(0.5)
	for i, n := range nodes {
		if !near(n.Position().X, 0) {
			t.Errorf("目标 %d 在全体暂停期间被驱动", i)
		}
	}

	m.ResumeTargets(paused)
	m.Update(0)
	m.Update(0.5)
	if !near(nodes[0].Position().X, 5) || !near(nodes[2].Position().X, 5) {
		t.Error("ResumeTargets 后目标没有恢复驱动")
	}
	if !near(nodes[1].Position().X, 0) {
		t.Error("预先暂停的目标不应该被 ResumeTargets 恢复")
	}
}

// TestRemoveAllActionsFromTarget 测试移除目标的全部动作
func TestRemoveAllActionsFromTarget(t *testing.T) {
	m, nodes := newTestWorld(2)
	m.AddAction(action.NewMoveBy(10, types.Vec3{X: 10}), nodes[0], false)
	m.AddAction(action.NewRotateBy(10, types.Vec3{Z: 90}), nodes[0], false)
	m.AddAction(action.NewMoveBy(10, types.Vec3{Y: 10}), nodes[1], false)

	m.RemoveAllActionsFromTarget(nodes[0])
	if got := m.NumberOfRunningActionsInTarget(nodes[0]); got != 0 {
		t.Errorf("移除后数量 = %d, 期望 0", got)
	}
	if got := m.NumberOfRunningActionsInTarget(nodes[1]); got != 1 {
		t.Errorf("其他目标受到影响: 数量 = %d", got)
	}
}

// TestRemoveAllActions 测试清空所有目标
func TestRemoveAllActions(t *testing.T) {
	m, nodes := newTestWorld(3)
	for _, n := range nodes {
		m.AddAction(action.NewMoveBy(10, types.Vec3{X: 10}), n, false)
	}

	m.RemoveAllActions()
	for i, n := range nodes {
		if got := m.NumberOfRunningActionsInTarget(n); got != 0 {
			t.Errorf("目标 %d 清空后数量 = %d, 期望 0", i, got)
		}
	}
	if len(m.records) != 0 {
		t.Errorf("清空后记录数量 = %d, 期望 0", len(m.records))
	}
}

// TestRemoveSelfFromCallback 测试回调里移除自己目标的全部动作
// 记录在遍历期间加锁，删除推迟到本帧结束，不应该崩溃或漏删
func TestRemoveSelfFromCallback(t *testing.T) {
	m, nodes := newTestWorld(1)
	node := nodes[0]

	cf := action.NewCallFunc(func(tg action.Target) {
		m.RemoveAllActionsFromTarget(tg)
	})
	m.AddAction(cf, node, false)
	m.AddAction(action.NewMoveBy(10, types.Vec3{X: 10}), node, false)

	m.Update(0.1)
	if got := m.NumberOfRunningActionsInTarget(node); got != 0 {
		t.Errorf("回调清空后数量 = %d, 期望 0", got)
	}

	// 之后的帧正常运转
	m.Update(0.1)
}

// TestRemoveCurrentActionFromCallback 测试回调里移除正在驱动的动作
func TestRemoveCurrentActionFromCallback(t *testing.T) {
	m, nodes := newTestWorld(1)
	node := nodes[0]

	var cf *action.CallFunc
	cf = action.NewCallFunc(func(tg action.Target) {
		m.RemoveAction(cf)
	})
	m.AddAction(cf, node, false)
	after := action.NewMoveBy(1.0, types.Vec3{X: 10})
	m.AddAction(after, node, false)

	m.Update(0) // 回调触发并自移除；后续动作仍被驱动（吸收帧）
	m.Update(0.5)
	if !near(node.Position().X, 5) {
		t.Errorf("自移除后兄弟动作 X = %v, 期望 5", node.Position().X)
	}
}

// TestAddActionFromCallback 测试回调里给其他目标注册动作
func TestAddActionFromCallback(t *testing.T) {
	m, nodes := newTestWorld(2)

	cf := action.NewCallFunc(func(action.Target) {
		m.AddAction(action.NewMoveBy(1.0, types.Vec3{X: 10}), nodes[1], false)
	})
	m.AddAction(cf, nodes[0], false)

	m.Update(0)
	if got := m.NumberOfRunningActionsInTarget(nodes[1]); got != 1 {
		t.Fatalf("回调注册后目标 1 的数量 = %d, 期望 1", got)
	}

	m.Update(0) // 新动作的吸收帧
	m.Update(0.5)
	if !near(nodes[1].Position().X, 5) {
		t.Errorf("回调注册的动作 X = %v, 期望 5", nodes[1].Position().X)
	}
}

// TestUpdateIndexCompensation 测试遍历中删除记录不漏驱动后续目标
func TestUpdateIndexCompensation(t *testing.T) {
	m, nodes := newTestWorld(3)

	// 第一个目标的回调把自己删掉
	cf := action.NewCallFunc(func(tg action.Target) {
		m.RemoveAllActionsFromTarget(tg)
	})
	m.AddAction(cf, nodes[0], false)
	m.AddAction(action.NewMoveBy(1.0, types.Vec3{X: 10}), nodes[1], false)
	m.AddAction(action.NewMoveBy(1.0, types.Vec3{X: 10}), nodes[2], false)

	m.Update(0)
	m.Update(0.5)
	if !near(nodes[1].Position().X, 5) {
		t.Errorf("目标 1 被漏驱动: X = %v", nodes[1].Position().X)
	}
	if !near(nodes[2].Position().X, 5) {
		t.Errorf("目标 2 被漏驱动: X = %v", nodes[2].Position().X)
	}
}

// TestPanicIsolationPerTarget 测试一个目标的回调 panic 不影响其他目标
func TestPanicIsolationPerTarget(t *testing.T) {
	m, nodes := newTestWorld(2)

	m.AddAction(action.NewCallFunc(func(action.Target) {
		panic("boom")
	}), nodes[0], false)
	m.AddAction(action.NewMoveBy(1.0, types.Vec3{X: 10}), nodes[1], false)

	m.Update(0)
	m.Update(0.5)
	if !near(nodes[1].Position().X, 5) {
		t.Errorf("panic 之后的目标没有被驱动: X = %v", nodes[1].Position().X)
	}
}

// TestRecordPoolReuse 测试记录回收复用且不残留旧状态
func TestRecordPoolReuse(t *testing.T) {
	m, nodes := newTestWorld(2)

	m.AddAction(action.NewMoveBy(10, types.Vec3{X: 10}), nodes[0], false)
	m.PauseTarget(nodes[0])
	m.RemoveAllActionsFromTarget(nodes[0])
	if len(m.pool) != 1 {
		t.Fatalf("回收池大小 = %d, 期望 1", len(m.pool))
	}

	// 复用的记录不应该继承暂停状态
	m.AddAction(action.NewMoveBy(1.0, types.Vec3{X: 10}), nodes[1], false)
	if len(m.pool) != 0 {
		t.Errorf("复用后池大小 = %d, 期望 0", len(m.pool))
	}
	m.Update(0)
	m.Update(0.5)
	if !near(nodes[1].Position().X, 5) {
		t.Errorf("复用记录的目标没有被驱动: X = %v", nodes[1].Position().X)
	}
}

// TestRegistrationOrder 测试目标按注册顺序被驱动
func TestRegistrationOrder(t *testing.T) {
	m, nodes := newTestWorld(3)
	var order []uint64

	// 倒序注册，驱动顺序应该跟随注册顺序
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		m.AddAction(action.NewCallFunc(func(tg action.Target) {
			order = append(order, tg.ID())
		}), n, false)
	}

	m.Update(0)
	if len(order) != 3 {
		t.Fatalf("触发数量 = %d, 期望 3", len(order))
	}
	for i := 0; i < 3; i++ {
		want := nodes[len(nodes)-1-i].ID()
		if order[i] != want {
			t.Fatalf("驱动顺序 = %v, 期望按注册顺序 [3 2 1]", order)
		}
	}
}
