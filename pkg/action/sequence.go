package action

import "math"

// Sequence 两个子动作的顺序组合
//
// 总时长为两个子时长之和，split = 前者时长 / 总时长。
// n 个动作通过 NewSequence 左折叠成嵌套的二元序列树：
// 时间切分只对两个子动作有定义。
type Sequence struct {
	ActionInterval
	actions [2]FiniteAction
	split   float64
	last    int // 上一次活跃的子动作下标；-1 表示尚未采样
}

// NewSequencePair 创建两个子动作的顺序组合
func NewSequencePair(a, b FiniteAction) *Sequence {
	s := &Sequence{
		ActionInterval: newActionInterval(a.Duration() + b.Duration()),
		actions:        [2]FiniteAction{a, b},
		last:           -1,
	}
	return s
}

// NewSequence 把任意多个动作左折叠成嵌套的二元序列
// 返回 nil 当没有传入任何动作；单个动作原样返回
func NewSequence(actions ...FiniteAction) FiniteAction {
	if len(actions) == 0 {
		return nil
	}
	prev := actions[0]
	for _, next := range actions[1:] {
		prev = NewSequencePair(prev, next)
	}
	return prev
}

// Start 绑定目标并计算时间切分
func (s *Sequence) Start(target Target) {
	s.ActionInterval.Start(target)
	d := s.duration
	if d < fltEpsilon {
		d = fltEpsilon
	}
	s.split = s.actions[0].Duration() / d
	s.last = -1
}

// Stop 停掉仍在活跃的子动作
func (s *Sequence) Stop() {
	if s.last != -1 {
		s.actions[s.last].Stop()
	}
	s.baseAction.Stop()
}

// Step 推进计时
func (s *Sequence) Step(dt float64) {
	s.Update(s.tick(dt))
}

// Update 把归一化进度分派给活跃子动作
//
// 边界语义：
//   - 一帧跨过整个第一个子动作时，补发其 Start + Update(1) + Stop，
//     副作用不会被跳过
//   - 从第一个子动作过渡到第二个时，前者恰好收到一次 Update(1)+Stop
//   - 同一子动作保持活跃且已完成时，不再发出多余更新
func (s *Sequence) Update(t float64) {
	found := 0
	var newT float64

	if t < s.split {
		if s.split != 0 {
			newT = t / s.split
		} else {
			newT = 1
		}
		if s.last == 1 {
			// 时间倒退回第一个子动作：把第二个子动作归零并停止
			s.actions[1].Update(0)
			s.actions[1].Stop()
		}
	} else {
		found = 1
		if s.split == 1 {
			newT = 1
		} else {
			newT = (t - s.split) / (1 - s.split)
		}
		switch s.last {
		case -1:
			// 第一个子动作被整帧跳过：补发完整生命周期
			s.actions[0].Start(s.target)
			s.actions[0].Update(1)
			s.actions[0].Stop()
		case 0:
			// 跨过边界：第一个子动作恰好收尾一次
			s.actions[0].Update(1)
			s.actions[0].Stop()
		}
	}

	next := s.actions[found]
	if s.last == found && next.IsDone() {
		return
	}
	if s.last != found {
		next.Start(s.target)
	}
	if newT > 1 {
		newT = math.Mod(newT, 1)
	}
	next.Update(newT)
	s.last = found
}

// Clone 克隆整棵序列树
func (s *Sequence) Clone() Action {
	n := NewSequencePair(cloneFinite(s.actions[0]), cloneFinite(s.actions[1]))
	s.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 子动作各自反转并交换先后顺序
func (s *Sequence) Reverse() (Action, error) {
	r0, err := reverseFinite(s.actions[0])
	if err != nil {
		return nil, err
	}
	r1, err := reverseFinite(s.actions[1])
	if err != nil {
		return nil, err
	}
	n := NewSequencePair(r1, r0)
	s.copyDecorationTo(&n.ActionInterval)
	return n, nil
}
