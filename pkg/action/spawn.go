package action

// Spawn 两个子动作的并行组合
//
// 总时长为两者的较大值；较短的一方在构造时尾接一个 DelayTime，
// 两个子动作因此观察到同一段外层归一化时间，每帧都收到 Update。
type Spawn struct {
	ActionInterval
	one FiniteAction
	two FiniteAction
}

// NewSpawnPair 创建两个子动作的并行组合
func NewSpawnPair(a, b FiniteAction) *Spawn {
	d1 := a.Duration()
	d2 := b.Duration()

	s := &Spawn{}
	switch {
	case d1 > d2:
		s.ActionInterval = newActionInterval(d1)
		s.one = a
		s.two = NewSequencePair(b, NewDelayTime(d1-d2))
	case d1 < d2:
		s.ActionInterval = newActionInterval(d2)
		s.one = NewSequencePair(a, NewDelayTime(d2-d1))
		s.two = b
	default:
		s.ActionInterval = newActionInterval(d1)
		s.one = a
		s.two = b
	}
	return s
}

// NewSpawn 把任意多个动作左折叠成嵌套的二元并行组合
// 返回 nil 当没有传入任何动作；单个动作原样返回
func NewSpawn(actions ...FiniteAction) FiniteAction {
	if len(actions) == 0 {
		return nil
	}
	prev := actions[0]
	for _, next := range actions[1:] {
		prev = NewSpawnPair(prev, next)
	}
	return prev
}

// Start 绑定目标并启动两个子动作
func (s *Spawn) Start(target Target) {
	s.ActionInterval.Start(target)
	s.one.Start(target)
	s.two.Start(target)
}

// Stop 停止两个子动作
func (s *Spawn) Stop() {
	s.one.Stop()
	s.two.Stop()
	s.baseAction.Stop()
}

// Step 推进计时
func (s *Spawn) Step(dt float64) {
	s.Update(s.tick(dt))
}

// Update 同一进度同时分派给两个子动作
func (s *Spawn) Update(t float64) {
	s.one.Update(t)
	s.two.Update(t)
}

// Clone 克隆并行组合
func (s *Spawn) Clone() Action {
	n := &Spawn{
		ActionInterval: newActionInterval(s.duration),
		one:            cloneFinite(s.one),
		two:            cloneFinite(s.two),
	}
	s.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 两个子动作独立反转，时长关系保持不变
func (s *Spawn) Reverse() (Action, error) {
	r1, err := reverseFinite(s.one)
	if err != nil {
		return nil, err
	}
	r2, err := reverseFinite(s.two)
	if err != nil {
		return nil, err
	}
	n := &Spawn{
		ActionInterval: newActionInterval(s.duration),
		one:            r1,
		two:            r2,
	}
	s.copyDecorationTo(&n.ActionInterval)
	return n, nil
}
