package action

// Speed 缩放内部动作时间流速的包装
//
// 不改动内部动作的时长账目：缩放发生在交给内部 Step 的驱动 dt 上，
// 而不是在 Update 的归一化进度上。
type Speed struct {
	baseAction
	inner Action
	rate  float64
}

// NewSpeed 创建速度包装
// rate 为 2 时内部动作以两倍速推进
func NewSpeed(inner Action, rate float64) *Speed {
	return &Speed{
		baseAction: newBaseAction(),
		inner:      inner,
		rate:       rate,
	}
}

// Rate 返回时间倍率
func (s *Speed) Rate() float64 {
	return s.rate
}

// SetRate 设置时间倍率
func (s *Speed) SetRate(rate float64) {
	s.rate = rate
}

// Inner 返回被包装的动作
func (s *Speed) Inner() Action {
	return s.inner
}

// Start 绑定目标并启动内部动作
func (s *Speed) Start(target Target) {
	s.baseAction.Start(target)
	s.inner.Start(target)
}

// Stop 停止内部动作
func (s *Speed) Stop() {
	s.inner.Stop()
	s.baseAction.Stop()
}

// Step 以缩放后的 dt 推进内部动作
func (s *Speed) Step(dt float64) {
	s.inner.Step(dt * s.rate)
}

// Update 直接分派给内部动作
func (s *Speed) Update(t float64) {
	s.inner.Update(t)
}

// IsDone 随内部动作完成
func (s *Speed) IsDone() bool {
	return s.inner.IsDone()
}

// Clone 克隆速度包装
func (s *Speed) Clone() Action {
	n := NewSpeed(s.inner.Clone(), s.rate)
	n.tag = s.tag
	n.speed = s.speed
	return n
}

// Reverse 内部动作反转后保持同一倍率
func (s *Speed) Reverse() (Action, error) {
	rev, err := s.inner.Reverse()
	if err != nil {
		return nil, err
	}
	n := NewSpeed(rev, s.rate)
	n.tag = s.tag
	n.speed = s.speed
	return n, nil
}
