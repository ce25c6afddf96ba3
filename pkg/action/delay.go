package action

// DelayTime 空转指定时长的动作
// 常用于在序列中制造停顿，或为并行组合补齐时长
type DelayTime struct {
	ActionInterval
}

// NewDelayTime 创建延迟动作
func NewDelayTime(duration float64) *DelayTime {
	return &DelayTime{ActionInterval: newActionInterval(duration)}
}

// Step 推进计时
func (d *DelayTime) Step(dt float64) {
	d.Update(d.tick(dt))
}

// Update 延迟动作没有效果
func (d *DelayTime) Update(t float64) {}

// Clone 克隆延迟动作
func (d *DelayTime) Clone() Action {
	n := NewDelayTime(d.duration)
	d.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 延迟的逆仍是等长延迟
func (d *DelayTime) Reverse() (Action, error) {
	n := NewDelayTime(d.duration)
	d.copyDecorationTo(&n.ActionInterval)
	return n, nil
}
