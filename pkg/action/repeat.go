package action

import "math"

// Repeat 把内部动作重复执行固定次数
//
// 总时长为内部时长 × 次数。一帧越过一个或多个循环边界时，
// 已完成的循环逐个补发 Update(1) + Stop + Start，剩余时间继续
// 推进当前循环，循环边界处不丢失运动量。
//
// 内部动作为零时长（即时动作）时，内部计数减一以避免边界处的
// 重复触发；此时整个重复在第一次 Step 内一次性触发完。
type Repeat struct {
	ActionInterval
	inner    FiniteAction
	reqTimes int // 构造时请求的次数
	times    int // 内部计数（即时内部动作时为 reqTimes-1）
	total    int
	nextDt   float64
	instant  bool
}

// NewRepeat 创建重复动作
func NewRepeat(inner FiniteAction, times int) *Repeat {
	r := &Repeat{
		ActionInterval: newActionInterval(inner.Duration() * float64(times)),
		inner:          inner,
		reqTimes:       times,
		times:          times,
		instant:        inner.Duration() <= fltEpsilon,
	}
	if r.instant {
		r.times--
	}
	return r
}

// Start 绑定目标、复位计数并启动内部动作
func (r *Repeat) Start(target Target) {
	r.ActionInterval.Start(target)
	r.total = 0
	d := r.duration
	if d < fltEpsilon {
		d = fltEpsilon
	}
	r.nextDt = r.inner.Duration() / d
	r.inner.Start(target)
}

// Stop 停止内部动作
func (r *Repeat) Stop() {
	r.inner.Stop()
	r.baseAction.Stop()
}

// Step 推进计时
func (r *Repeat) Step(dt float64) {
	r.Update(r.tick(dt))
}

// IsDone 所有循环都已完成
func (r *Repeat) IsDone() bool {
	return r.total >= r.times
}

// Update 按外层归一化进度驱动内部动作
func (r *Repeat) Update(t float64) {
	if r.instant {
		// 即时内部动作没有时长可分摊，第一次更新全部触发完
		for r.total <= r.times {
			r.inner.Update(1)
			r.inner.Stop()
			r.total++
			if r.total <= r.times {
				r.inner.Start(r.target)
			}
		}
		return
	}

	d := r.duration
	if d < fltEpsilon {
		d = fltEpsilon
	}
	cycle := r.inner.Duration() / d

	if t >= r.nextDt {
		// 补发所有被越过的循环边界
		for t > r.nextDt && r.total < r.times {
			r.inner.Update(1)
			r.total++
			r.inner.Stop()
			r.inner.Start(r.target)
			r.nextDt += cycle
		}
		if t >= 1 && r.total < r.times {
			r.total++
		}
		if r.total >= r.times {
			r.inner.Update(1)
			r.inner.Stop()
		} else {
			// 剩余时间换算回当前循环自己的归一化进度
			r.inner.Update((t - (r.nextDt - cycle)) / cycle)
		}
	} else {
		r.inner.Update(math.Mod(t*float64(r.times), 1.0))
	}
}

// Clone 克隆重复动作
func (r *Repeat) Clone() Action {
	n := NewRepeat(cloneFinite(r.inner), r.reqTimes)
	r.copyDecorationTo(&n.ActionInterval)
	return n
}

// Reverse 内部动作反转，次数不变
func (r *Repeat) Reverse() (Action, error) {
	rev, err := reverseFinite(r.inner)
	if err != nil {
		return nil, err
	}
	n := NewRepeat(rev, r.reqTimes)
	r.copyDecorationTo(&n.ActionInterval)
	return n, nil
}

// RepeatForever 无限重复内部动作
//
// 永不完成。内部动作在一帧内收尾时立即重启，并把超出的时间
// 在同一帧内继续推进，循环边界处不丢失运动量。
type RepeatForever struct {
	baseAction
	inner FiniteAction
}

// NewRepeatForever 创建无限重复动作
func NewRepeatForever(inner FiniteAction) *RepeatForever {
	return &RepeatForever{
		baseAction: newBaseAction(),
		inner:      inner,
	}
}

// Start 绑定目标并启动内部动作
func (rf *RepeatForever) Start(target Target) {
	rf.baseAction.Start(target)
	rf.inner.Start(target)
}

// Stop 停止内部动作
func (rf *RepeatForever) Stop() {
	rf.inner.Stop()
	rf.baseAction.Stop()
}

// Step 推进内部动作；收尾后带着剩余时间重启
func (rf *RepeatForever) Step(dt float64) {
	rf.inner.Step(dt)
	if !rf.inner.IsDone() {
		return
	}
	diff := rf.inner.Elapsed() - rf.inner.Duration()
	if rf.inner.Duration() > 0 && diff > rf.inner.Duration() {
		diff = math.Mod(diff, rf.inner.Duration())
	}
	rf.inner.Start(rf.target)
	// 第一次 Step 吸收杂散间隔，先空走一步再补剩余时间
	rf.inner.Step(0)
	rf.inner.Step(diff)
}

// Update 直接分派给内部动作
func (rf *RepeatForever) Update(t float64) {
	rf.inner.Update(t)
}

// IsDone 永不完成
func (rf *RepeatForever) IsDone() bool {
	return false
}

// Clone 克隆无限重复动作
func (rf *RepeatForever) Clone() Action {
	n := NewRepeatForever(cloneFinite(rf.inner))
	n.tag = rf.tag
	n.speed = rf.speed
	return n
}

// Reverse 内部动作反转后继续无限重复
func (rf *RepeatForever) Reverse() (Action, error) {
	rev, err := reverseFinite(rf.inner)
	if err != nil {
		return nil, err
	}
	n := NewRepeatForever(rev)
	n.tag = rf.tag
	n.speed = rf.speed
	return n, nil
}
