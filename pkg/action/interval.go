package action

import "github.com/decker502/motion/pkg/utils"

// ActionInterval 有限时长动作的计时基座
//
// 以 elapsed/duration 跟踪进度。Start 之后的第一次 Step 会把
// elapsed 归零（吸收启动帧的杂散间隔），之后每次 Step 累加 dt。
// 归一化进度经过按序组合的缓动管线后交给 Update。
type ActionInterval struct {
	baseAction
	duration  float64
	elapsed   float64
	firstTick bool
	easing    []utils.EaseFunc
}

func newActionInterval(duration float64) ActionInterval {
	return ActionInterval{
		baseAction: newBaseAction(),
		duration:   duration,
		firstTick:  true,
	}
}

// Duration 返回动作总时长（秒）
func (ai *ActionInterval) Duration() float64 {
	return ai.duration
}

// Elapsed 返回已累计时间（秒），可能超过 Duration
func (ai *ActionInterval) Elapsed() float64 {
	return ai.elapsed
}

// IsDone 已累计时间达到总时长即完成
func (ai *ActionInterval) IsDone() bool {
	return ai.elapsed >= ai.duration
}

// Start 绑定目标并重置计时状态
func (ai *ActionInterval) Start(target Target) {
	ai.baseAction.Start(target)
	ai.elapsed = 0
	ai.firstTick = true
}

// Easing 追加缓动函数到管线尾部
// 管线按追加顺序从左到右组合
func (ai *ActionInterval) Easing(fns ...utils.EaseFunc) {
	ai.easing = append(ai.easing, fns...)
}

// tick 累计 dt 并返回缓动后的归一化进度
// 时长被钳在 fltEpsilon 之上，零时长动作也能得到一次有效更新
func (ai *ActionInterval) tick(dt float64) float64 {
	if ai.firstTick {
		ai.firstTick = false
		ai.elapsed = 0
	} else {
		ai.elapsed += dt
	}

	d := ai.duration
	if d < fltEpsilon {
		d = fltEpsilon
	}
	t := utils.Clamp(ai.elapsed/d, 0, 1)
	for _, ease := range ai.easing {
		t = ease(t)
	}
	return t
}

// copyDecorationTo 把标签/速度/缓动管线复制到克隆或反转出的动作上
func (ai *ActionInterval) copyDecorationTo(dst *ActionInterval) {
	dst.tag = ai.tag
	dst.speed = ai.speed
	if len(ai.easing) > 0 {
		dst.easing = append([]utils.EaseFunc(nil), ai.easing...)
	}
}
