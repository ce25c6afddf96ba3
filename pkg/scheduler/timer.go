package scheduler

// TimerHandler 定时器回调
// now 为本次触发时的调度器时间（秒）
type TimerHandler func(now float64)

// Timer 一个可调度的定时单元
// 由 Scheduler 独占持有：创建后进入堆，单次定时器触发后移除，
// 重复定时器每次触发后重新入堆，直至被显式取消
type Timer struct {
	id         uint64       // 进程生命周期内单调递增的唯一标识
	handler    TimerHandler // 触发时调用的回调
	begin      float64      // 调度起始时间（秒）
	interval   float64      // 触发间隔（秒）
	once       bool         // 是否只触发一次
	timesFired int          // 已触发次数
	nextDue    float64      // 下次触发时间，= begin + interval*(timesFired+1)
}

// ID 返回定时器的唯一标识
func (t *Timer) ID() uint64 {
	return t.id
}

// NextDue 返回下次触发时间（秒）
func (t *Timer) NextDue() float64 {
	return t.nextDue
}

// TimesFired 返回已触发次数
func (t *Timer) TimesFired() int {
	return t.timesFired
}

// fire 触发一次回调并推进计数
// 触发后重新计算 nextDue；是否重新入堆由调度器决定
func (t *Timer) fire(now float64) {
	t.timesFired++
	t.nextDue = t.begin + t.interval*float64(t.timesFired+1)
	t.handler(now)
}
