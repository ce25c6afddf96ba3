// Package scheduler 提供按帧推进的定时器调度
//
// 调度器持有一个按触发时间排序的带索引最小堆，每个逻辑帧由宿主
// 调用 Advance(now) 触发所有到期定时器；取消通过稳定 id 在堆中
// 定位完成。所有操作都在宿主的逻辑帧内同步执行，无跨线程共享。
package scheduler

import (
	"errors"
	"log"

	"github.com/decker502/motion/pkg/heap"
)

// ErrNilHandler 调度时回调为空
var ErrNilHandler = errors.New("scheduler: nil handler")

// Scheduler 定时器调度器
//
// 触发顺序约定：触发时间早者先触发；触发时间相同时按 id 升序
// （即按调度先后顺序，稳定 FIFO）。
type Scheduler struct {
	timers *heap.IndexedHeap[*Timer]
	nextID uint64
	now    float64

	// Advance 执行期间入堆的定时器先进入 deferred，
	// 本轮结束后统一入堆，保证它们最早在下一轮触发
	advancing bool
	deferred  []*Timer

	// 正在触发的定时器；其回调内的 Cancel 通过标记生效，
	// 阻止触发结束后的回堆
	firing          *Timer
	firingCancelled bool
}

// NewScheduler 创建一个新的调度器
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: heap.NewIndexedHeap(
			func(a, b *Timer) bool {
				if a.nextDue != b.nextDue {
					return a.nextDue < b.nextDue
				}
				return a.id < b.id
			},
			func(t *Timer) uint64 { return t.id },
		),
		nextID: 1, // id 从 1 开始，0 保留为无效 id
	}
}

// Now 返回最近一次 Advance 的时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// Len 返回仍在调度中的定时器数量
func (s *Scheduler) Len() int {
	return s.timers.Len() + len(s.deferred)
}

// Schedule 创建定时器并入堆，返回其唯一 id
//
// 首次触发时间为 startTime + interval；once 为 true 时触发一次后移除，
// 否则按 interval 周期性触发
func (s *Scheduler) Schedule(handler TimerHandler, startTime, interval float64, once bool) (uint64, error) {
	if handler == nil {
		return 0, ErrNilHandler
	}

	t := &Timer{
		id:       s.nextID,
		handler:  handler,
		begin:    startTime,
		interval: interval,
		once:     once,
		nextDue:  startTime + interval,
	}
	s.nextID++

	s.push(t)
	return t.id, nil
}

// ScheduleOnce 在 delay 秒后触发一次
func (s *Scheduler) ScheduleOnce(handler TimerHandler, delay float64) (uint64, error) {
	return s.Schedule(handler, s.now, delay, true)
}

// ScheduleInterval 每 interval 秒周期性触发
func (s *Scheduler) ScheduleInterval(handler TimerHandler, interval float64) (uint64, error) {
	return s.Schedule(handler, s.now, interval, false)
}

// Cancel 通过 id 取消定时器
// 定时器已触发完毕或已取消时为无操作，不是错误
func (s *Scheduler) Cancel(id uint64) {
	if s.firing != nil && s.firing.id == id {
		s.firingCancelled = true
		return
	}
	if _, ok := s.timers.RemoveByID(id); ok {
		return
	}
	for i, t := range s.deferred {
		if t.id == id {
			s.deferred = append(s.deferred[:i], s.deferred[i+1:]...)
			return
		}
	}
}

// Advance 将调度器推进到时刻 now，触发所有到期定时器
//
// 反复取堆顶：nextDue <= now 则弹出并触发；单次定时器触发后丢弃，
// 周期定时器重新计算 nextDue 后立即回堆，因此落后多个周期的定时器
// 会在同一轮内逐周期补触发（每次触发 nextDue 严格前移，循环必然
// 终止）。本轮内新调度的定时器、以及 interval <= 0 的周期定时器的
// 回堆被推迟到本轮结束，保证它们最早在下一轮 Advance 触发。
func (s *Scheduler) Advance(now float64) {
	s.now = now
	s.advancing = true

	for {
		t, ok := s.timers.Peek()
		if !ok || t.nextDue > now {
			break
		}
		s.timers.Pop()

		s.firing = t
		s.firingCancelled = false
		s.invoke(t, now)
		s.firing = nil

		if !t.once && !s.firingCancelled {
			s.push(t)
		}
	}

	s.advancing = false
	for _, t := range s.deferred {
		s.timers.Push(t)
	}
	s.deferred = s.deferred[:0]
}

// push 将定时器入堆；Advance 执行期间到期时间未前移的入堆请求
// 进入推迟队列，防止同一实例在一轮内重复触发
func (s *Scheduler) push(t *Timer) {
	if s.advancing && t.nextDue <= s.now && t.interval <= 0 {
		s.deferred = append(s.deferred, t)
		return
	}
	if s.advancing && t.timesFired == 0 {
		// 回调里新调度的定时器：推迟到本轮结束
		s.deferred = append(s.deferred, t)
		return
	}
	s.timers.Push(t)
}

// invoke 触发单个定时器，隔离回调 panic
// 一个回调失败不应使同一帧内其余定时器与动作停摆
func (s *Scheduler) invoke(t *Timer, now float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Scheduler] 定时器 %d 回调 panic: %v", t.id, r)
		}
	}()
	t.fire(now)
}
