package action

// ActionInstant 零时长动作的基座
// 第一次 Update 即完成
type ActionInstant struct {
	baseAction
	done bool
}

func newActionInstant() ActionInstant {
	return ActionInstant{baseAction: newBaseAction()}
}

// Duration 零时长
func (a *ActionInstant) Duration() float64 {
	return 0
}

// Elapsed 零时长动作不累计时间
func (a *ActionInstant) Elapsed() float64 {
	return 0
}

// IsDone 是否已触发
func (a *ActionInstant) IsDone() bool {
	return a.done
}

// Start 绑定目标并复位触发标记
func (a *ActionInstant) Start(target Target) {
	a.baseAction.Start(target)
	a.done = false
}

// CallFuncHandler 回调动作的处理函数
type CallFuncHandler func(target Target, data interface{})

// CallFunc 调用外部回调的即时动作
// 回调得到当前目标和可选负载；常用于在动作序列中触发游戏逻辑
type CallFunc struct {
	ActionInstant
	handler CallFuncHandler
	data    interface{}
}

// NewCallFunc 创建回调动作
func NewCallFunc(handler func(target Target)) *CallFunc {
	return NewCallFuncData(func(target Target, _ interface{}) {
		handler(target)
	}, nil)
}

// NewCallFuncData 创建带负载的回调动作
func NewCallFuncData(handler CallFuncHandler, data interface{}) *CallFunc {
	return &CallFunc{
		ActionInstant: newActionInstant(),
		handler:       handler,
		data:          data,
	}
}

// Step 即时动作直接以完成进度触发
func (c *CallFunc) Step(dt float64) {
	c.Update(1)
}

// Update 触发回调
// 回调可以自由改动动作图（包括移除本动作），管理器的
// 加锁/延迟删除协议保证这在更新过程中是安全的
func (c *CallFunc) Update(t float64) {
	c.done = true
	if c.handler != nil {
		c.handler(c.target, c.data)
	}
}

// Clone 克隆回调动作（共享同一处理函数与负载）
func (c *CallFunc) Clone() Action {
	n := NewCallFuncData(c.handler, c.data)
	n.tag = c.tag
	n.speed = c.speed
	return n
}

// Reverse 回调动作的逆即其自身的克隆
func (c *CallFunc) Reverse() (Action, error) {
	return c.Clone(), nil
}
