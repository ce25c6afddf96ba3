// Package heap 提供基于切片的通用二叉最小堆
//
// 包含两个变体：
//   - Heap: 普通最小堆，支持任意位置删除与修复
//   - IndexedHeap: 在普通堆之上额外维护 id→下标 的映射，
//     使外部可以通过稳定 id 以 O(log n) 定位并删除元素
package heap

// Less 比较函数类型
// 返回 true 表示 a 的优先级高于 b（a 应该更靠近堆顶）
type Less[T any] func(a, b T) bool

// Heap 基于切片的二叉最小堆
// 不变式：对任意非根下标 i，data[i] 不小于其父节点
type Heap[T any] struct {
	data []T
	less Less[T]
}

// NewHeap 创建一个新的最小堆
func NewHeap[T any](less Less[T]) *Heap[T] {
	return &Heap[T]{
		data: make([]T, 0),
		less: less,
	}
}

// Len 返回堆中元素数量
func (h *Heap[T]) Len() int {
	return len(h.data)
}

// Peek 返回堆顶元素（最小元素）
// 堆为空时返回 (零值, false)
func (h *Heap[T]) Peek() (T, bool) {
	if len(h.data) == 0 {
		var zero T
		return zero, false
	}
	return h.data[0], true
}

// Push 插入元素，然后向上调整直到满足堆序
func (h *Heap[T]) Push(x T) {
	h.data = append(h.data, x)
	h.up(len(h.data) - 1)
}

// Pop 弹出堆顶元素
// 堆为空时返回 (零值, false)，调用方必须检查
func (h *Heap[T]) Pop() (T, bool) {
	if len(h.data) == 0 {
		var zero T
		return zero, false
	}
	return h.removeAt(0), true
}

// RemoveAt 删除下标 i 处的元素并返回
// 下标越界时返回 (零值, false)
func (h *Heap[T]) RemoveAt(i int) (T, bool) {
	if i < 0 || i >= len(h.data) {
		var zero T
		return zero, false
	}
	return h.removeAt(i), true
}

// Fix 在下标 i 处元素的键被外部修改后恢复堆序
func (h *Heap[T]) Fix(i int) {
	if i < 0 || i >= len(h.data) {
		return
	}
	// 先尝试下沉，位置未变则上浮
	if !h.down(i) {
		h.up(i)
	}
}

// removeAt 与末尾元素交换后收缩，再从 i 处下沉或上浮
// 交换来的元素相对 i 的父子两侧都可能失序，两个方向都要尝试
func (h *Heap[T]) removeAt(i int) T {
	n := len(h.data) - 1
	if i != n {
		h.swap(i, n)
	}
	removed := h.data[n]
	var zero T
	h.data[n] = zero // 避免保留已删除元素的引用
	h.data = h.data[:n]
	if i < n {
		if !h.down(i) {
			h.up(i)
		}
	}
	return removed
}

// up 将下标 j 处的元素向堆顶上浮
func (h *Heap[T]) up(j int) {
	for j > 0 {
		parent := (j - 1) / 2
		if !h.less(h.data[j], h.data[parent]) {
			break
		}
		h.swap(parent, j)
		j = parent
	}
}

// down 将下标 i 处的元素向叶子下沉
// 返回是否发生了移动
func (h *Heap[T]) down(i int) bool {
	moved := false
	n := len(h.data)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && h.less(h.data[right], h.data[left]) {
			smallest = right
		}
		if !h.less(h.data[smallest], h.data[i]) {
			break
		}
		h.swap(i, smallest)
		i = smallest
		moved = true
	}
	return moved
}

// swap 交换两个下标处的元素
func (h *Heap[T]) swap(i, j int) {
	h.data[i], h.data[j] = h.data[j], h.data[i]
}
