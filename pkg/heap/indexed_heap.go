package heap

// IndexedHeap 带 id 索引的最小堆
//
// 在堆序之外额外维护 id→当前下标 的映射，使外部可以通过稳定 id
// 以 O(log n) 定位、删除元素。核心正确性约束：堆内部的每一次交换
// 都必须在同一操作中更新两个被交换元素的记录位置。
//
// 元素的 id 由构造时传入的 id 函数提取，id 在元素生命周期内必须
// 稳定且唯一；id 字段永远不会被复用来存放堆下标。
type IndexedHeap[T any] struct {
	data []T
	less Less[T]
	id   func(T) uint64
	pos  map[uint64]int // id -> 当前下标
}

// NewIndexedHeap 创建一个新的带索引最小堆
func NewIndexedHeap[T any](less Less[T], id func(T) uint64) *IndexedHeap[T] {
	return &IndexedHeap[T]{
		data: make([]T, 0),
		less: less,
		id:   id,
		pos:  make(map[uint64]int),
	}
}

// Len 返回堆中元素数量
func (h *IndexedHeap[T]) Len() int {
	return len(h.data)
}

// Peek 返回堆顶元素（最小元素）
// 堆为空时返回 (零值, false)
func (h *IndexedHeap[T]) Peek() (T, bool) {
	if len(h.data) == 0 {
		var zero T
		return zero, false
	}
	return h.data[0], true
}

// IndexOf 返回 id 对应元素的当前下标
func (h *IndexedHeap[T]) IndexOf(id uint64) (int, bool) {
	i, ok := h.pos[id]
	return i, ok
}

// Push 插入元素并登记其位置，然后向上调整
func (h *IndexedHeap[T]) Push(x T) {
	h.data = append(h.data, x)
	h.pos[h.id(x)] = len(h.data) - 1
	h.up(len(h.data) - 1)
}

// Pop 弹出堆顶元素
// 堆为空时返回 (零值, false)，调用方必须检查
func (h *IndexedHeap[T]) Pop() (T, bool) {
	if len(h.data) == 0 {
		var zero T
		return zero, false
	}
	return h.removeAt(0), true
}

// RemoveAt 删除下标 i 处的元素并返回
func (h *IndexedHeap[T]) RemoveAt(i int) (T, bool) {
	if i < 0 || i >= len(h.data) {
		var zero T
		return zero, false
	}
	return h.removeAt(i), true
}

// RemoveByID 通过稳定 id 删除元素
// id 不存在时返回 (零值, false)
func (h *IndexedHeap[T]) RemoveByID(id uint64) (T, bool) {
	i, ok := h.pos[id]
	if !ok {
		var zero T
		return zero, false
	}
	return h.removeAt(i), true
}

// Fix 在下标 i 处元素的键被外部修改后恢复堆序
func (h *IndexedHeap[T]) Fix(i int) {
	if i < 0 || i >= len(h.data) {
		return
	}
	if !h.down(i) {
		h.up(i)
	}
}

func (h *IndexedHeap[T]) removeAt(i int) T {
	n := len(h.data) - 1
	if i != n {
		h.swap(i, n)
	}
	removed := h.data[n]
	delete(h.pos, h.id(removed))
	var zero T
	h.data[n] = zero
	h.data = h.data[:n]
	if i < n {
		if !h.down(i) {
			h.up(i)
		}
	}
	return removed
}

func (h *IndexedHeap[T]) up(j int) {
	for j > 0 {
		parent := (j - 1) / 2
		if !h.less(h.data[j], h.data[parent]) {
			break
		}
		h.swap(parent, j)
		j = parent
	}
}

func (h *IndexedHeap[T]) down(i int) bool {
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

// swap 交换两个下标处的元素，并同步更新两者在映射中的位置
// 映射更新与交换必须在同一操作内完成，否则 IndexOf 会失效
func (h *IndexedHeap[T]) swap(i, j int) {
	h.data[i], h.data[j] = h.data[j], h.data[i]
	h.pos[h.id(h.data[i])] = i
	h.pos[h.id(h.data[j])] = j
}
