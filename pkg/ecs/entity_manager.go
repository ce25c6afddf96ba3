package ecs

import "github.com/decker502/motion/pkg/types"

// EntityID 是实体的唯一标识符
type EntityID uint64

// Node 带变换状态的空间实体
// 动作系统通过稳定 id 定位它，并就地修改其位置/旋转/缩放
type Node struct {
	id       EntityID
	position types.Vec3
	rotation types.Vec3 // 欧拉角（度）
	scale    types.Vec3
}

// ID 返回实体的稳定标识，可用作查找键
func (n *Node) ID() uint64 {
	return uint64(n.id)
}

// Position 返回当前位置
func (n *Node) Position() types.Vec3 {
	return n.position
}

// SetPosition 设置位置
func (n *Node) SetPosition(p types.Vec3) {
	n.position = p
}

// Rotation 返回当前旋转（欧拉角，度）
func (n *Node) Rotation() types.Vec3 {
	return n.rotation
}

// SetRotation 设置旋转
func (n *Node) SetRotation(r types.Vec3) {
	n.rotation = r
}

// Scale 返回当前缩放
func (n *Node) Scale() types.Vec3 {
	return n.scale
}

// SetScale 设置缩放
func (n *Node) SetScale(s types.Vec3) {
	n.scale = s
}

// NodeManager 管理所有空间实体
type NodeManager struct {
	nextID uint64
	nodes  map[EntityID]*Node
	// 注册顺序，保证遍历顺序稳定
	order []EntityID
	// 待删除的实体ID列表
	nodesToDestroy []EntityID
}

// NewNodeManager 创建一个新的 NodeManager 实例
func NewNodeManager() *NodeManager {
	return &NodeManager{
		nextID:         1, // ID从1开始,0保留为无效ID
		nodes:          make(map[EntityID]*Node),
		order:          make([]EntityID, 0),
		nodesToDestroy: make([]EntityID, 0),
	}
}

// CreateNode 创建新实体并返回
// 缩放默认为 (1,1,1)
func (nm *NodeManager) CreateNode() *Node {
	id := EntityID(nm.nextID)
	nm.nextID++
	n := &Node{
		id:    id,
		scale: types.One(),
	}
	nm.nodes[id] = n
	nm.order = append(nm.order, id)
	return n
}

// GetNode 获取指定 id 的实体
func (nm *NodeManager) GetNode(id EntityID) (*Node, bool) {
	n, ok := nm.nodes[id]
	return n, ok
}

// DestroyNode 标记实体待删除(不立即删除)
func (nm *NodeManager) DestroyNode(id EntityID) {
	nm.nodesToDestroy = append(nm.nodesToDestroy, id)
}

// Each 按注册顺序遍历所有存活实体
func (nm *NodeManager) Each(fn func(*Node)) {
	for _, id := range nm.order {
		if n, ok := nm.nodes[id]; ok {
			fn(n)
		}
	}
}

// Len 返回存活实体数量
func (nm *NodeManager) Len() int {
	return len(nm.nodes)
}

// RemoveMarkedNodes 清理所有标记删除的实体
// cleanup 在每个实体移除前调用，用于释放外部关联（如正在运行的动作）
func (nm *NodeManager) RemoveMarkedNodes(cleanup func(*Node)) {
	for _, id := range nm.nodesToDestroy {
		n, ok := nm.nodes[id]
		if !ok {
			continue
		}
		if cleanup != nil {
			cleanup(n)
		}
		delete(nm.nodes, id)
		for i, oid := range nm.order {
			if oid == id {
				nm.order = append(nm.order[:i], nm.order[i+1:]...)
				break
			}
		}
	}
	nm.nodesToDestroy = nm.nodesToDestroy[:0] // 清空切片
}
