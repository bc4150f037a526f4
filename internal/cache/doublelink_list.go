package cache

type LinkedListNode struct {
	Prev  *LinkedListNode
	Next  *LinkedListNode
	Key   string
	Value interface{}
}

// DoubleLinkedList keeps sentinel Head/Tail nodes so inner nodes always have
// both neighbours.
type DoubleLinkedList struct {
	len  int64
	Head *LinkedListNode
	Tail *LinkedListNode
}

type List = DoubleLinkedList

func NewList() *List {
	list := new(DoubleLinkedList)
	list.Head = &LinkedListNode{}
	list.Tail = &LinkedListNode{}
	list.Head.Next = list.Tail
	list.Tail.Prev = list.Head
	return list
}

func (d *List) Len() int64 {
	return d.len
}

func (d *List) PushFront(key string, value interface{}) *LinkedListNode {
	d.len++
	node := &LinkedListNode{Key: key, Value: value}
	node.Prev = d.Head
	node.Next = d.Head.Next
	d.Head.Next = node
	node.Next.Prev = node

	return node
}

// Back returns the least recently pushed node, nil when empty.
func (d *List) Back() *LinkedListNode {
	if d.len == 0 {
		return nil
	}
	return d.Tail.Prev
}

func (d *List) Remove(n *LinkedListNode) {
	prev := n.Prev
	prev.Next = n.Next
	n.Next.Prev = prev
	n.Next = nil
	n.Prev = nil
	d.len--
}

func (d *List) toHead(pv *LinkedListNode) {
	if pv == d.Head.Next {
		return
	}

	ptr := pv.Prev
	ptr.Next = pv.Next
	pv.Next.Prev = ptr

	sp := d.Head.Next
	pv.Next = sp
	pv.Prev = d.Head
	d.Head.Next = pv
	sp.Prev = pv
}
