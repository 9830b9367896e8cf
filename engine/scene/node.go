package scene

// Attachment is something rendered at a node's transform. A node carries at
// most one attachment.
type Attachment interface {
	// NodeDetached tells the attachment that n dropped it in favour of
	// another attachment.
	NodeDetached(n *Node)
}

// Node is a transform in the scene. World = parent.World * T * Rz * Ry * Rx * S.
type Node struct {
	Name        string
	Translation [3]float32
	Rotation    [3]float32 // euler radians, applied X then Y then Z
	Scaling     [3]float32

	parent     *Node
	attachment Attachment
}

func NewNode(name string) *Node {
	return &Node{Name: name, Scaling: [3]float32{1, 1, 1}}
}

func (n *Node) Parent() *Node                  { return n.parent }
func (n *Node) SetParent(p *Node)              { n.parent = p }
func (n *Node) SetTranslation(x, y, z float32) { n.Translation = [3]float32{x, y, z} }
func (n *Node) SetScale(x, y, z float32)       { n.Scaling = [3]float32{x, y, z} }
func (n *Node) SetRotation(x, y, z float32)    { n.Rotation = [3]float32{x, y, z} }

// Local returns the node's transform relative to its parent.
func (n *Node) Local() [16]float32 {
	m := Translate(n.Translation[0], n.Translation[1], n.Translation[2])
	m = Mul(m, RotateZ(n.Rotation[2]))
	m = Mul(m, RotateY(n.Rotation[1]))
	m = Mul(m, RotateX(n.Rotation[0]))
	return Mul(m, Scale(n.Scaling[0], n.Scaling[1], n.Scaling[2]))
}

// World returns the node's transform in world space.
func (n *Node) World() [16]float32 {
	if n.parent == nil {
		return n.Local()
	}
	return Mul(n.parent.World(), n.Local())
}

func (n *Node) Attachment() Attachment { return n.attachment }

// Attach makes a the node's attachment, notifying the previous one.
func (n *Node) Attach(a Attachment) {
	prev := n.attachment
	n.attachment = a
	if prev != nil && prev != a {
		prev.NodeDetached(n)
	}
}

// Detach clears the attachment if it is a.
func (n *Node) Detach(a Attachment) {
	if n.attachment == a {
		n.attachment = nil
	}
}
