/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Node is a scene-graph item that can be rendered by different backends.
// It supports basic transforms, styling, bounds, and hit-testing.
type Node interface {
	Bounds() Rect
	Transform() Affine2D
	SetTransform(Affine2D)
	Fill() Fill
	Stroke() Stroke
	Hit(p Pt) bool
}

type baseNode struct {
	xf     Affine2D
	fill   Fill
	stroke Stroke
}

func (b *baseNode) Transform() Affine2D     { return b.xf }
func (b *baseNode) SetTransform(m Affine2D) { b.xf = m }
func (b *baseNode) Fill() Fill              { return b.fill }
func (b *baseNode) Stroke() Stroke          { return b.stroke }

// local maps p from parent space into the node's own space.
func (b *baseNode) local(p Pt) Pt { return b.xf.Invert().Apply(p) }

// RectNode draws an axis-aligned rectangle before transform.
type RectNode struct {
	baseNode
	rect Rect
}

func NewRect(r Rect, f Fill, s Stroke) *RectNode {
	return &RectNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, rect: r}
}

func (n *RectNode) Bounds() Rect  { return n.xf.ApplyRect(n.rect) }
func (n *RectNode) Hit(p Pt) bool { return n.rect.Contains(n.local(p)) }

// EllipseNode represents an ellipse inscribed in rect.
type EllipseNode struct {
	baseNode
	rect Rect
}

func NewEllipse(r Rect, f Fill, s Stroke) *EllipseNode {
	return &EllipseNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, rect: r}
}

func (n *EllipseNode) Bounds() Rect { return n.xf.ApplyRect(n.rect) }

func (n *EllipseNode) Hit(p Pt) bool {
	q := n.local(p)
	c := n.rect.Center()
	rx, ry := n.rect.W/2, n.rect.H/2
	if rx == 0 || ry == 0 {
		return false
	}
	dx := (q.X - c.X) / rx
	dy := (q.Y - c.Y) / ry
	return dx*dx+dy*dy <= 1
}

// RoundedRectNode uses uniform corner radii.
type RoundedRectNode struct {
	baseNode
	rect Rect
	r    float64
}

func NewRoundedRect(r Rect, radius float64, f Fill, s Stroke) *RoundedRectNode {
	return &RoundedRectNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, rect: r, r: radius}
}

func (n *RoundedRectNode) Bounds() Rect { return n.xf.ApplyRect(n.rect) }

// Radius is the corner radius clamped to half the shorter side.
func (n *RoundedRectNode) Radius() float64 {
	return max(0, min(n.r, n.rect.W/2, n.rect.H/2))
}

func (n *RoundedRectNode) Hit(p Pt) bool {
	q := n.local(p)
	if !n.rect.Contains(q) {
		return false
	}
	r := n.Radius()
	core := n.rect.Inset(r, 0)
	if core.Contains(q) || n.rect.Inset(0, r).Contains(q) {
		return true
	}
	for _, x := range [2]float64{n.rect.X + r, n.rect.X + n.rect.W - r} {
		for _, y := range [2]float64{n.rect.Y + r, n.rect.Y + n.rect.H - r} {
			dx, dy := q.X-x, q.Y-y
			if dx*dx+dy*dy <= r*r {
				return true
			}
		}
	}
	return false
}

// TextNode is a single line of text laid out inside rect. The fill color is
// the text color; Size is in pixels.
type TextNode struct {
	baseNode
	rect   Rect
	Text   string
	Size   float64
	Family string
}

func NewText(r Rect, text string, size float64, family string, c Color) *TextNode {
	return &TextNode{baseNode: baseNode{xf: Identity, fill: Solid(c)}, rect: r, Text: text, Size: size, Family: family}
}

func (n *TextNode) Bounds() Rect  { return n.xf.ApplyRect(n.rect) }
func (n *TextNode) Hit(p Pt) bool { return n.rect.Contains(n.local(p)) }

// Group is a container for child nodes with its own transform.
type Group struct {
	baseNode
	Children []Node
}

func NewGroup(children ...Node) *Group {
	g := &Group{baseNode: baseNode{xf: Identity}}
	g.Children = append(g.Children, children...)
	return g
}

func (g *Group) Bounds() Rect {
	var b Rect
	for _, c := range g.Children {
		b = b.Union(c.Bounds())
	}
	return g.xf.ApplyRect(b)
}

func (g *Group) Hit(p Pt) bool {
	q := g.local(p)
	for i := len(g.Children) - 1; i >= 0; i-- { // top-most first
		if g.Children[i].Hit(q) {
			return true
		}
	}
	return false
}

// Walk visits every leaf below n in paint order together with its
// accumulated transform.
func Walk(n Node, parent Affine2D, fn func(leaf Node, xf Affine2D)) {
	xf := parent.Mul(n.Transform())
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			Walk(c, xf, fn)
		}
		return
	}
	fn(n, xf)
}

// LocalRect returns the untransformed geometry of a leaf node.
func LocalRect(n Node) Rect {
	switch t := n.(type) {
	case *RectNode:
		return t.rect
	case *EllipseNode:
		return t.rect
	case *RoundedRectNode:
		return t.rect
	case *TextNode:
		return t.rect
	case *Group:
		var b Rect
		for _, c := range t.Children {
			b = b.Union(c.Bounds())
		}
		return b
	}
	return Rect{}
}
