package gfx

import (
	"sort"

	"github.com/chewxy/math32"
)

// Triangulate splits a polygon with holes into triangles by ear clipping.
//
// pts holds the outer ring followed by every hole ring; holeStarts lists the
// index in pts where each hole begins. The result is a list of index
// triples into pts, each wound counter-clockwise (Y-up).
func Triangulate(pts []Vec2, holeStarts []int) [][3]int {
	outerEnd := len(pts)
	if len(holeStarts) > 0 {
		outerEnd = holeStarts[0]
	}
	var tris [][3]int
	outer := ringFrom(pts, 0, outerEnd, true)
	if outer == nil || outer.next == outer.prev {
		return nil
	}
	if len(holeStarts) > 0 {
		outer = bridgeHoles(pts, holeStarts, outer)
	}
	clipEars(outer, &tris, 0)

	for i, t := range tris {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		if (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) < 0 {
			tris[i] = [3]int{t[0], t[2], t[1]}
		}
	}
	return tris
}

type ringNode struct {
	i       int
	x, y    float32
	prev    *ringNode
	next    *ringNode
	steiner bool
}

// ringFrom builds a circular list for pts[start:end]. Outer rings are stored
// counter-clockwise, holes clockwise.
func ringFrom(pts []Vec2, start, end int, outer bool) *ringNode {
	var last *ringNode
	if outer == (ringArea(pts, start, end) > 0) {
		for i := start; i < end; i++ {
			last = insertNode(i, pts[i], last)
		}
	} else {
		for i := end - 1; i >= start; i-- {
			last = insertNode(i, pts[i], last)
		}
	}
	if last != nil && samePoint(last, last.next) {
		removeNode(last)
		last = last.next
	}
	return last
}

func ringArea(pts []Vec2, start, end int) float32 {
	var sum float32
	for i, j := start, end-1; i < end; j, i = i, i+1 {
		sum += (pts[j].X - pts[i].X) * (pts[i].Y + pts[j].Y)
	}
	return sum
}

func insertNode(i int, p Vec2, last *ringNode) *ringNode {
	n := &ringNode{i: i, x: p.X, y: p.Y}
	if last == nil {
		n.prev = n
		n.next = n
	} else {
		n.next = last.next
		n.prev = last
		last.next.prev = n
		last.next = n
	}
	return n
}

func removeNode(n *ringNode) {
	n.next.prev = n.prev
	n.prev.next = n.next
}

func samePoint(a, b *ringNode) bool { return a.x == b.x && a.y == b.y }

// triArea is negative for counter-clockwise a, b, c.
func triArea(p, q, r *ringNode) float32 {
	return (q.y-p.y)*(r.x-q.x) - (q.x-p.x)*(r.y-q.y)
}

func pointInTriangle(ax, ay, bx, by, cx, cy, px, py float32) bool {
	return (cx-px)*(ay-py) >= (ax-px)*(cy-py) &&
		(ax-px)*(by-py) >= (bx-px)*(ay-py) &&
		(bx-px)*(cy-py) >= (cx-px)*(by-py)
}

// filterPoints removes duplicate and collinear points between start and end.
func filterPoints(start, end *ringNode) *ringNode {
	if start == nil {
		return nil
	}
	if end == nil {
		end = start
	}
	p := start
	for {
		again := false
		if !p.steiner && (samePoint(p, p.next) || triArea(p.prev, p, p.next) == 0) {
			removeNode(p)
			p = p.prev
			end = p
			if p == p.next {
				break
			}
			again = true
		} else {
			p = p.next
		}
		if !again && p == end {
			break
		}
	}
	return end
}

func clipEars(ear *ringNode, tris *[][3]int, pass int) {
	if ear == nil {
		return
	}
	stop := ear
	for ear.prev != ear.next {
		prev, next := ear.prev, ear.next
		if isEar(ear) {
			*tris = append(*tris, [3]int{prev.i, ear.i, next.i})
			removeNode(ear)
			ear = next.next
			stop = next.next
			continue
		}
		ear = next
		if ear == stop {
			switch pass {
			case 0:
				clipEars(filterPoints(ear, nil), tris, 1)
			case 1:
				ear = cureLocalIntersections(filterPoints(ear, nil), tris)
				clipEars(ear, tris, 2)
			case 2:
				splitClip(ear, tris)
			}
			break
		}
	}
}

func isEar(ear *ringNode) bool {
	a, b, c := ear.prev, ear, ear.next
	if triArea(a, b, c) >= 0 {
		return false
	}
	for p := c.next; p != a; p = p.next {
		if (p.x != a.x || p.y != a.y) &&
			pointInTriangle(a.x, a.y, b.x, b.y, c.x, c.y, p.x, p.y) && triArea(p.prev, p, p.next) >= 0 {
			return false
		}
	}
	return true
}

func cureLocalIntersections(start *ringNode, tris *[][3]int) *ringNode {
	if start == nil {
		return nil
	}
	p := start
	for {
		a, b := p.prev, p.next.next
		if !samePoint(a, b) && segmentsIntersect(a, p, p.next, b) && locallyInside(a, b) && locallyInside(b, a) {
			*tris = append(*tris, [3]int{a.i, p.i, b.i})
			removeNode(p)
			removeNode(p.next)
			p = b
			start = b
		}
		p = p.next
		if p == start {
			break
		}
	}
	return filterPoints(p, nil)
}

func splitClip(start *ringNode, tris *[][3]int) {
	a := start
	for {
		for b := a.next.next; b != a.prev; b = b.next {
			if a.i != b.i && isValidDiagonal(a, b) {
				c := splitRing(a, b)
				a = filterPoints(a, a.next)
				c = filterPoints(c, c.next)
				clipEars(a, tris, 0)
				clipEars(c, tris, 0)
				return
			}
		}
		a = a.next
		if a == start {
			return
		}
	}
}

func bridgeHoles(pts []Vec2, holeStarts []int, outer *ringNode) *ringNode {
	var queue []*ringNode
	for k, start := range holeStarts {
		end := len(pts)
		if k+1 < len(holeStarts) {
			end = holeStarts[k+1]
		}
		list := ringFrom(pts, start, end, false)
		if list == nil {
			continue
		}
		if list == list.next {
			list.steiner = true
		}
		queue = append(queue, leftmost(list))
	}
	sort.SliceStable(queue, func(i, j int) bool { return queue[i].x < queue[j].x })
	for _, h := range queue {
		outer = bridgeHole(h, outer)
	}
	return outer
}

func bridgeHole(hole, outer *ringNode) *ringNode {
	bridge := findHoleBridge(hole, outer)
	if bridge == nil {
		return outer
	}
	reverse := splitRing(bridge, hole)
	filterPoints(reverse, reverse.next)
	return filterPoints(bridge, bridge.next)
}

// findHoleBridge finds an outer vertex visible from the hole's leftmost point.
func findHoleBridge(hole, outer *ringNode) *ringNode {
	p := outer
	hx, hy := hole.x, hole.y
	qx := math32.Inf(-1)
	var m *ringNode

	for {
		if hy <= p.y && hy >= p.next.y && p.next.y != p.y {
			x := p.x + (hy-p.y)*(p.next.x-p.x)/(p.next.y-p.y)
			if x <= hx && x > qx {
				qx = x
				if p.next.x > p.x {
					m = p
				} else {
					m = p.next
				}
				if x == hx {
					return m
				}
			}
		}
		p = p.next
		if p == outer {
			break
		}
	}
	if m == nil {
		return nil
	}

	stop := m
	mx, my := m.x, m.y
	tanMin := math32.Inf(1)
	p = m
	for {
		ax, cx := qx, hx
		if hy < my {
			ax, cx = hx, qx
		}
		if hx >= p.x && p.x >= mx && hx != p.x && pointInTriangle(ax, hy, mx, my, cx, hy, p.x, p.y) {
			tan := math32.Abs(hy-p.y) / (hx - p.x)
			if locallyInside(p, hole) && (tan < tanMin || (tan == tanMin && (p.x > m.x || (p.x == m.x && sectorContainsSector(m, p))))) {
				m = p
				tanMin = tan
			}
		}
		p = p.next
		if p == stop {
			break
		}
	}
	return m
}

func sectorContainsSector(m, p *ringNode) bool {
	return triArea(m.prev, m, p.prev) < 0 && triArea(p.next, m, m.next) < 0
}

func leftmost(start *ringNode) *ringNode {
	p, left := start, start
	for {
		if p.x < left.x || (p.x == left.x && p.y < left.y) {
			left = p
		}
		p = p.next
		if p == start {
			return left
		}
	}
}

func isValidDiagonal(a, b *ringNode) bool {
	if a.next.i == b.i || a.prev.i == b.i || intersectsRing(a, b) {
		return false
	}
	if locallyInside(a, b) && locallyInside(b, a) && middleInside(a, b) &&
		(triArea(a.prev, a, b.prev) != 0 || triArea(a, b.prev, b) != 0) {
		return true
	}
	return samePoint(a, b) && triArea(a.prev, a, a.next) > 0 && triArea(b.prev, b, b.next) > 0
}

func sign(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func segmentsIntersect(p1, q1, p2, q2 *ringNode) bool {
	o1 := sign(triArea(p1, q1, p2))
	o2 := sign(triArea(p1, q1, q2))
	o3 := sign(triArea(p2, q2, p1))
	o4 := sign(triArea(p2, q2, q1))
	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

func onSegment(p, q, r *ringNode) bool {
	return q.x <= math32.Max(p.x, r.x) && q.x >= math32.Min(p.x, r.x) &&
		q.y <= math32.Max(p.y, r.y) && q.y >= math32.Min(p.y, r.y)
}

func intersectsRing(a, b *ringNode) bool {
	p := a
	for {
		if p.i != a.i && p.next.i != a.i && p.i != b.i && p.next.i != b.i && segmentsIntersect(p, p.next, a, b) {
			return true
		}
		p = p.next
		if p == a {
			return false
		}
	}
}

func locallyInside(a, b *ringNode) bool {
	if triArea(a.prev, a, a.next) < 0 {
		return triArea(a, b, a.next) >= 0 && triArea(a, a.prev, b) >= 0
	}
	return triArea(a, b, a.prev) < 0 || triArea(a, a.next, b) < 0
}

func middleInside(a, b *ringNode) bool {
	p := a
	inside := false
	px, py := (a.x+b.x)/2, (a.y+b.y)/2
	for {
		if (p.y > py) != (p.next.y > py) && p.next.y != p.y &&
			px < (p.next.x-p.x)*(py-p.y)/(p.next.y-p.y)+p.x {
			inside = !inside
		}
		p = p.next
		if p == a {
			return inside
		}
	}
}

// splitRing links a and b with a bridge, splitting the ring in two; if a and
// b are on different rings it merges them instead.
func splitRing(a, b *ringNode) *ringNode {
	a2 := &ringNode{i: a.i, x: a.x, y: a.y}
	b2 := &ringNode{i: b.i, x: b.x, y: b.y}
	an := a.next
	bp := b.prev

	a.next = b
	b.prev = a

	a2.next = an
	an.prev = a2

	b2.next = a2
	a2.prev = b2

	bp.next = b2
	b2.prev = bp

	return b2
}
