package gfx

import (
	"testing"

	"github.com/chewxy/math32"
)

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-4 }

func nearVec(a, b Vec3) bool { return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) }

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	got := Mat4Mul(a, b)
	if got != b {
		t.Fatalf("identity*a mismatch")
	}
	got2 := Mat4Mul(b, a)
	if got2 != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	if m == Mat4Identity() {
		t.Fatalf("lookAt unexpectedly identity")
	}
	p := Mat4MulPoint(m, V3(0, 0, 0))
	if !nearVec(p, V3(0, 0, -3)) {
		t.Fatalf("origin in view space = %+v, want (0,0,-3)", p)
	}
}

func TestComposeOrder(t *testing.T) {
	m := Mat4Compose(V3(1, 0, 0), Euler{Z: math32.Pi / 2}, V3(2, 2, 2))
	// Scale, then rotate +X onto +Y, then translate.
	got := Mat4MulPoint(m, V3(1, 0, 0))
	if !nearVec(got, V3(1, 2, 0)) {
		t.Fatalf("compose = %+v, want (1,2,0)", got)
	}
}

func TestPerspectiveMapsNearFar(t *testing.T) {
	p := Mat4Perspective(DegToRad(75), 1, 0.1, 100)
	n := Mat4MulV4(p, Vec4{Z: -0.1, W: 1})
	f := Mat4MulV4(p, Vec4{Z: -100, W: 1})
	if !near(n.Z/n.W, -1) || !near(f.Z/f.W, 1) {
		t.Fatalf("near=%v far=%v", n.Z/n.W, f.Z/f.W)
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	for _, v := range []Vec3{V3(0, 0, 3), V3(1, 2, 3), V3(-4, 0.5, -1)} {
		got := SphericalFromVec3(v).Vec3()
		if !nearVec(got, v) {
			t.Fatalf("round trip %+v -> %+v", v, got)
		}
	}
}

func TestBox3(t *testing.T) {
	b := EmptyBox3()
	if !b.IsEmpty() {
		t.Fatalf("expected empty")
	}
	if b.Center() != (Vec3{}) {
		t.Fatalf("empty center = %+v", b.Center())
	}
	b = b.Expand(V3(-1, 0, 2)).Expand(V3(3, 4, 2))
	if b.Center() != V3(1, 2, 2) {
		t.Fatalf("center = %+v", b.Center())
	}
	if b.Size() != V3(4, 4, 0) {
		t.Fatalf("size = %+v", b.Size())
	}
}
