// Package gfx is a small software 3D engine for matcap-shaded scenes.
//
// It provides a scene graph of meshes that share geometry and materials by
// pointer, a perspective camera with damped orbit controls, geometry builders
// (torus, shape extrusion with bevels) and a depth-buffered rasterizer that
// draws into any Target.
//
// Pipeline (fixed):
//
//	Scene → Model/View → Projection → Near-plane rejection → Rasterization → Target.
//
// All math is float32. Rendering is single-threaded; a Scene, its camera and
// the Renderer must only be touched from one goroutine.
package gfx
