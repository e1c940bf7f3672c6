// Package renderer draws FrameDriver output with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tracer/camera"
	"github.com/pthm-cable/tracer/mesh"
	"github.com/pthm-cable/tracer/vec"
)

// Surface implements game.Surface on top of the current raylib drawing
// context. Calls must happen between rl.BeginDrawing and rl.EndDrawing.
type Surface struct {
	// ShowGrid draws a ground reference grid in the 3D scene.
	ShowGrid bool
	// Wireframe draws triangle edges instead of filled faces.
	Wireframe bool

	cam rl.Camera3D

	// GPU copy of the last mesh drawn, replaced when the driver rebuilds.
	source   *mesh.Mesh
	gpu      rl.Mesh
	material rl.Material
	loaded   bool
}

// NewSurface creates a raylib surface. Close releases its GPU resources.
func NewSurface() *Surface {
	return &Surface{ShowGrid: true}
}

// Close unloads the uploaded mesh and material.
func (s *Surface) Close() {
	s.unloadMesh()
	if s.loaded {
		rl.UnloadMaterial(s.material)
		s.loaded = false
	}
}

// Clear fills the whole frame.
func (s *Surface) Clear(c color.RGBA) {
	rl.ClearBackground(c)
}

// Circle draws a filled particle.
func (s *Surface) Circle(center vec.Vec2, radius float64, c color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(center.X), float32(center.Y)), float32(radius), c)
}

// BeginScene enters 3D mode looking at the origin from the orbit position.
func (s *Surface) BeginScene(cam *camera.Orbit) {
	x, y, z := cam.Position()
	s.cam = rl.NewCamera3D(
		rl.NewVector3(float32(x), float32(y), float32(z)),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		float32(cam.Fovy),
		rl.CameraPerspective,
	)
	rl.BeginMode3D(s.cam)
	if s.ShowGrid {
		rl.DrawGrid(12, 1)
	}
}

// EndScene leaves 3D mode.
func (s *Surface) EndScene() {
	rl.EndMode3D()
}

// Mesh draws the surface. Vertices are lifted from (x, y, z=f) into raylib's
// Y-up space as (x, f, y). The filled surface is uploaded once per rebuilt
// mesh with per-vertex colors and both windings, so it stays visible from below.
func (s *Surface) Mesh(m *mesh.Mesh) {
	if s.Wireframe {
		for _, t := range m.Triangles {
			a, b, c := lift(m.Vertices[t[0]]), lift(m.Vertices[t[1]]), lift(m.Vertices[t[2]])
			col := m.Colors[t[0]]
			rl.DrawLine3D(a, b, col)
			rl.DrawLine3D(b, c, col)
			rl.DrawLine3D(c, a, col)
		}
		return
	}
	if m != s.source {
		s.upload(m)
	}
	if s.gpu.VertexCount == 0 {
		return
	}
	rl.DrawMesh(s.gpu, s.material, rl.MatrixIdentity())
}

func (s *Surface) upload(m *mesh.Mesh) {
	s.unloadMesh()
	s.source = m
	if !s.loaded {
		s.material = rl.LoadMaterialDefault()
		s.loaded = true
	}

	pos, cols := m.Unindexed(true)
	if len(pos) == 0 {
		return
	}
	vertices := make([]float32, 0, 3*len(pos))
	for _, p := range pos {
		v := lift(p)
		vertices = append(vertices, v.X, v.Y, v.Z)
	}
	colors := make([]uint8, 0, 4*len(cols))
	for _, c := range cols {
		colors = append(colors, c.R, c.G, c.B, c.A)
	}

	s.gpu = rl.Mesh{
		VertexCount:   int32(len(pos)),
		TriangleCount: int32(len(pos) / 3),
		Vertices:      &vertices[0],
		Colors:        &colors[0],
	}
	rl.UploadMesh(&s.gpu, false)
	// The GPU holds its own copy; drop the Go buffers so draws pass no Go pointers.
	s.gpu.Vertices = nil
	s.gpu.Colors = nil
}

func (s *Surface) unloadMesh() {
	if s.gpu.VboID != nil {
		rl.UnloadMesh(&s.gpu)
	}
	s.gpu = rl.Mesh{}
	s.source = nil
}

// Arrow draws a gradient marker: a line shaft and a cone head.
func (s *Surface) Arrow(a mesh.Arrow, c color.RGBA) {
	tip := a.Tip()
	rl.DrawLine3D(toVector3(a.Origin), toVector3(tip), c)

	headEnd := r3.Add(tip, r3.Scale(a.HeadLength, a.Dir))
	rl.DrawCylinderEx(toVector3(tip), toVector3(headEnd), float32(a.HeadWidth/2), 0, 8, c)
}

// lift maps a mathematical surface point into Y-up world space.
func lift(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Z), float32(v.Y))
}

func toVector3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
