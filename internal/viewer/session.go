// Package viewer owns the per-frame state of a mesh viewer: the current
// mesh, camera, projection and rotation toggles.
package viewer

import (
	"context"
	"log"

	"github.com/taigrr/polyview/pkg/math3d"
	"github.com/taigrr/polyview/pkg/models"
	"github.com/taigrr/polyview/pkg/render"
)

// Options configures a Session.
type Options struct {
	Width, Height int
	FPS           int
	Camera        render.CameraConfig
	Cull          render.CullMode
	Fill          bool
	SpinRate      float64 // Radians per second for each enabled rotation axis

	// Scale is applied to every loaded mesh and committed as its rest pose.
	// Zero means 1.
	Scale float64

	Logger *log.Logger
}

// Stats summarizes the session for status lines.
type Stats struct {
	Name      string
	Vertices  int
	Polygons  int
	Materials int
	Drawn     int // Polygons emitted by the last frame
	Camera    math3d.Vec3
}

// Session is the single-owner state of one viewer. All methods except the
// background half of LoadAsync must be called from the render loop.
type Session struct {
	opts      Options
	log       *log.Logger
	mesh      *models.Mesh
	cam       *render.Camera
	proj      render.Projection
	projector render.Projector
	spin      render.Spinner
	drawn     int

	pending chan *models.Mesh
}

// New creates a session with no mesh loaded.
func New(opts Options) *Session {
	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if opts.Camera == (render.CameraConfig{}) {
		opts.Camera = render.DefaultCameraConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		opts:      opts,
		log:       logger,
		cam:       render.NewCamera(opts.Camera),
		projector: render.Projector{Cull: opts.Cull, Fill: opts.Fill},
		spin:      render.NewSpinner(opts.FPS, opts.SpinRate),
		pending:   make(chan *models.Mesh, 1),
	}
	s.proj = render.NewProjection(s.cam, opts.Width, opts.Height)
	return s
}

// Load reads a mesh file and makes it current. On error the previous mesh
// stays active.
func (s *Session) Load(path string) error {
	mesh, err := s.read(path)
	if err != nil {
		return err
	}
	s.SetMesh(mesh)
	return nil
}

// LoadAsync reads a mesh file in the background. The mesh is handed over
// whole and becomes current on the next Frame. The returned channel
// receives nil once the mesh is ready for adoption, or the load error.
func (s *Session) LoadAsync(ctx context.Context, path string) <-chan error {
	done := make(chan error, 1)
	go func() {
		mesh, err := s.read(path)
		if err != nil {
			done <- err
			return
		}
		select {
		case s.pending <- mesh:
			done <- nil
		case <-ctx.Done():
			done <- ctx.Err()
		}
	}()
	return done
}

func (s *Session) read(path string) (*models.Mesh, error) {
	mesh, err := models.Load(path)
	if err != nil {
		s.log.Printf("Load %s failed: %v", path, err)
		return nil, err
	}
	if s.opts.Scale != 1 {
		mesh.Scale(s.opts.Scale)
		mesh.CommitRestPose()
	}
	s.log.Printf("Loaded %s: %d vertices, %d polygons, %d materials",
		path, mesh.VertexCount(), mesh.PolygonCount(), mesh.MaterialCount())
	return mesh, nil
}

// SetMesh replaces the current mesh. The previous mesh is dropped.
func (s *Session) SetMesh(mesh *models.Mesh) {
	s.mesh = mesh
	s.drawn = 0
}

// Mesh returns the current mesh, or nil.
func (s *Session) Mesh() *models.Mesh {
	return s.mesh
}

// Camera returns the session camera.
func (s *Session) Camera() *render.Camera {
	return s.cam
}

// Projection returns the projection in use.
func (s *Session) Projection() render.Projection {
	return s.proj
}

// Control applies one tick of camera input.
func (s *Session) Control(c render.Control) {
	s.cam.Apply(c)
}

// ResetMesh returns the current mesh to its rest pose.
func (s *Session) ResetMesh() {
	if s.mesh != nil {
		s.mesh.Reset()
	}
}

// SetRotationFlags enables or disables the idle spin per axis.
func (s *Session) SetRotationFlags(x, y, z bool) {
	s.spin.X, s.spin.Y, s.spin.Z = x, y, z
}

// RotationFlags returns the idle spin toggles.
func (s *Session) RotationFlags() (x, y, z bool) {
	return s.spin.X, s.spin.Y, s.spin.Z
}

// ToggleRotation flips the idle spin for one axis.
func (s *Session) ToggleRotation(axis math3d.Axis) {
	switch axis {
	case math3d.AxisX:
		s.spin.X = !s.spin.X
	case math3d.AxisY:
		s.spin.Y = !s.spin.Y
	case math3d.AxisZ:
		s.spin.Z = !s.spin.Z
	}
}

// SetFill switches between outlined and filled polygons.
func (s *Session) SetFill(fill bool) {
	s.projector.Fill = fill
}

// Fill reports whether polygons are filled.
func (s *Session) Fill() bool {
	return s.projector.Fill
}

// SetCull changes the culling policy.
func (s *Session) SetCull(mode render.CullMode) {
	s.projector.Cull = mode
}

// Resize rebuilds the projection for a new viewport.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.opts.Width, s.opts.Height = width, height
	s.proj = render.NewProjection(s.cam, width, height)
}

// Frame adopts any finished background load, advances the spin animation
// and returns the polygons to draw.
func (s *Session) Frame() []render.Polygon {
	select {
	case mesh := <-s.pending:
		s.SetMesh(mesh)
	default:
	}
	if s.mesh == nil {
		return nil
	}
	s.spin.Apply(s.mesh)
	polys := s.projector.Project(s.mesh, s.cam, s.proj)
	s.drawn = len(polys)
	return polys
}

// Vertices returns the visible vertex markers for the current state.
func (s *Session) Vertices() []math3d.Vec2 {
	return s.projector.Vertices(s.mesh, s.cam, s.proj)
}

// Stats returns counters for the current mesh and frame.
func (s *Session) Stats() Stats {
	st := Stats{Drawn: s.drawn, Camera: s.cam.Position}
	if s.mesh != nil {
		st.Name = s.mesh.Name
		st.Vertices = s.mesh.VertexCount()
		st.Polygons = s.mesh.PolygonCount()
		st.Materials = s.mesh.MaterialCount()
	}
	return st
}
