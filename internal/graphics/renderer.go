package graphics

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"basket3d/internal/scene"
	"basket3d/internal/viewport"
)

// defaultShadowMapSize is used when the shadow-casting light does not set one.
const defaultShadowMapSize = 2048

// litLocations caches uniform locations of the lit shader.
type litLocations struct {
	projection, view, lightSpace  int32
	ambient, lightDir, lightColor int32
	lightCount, shadowLight       int32
	shadowsEnabled, receiveShadow int32
	pcfRadius, pcfSpread, mapSize int32
}

// drawItem is one mesh node queued for the current frame.
type drawItem struct {
	node  *scene.Node
	world mgl32.Mat4
	dist  float32
}

// Renderer draws a scene.Scene with raylib. Meshes are built from their
// geometry descriptors and uploaded on first use, then shared by every node
// with the same descriptor. GPU resources are created after the window exists
// and released by Dispose.
type Renderer struct {
	win  *Window
	opts viewport.RendererOptions
	log  zerolog.Logger

	meshes   map[string]rl.Mesh
	lit      rl.Material
	depth    rl.Material
	locs     litLocations
	depthLS  int32
	shadowRT rl.RenderTexture2D
	mapSize  int

	opaque      []drawItem
	translucent []drawItem
	disposed    bool
}

// NewRenderer compiles the shaders and prepares materials for win. It fails
// with ErrNoWindow when there is no GL context.
func NewRenderer(win *Window, opts viewport.RendererOptions, log zerolog.Logger) (*Renderer, error) {
	if win == nil || !rl.IsWindowReady() {
		return nil, ErrNoWindow
	}
	litShader := loadLitShader()
	if !rl.IsShaderValid(litShader) {
		return nil, errors.New("graphics: lit shader did not compile")
	}
	depthShader := loadDepthShader()
	if !rl.IsShaderValid(depthShader) {
		rl.UnloadShader(litShader)
		return nil, errors.New("graphics: depth shader did not compile")
	}

	r := &Renderer{
		win:    win,
		opts:   opts,
		log:    log,
		meshes: make(map[string]rl.Mesh),
	}

	r.lit = rl.LoadMaterialDefault()
	r.lit.Shader = litShader
	r.locs = litLocations{
		projection:     rl.GetShaderLocation(litShader, "uProjection"),
		view:           rl.GetShaderLocation(litShader, "uView"),
		lightSpace:     rl.GetShaderLocation(litShader, "uLightSpace"),
		ambient:        rl.GetShaderLocation(litShader, "ambientColor"),
		lightDir:       rl.GetShaderLocation(litShader, "lightDir"),
		lightColor:     rl.GetShaderLocation(litShader, "lightColor"),
		lightCount:     rl.GetShaderLocation(litShader, "lightCount"),
		shadowLight:    rl.GetShaderLocation(litShader, "shadowLight"),
		shadowsEnabled: rl.GetShaderLocation(litShader, "shadowsEnabled"),
		receiveShadow:  rl.GetShaderLocation(litShader, "receiveShadow"),
		pcfRadius:      rl.GetShaderLocation(litShader, "pcfRadius"),
		pcfSpread:      rl.GetShaderLocation(litShader, "pcfSpread"),
		mapSize:        rl.GetShaderLocation(litShader, "shadowMapSize"),
	}
	// The shadow map rides in the normal map slot so DrawMesh binds it.
	litShader.UpdateLocation(rl.ShaderLocMapNormal, rl.GetShaderLocation(litShader, "shadowMap"))

	r.depth = rl.LoadMaterialDefault()
	r.depth.Shader = depthShader
	r.depthLS = rl.GetShaderLocation(depthShader, "uLightSpace")

	radius, spread := pcfKernel(opts.ShadowType)
	setFloat(r.lit.Shader, r.locs.pcfRadius, radius)
	setFloat(r.lit.Shader, r.locs.pcfSpread, spread)

	r.log.Info().
		Int("width", opts.Width).
		Int("height", opts.Height).
		Bool("shadows", opts.Shadows).
		Msg("renderer ready")
	return r, nil
}

// pcfKernel returns the filter radius in texels and the tap spacing for t.
func pcfKernel(t viewport.ShadowType) (radius, spread float32) {
	switch t {
	case viewport.ShadowBasic:
		return 0, 1
	case viewport.ShadowPCF:
		return 1, 1
	default:
		return 1, 1.5
	}
}

// SetSize makes the window's framebuffer, which is the output surface,
// width x height. The window already tracks its container, so this is
// usually a no-op.
func (r *Renderer) SetSize(width, height int) {
	if !needsResize(width, height, rl.GetScreenWidth(), rl.GetScreenHeight()) {
		return
	}
	rl.SetWindowSize(width, height)
	r.log.Debug().Int("width", width).Int("height", height).Msg("window resized")
}

func needsResize(width, height, curWidth, curHeight int) bool {
	return width > 0 && height > 0 && (width != curWidth || height != curHeight)
}

// Render draws one frame: the shadow pass into the shadow map, then opaque
// meshes, then translucent meshes from far to near. Must be called between
// BeginDrawing and EndDrawing. Does nothing once disposed or while detached.
func (r *Renderer) Render(s *scene.Scene, cam *scene.Camera) {
	if r.disposed || s == nil || s.Root == nil || cam == nil || !r.win.attached(r) {
		return
	}
	r.collect(s, cam)

	caster, hasCaster := s.ShadowCaster()
	lightSpace := mgl32.Ident4()
	shadows := r.opts.Shadows && hasCaster
	if shadows {
		lightSpace, _ = caster.ShadowMatrix()
		size := defaultShadowMapSize
		if caster.Shadow.MapSize > 0 {
			size = caster.Shadow.MapSize
		}
		if err := r.ensureShadowMap(size); err != nil {
			r.log.Warn().Err(err).Msg("rendering without shadows")
			shadows = false
		} else {
			r.shadowPass(cam, lightSpace)
		}
	}

	r.setFrameUniforms(s, cam, lightSpace, shadows, caster.Name)

	rl.BeginMode3D(camera3D(cam))
	rl.DisableBackfaceCulling()
	for _, d := range r.opaque {
		r.drawLit(d)
	}
	for _, d := range r.translucent {
		r.drawLit(d)
	}
	rl.EnableBackfaceCulling()
	rl.EndMode3D()
}

// collect splits the scene's meshes into opaque and translucent queues. The
// translucent queue is sorted back to front from the camera.
func (r *Renderer) collect(s *scene.Scene, cam *scene.Camera) {
	r.opaque = r.opaque[:0]
	r.translucent = r.translucent[:0]
	s.Root.Walk(func(n *scene.Node, world mgl32.Mat4) {
		if n.Mesh == nil || n.Mesh.Geometry == nil {
			return
		}
		d := drawItem{node: n, world: world}
		if n.Mesh.Material.IsTranslucent() {
			d.dist = world.Col(3).Vec3().Sub(cam.Position).Len()
			r.translucent = append(r.translucent, d)
			return
		}
		r.opaque = append(r.opaque, d)
	})
	sort.SliceStable(r.translucent, func(i, j int) bool {
		return r.translucent[i].dist > r.translucent[j].dist
	})
}

// ensureShadowMap (re)creates the shadow render texture at size x size.
func (r *Renderer) ensureShadowMap(size int) error {
	if r.mapSize == size && rl.IsRenderTextureValid(r.shadowRT) {
		return nil
	}
	if r.mapSize != 0 {
		r.releaseShadowMap()
	}
	rt := rl.LoadRenderTexture(int32(size), int32(size))
	if !rl.IsRenderTextureValid(rt) {
		return fmt.Errorf("graphics: shadow map %dx%d could not be created", size, size)
	}
	r.shadowRT = rt
	r.mapSize = size
	if m := r.lit.GetMap(rl.MapNormal); m != nil {
		m.Texture = rt.Texture
	}
	setFloat(r.lit.Shader, r.locs.mapSize, float32(size))
	r.log.Debug().Int("size", size).Msg("shadow map allocated")
	return nil
}

func (r *Renderer) releaseShadowMap() {
	if m := r.lit.GetMap(rl.MapNormal); m != nil {
		m.Texture = rl.Texture2D{}
	}
	rl.UnloadRenderTexture(r.shadowRT)
	r.shadowRT = rl.RenderTexture2D{}
	r.mapSize = 0
}

// shadowPass renders depth from the shadow-casting light for every mesh that casts shadows.
func (r *Renderer) shadowPass(cam *scene.Camera, lightSpace mgl32.Mat4) {
	rl.BeginTextureMode(r.shadowRT)
	rl.ClearBackground(rl.White)
	// BeginMode3D only switches on depth testing here; the depth shader
	// positions vertices with uLightSpace.
	rl.BeginMode3D(camera3D(cam))
	rl.DisableBackfaceCulling()
	rl.SetShaderValueMatrix(r.depth.Shader, r.depthLS, toMatrix(lightSpace))
	for _, list := range [][]drawItem{r.opaque, r.translucent} {
		for _, d := range list {
			if !d.node.Mesh.CastShadow {
				continue
			}
			rl.DrawMesh(r.mesh(d.node.Mesh.Geometry), r.depth, toMatrix(d.world))
		}
	}
	rl.EnableBackfaceCulling()
	rl.EndMode3D()
	rl.EndTextureMode()
}

// setFrameUniforms uploads camera and light state shared by every draw this frame.
func (r *Renderer) setFrameUniforms(s *scene.Scene, cam *scene.Camera, lightSpace mgl32.Mat4, shadows bool, casterName string) {
	sh := r.lit.Shader
	rl.SetShaderValueMatrix(sh, r.locs.projection, toMatrix(cam.Projection()))
	rl.SetShaderValueMatrix(sh, r.locs.view, toMatrix(cam.View()))
	rl.SetShaderValueMatrix(sh, r.locs.lightSpace, toMatrix(lightSpace))

	var ambient mgl32.Vec3
	dirs := make([]float32, 0, 3*maxDirectional)
	colors := make([]float32, 0, 3*maxDirectional)
	shadowLight := float32(-1)
	n := 0
	for _, l := range s.Lights {
		cr, cg, cb := l.Color.RGB()
		c := mgl32.Vec3{cr, cg, cb}.Mul(l.Intensity)
		switch l.Kind {
		case scene.LightAmbient:
			ambient = ambient.Add(c)
		case scene.LightDirectional:
			if n == maxDirectional {
				continue
			}
			d := l.Direction()
			dirs = append(dirs, d[0], d[1], d[2])
			colors = append(colors, c[0], c[1], c[2])
			if shadows && l.Shadow != nil && l.Name == casterName {
				shadowLight = float32(n)
			}
			n++
		}
	}
	for len(dirs) < 3*maxDirectional {
		dirs = append(dirs, 0, 1, 0)
		colors = append(colors, 0, 0, 0)
	}

	rl.SetShaderValue(sh, r.locs.ambient, ambient[:], rl.ShaderUniformVec3)
	rl.SetShaderValueV(sh, r.locs.lightDir, dirs, rl.ShaderUniformVec3, maxDirectional)
	rl.SetShaderValueV(sh, r.locs.lightColor, colors, rl.ShaderUniformVec3, maxDirectional)
	setFloat(sh, r.locs.lightCount, float32(n))
	setFloat(sh, r.locs.shadowLight, shadowLight)
	setFloat(sh, r.locs.shadowsEnabled, boolFloat(shadows))
}

func (r *Renderer) drawLit(d drawItem) {
	m := d.node.Mesh
	if albedo := r.lit.GetMap(rl.MapAlbedo); albedo != nil {
		cr, cg, cb, ca := m.Material.Color.RGBA8(opacity(m.Material))
		albedo.Color = rl.NewColor(cr, cg, cb, ca)
	}
	setFloat(r.lit.Shader, r.locs.receiveShadow, boolFloat(m.ReceiveShadow))
	rl.DrawMesh(r.mesh(m.Geometry), r.lit, toMatrix(d.world))
}

// opacity is the alpha a material is drawn with. Opaque materials ignore Opacity.
func opacity(m scene.Material) float32 {
	if !m.Transparent {
		return 1
	}
	return m.Opacity
}

// mesh returns the uploaded mesh for g, building and uploading it on first use.
func (r *Renderer) mesh(g scene.Geometry) rl.Mesh {
	key := g.Key()
	if m, ok := r.meshes[key]; ok {
		return m
	}
	m := upload(g.Build())
	r.meshes[key] = m
	return m
}

// upload copies d into GPU buffers. The CPU-side pointers are cleared after
// upload since they point into Go memory that raylib must not free.
func upload(d *scene.MeshData) rl.Mesh {
	m := rl.Mesh{
		VertexCount:   int32(d.VertexCount()),
		TriangleCount: int32(d.TriangleCount()),
	}
	if m.VertexCount == 0 || m.TriangleCount == 0 {
		return m
	}
	var pin runtime.Pinner
	defer pin.Unpin()
	pin.Pin(&d.Positions[0])
	pin.Pin(&d.Normals[0])
	pin.Pin(&d.Indices[0])
	m.Vertices = &d.Positions[0]
	m.Normals = &d.Normals[0]
	m.Indices = &d.Indices[0]
	rl.UploadMesh(&m, false)
	m.Vertices, m.Normals, m.Indices = nil, nil, nil
	return m
}

// Dispose detaches the renderer and unloads meshes, materials with their
// shaders, and the shadow map. Safe to call more than once.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.win.Detach(r)

	for key, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, key)
	}
	if r.mapSize != 0 {
		r.releaseShadowMap()
	}
	rl.UnloadMaterial(r.lit)
	rl.UnloadMaterial(r.depth)
	r.opaque, r.translucent = nil, nil
	r.log.Debug().Msg("renderer disposed")
}

func camera3D(c *scene.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Position[0], c.Position[1], c.Position[2]),
		Target:     rl.NewVector3(c.Target[0], c.Target[1], c.Target[2]),
		Up:         rl.NewVector3(c.Up[0], c.Up[1], c.Up[2]),
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func setFloat(sh rl.Shader, loc int32, v float32) {
	if loc < 0 {
		return
	}
	rl.SetShaderValue(sh, loc, []float32{v}, rl.ShaderUniformFloat)
}

func boolFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
