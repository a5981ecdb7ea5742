package render

import (
	"math"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"Skyline/internal/assets"
	"Skyline/internal/scene"
)

// uniforms guarda as localizações que o renderer atualiza a cada frame.
type uniforms struct {
	fogColor   int32
	fogNear    int32
	fogFar     int32
	lightPos   int32
	lightColor int32
	lightPower int32
	viewPos    int32
}

func lookupUniforms(s rl.Shader) uniforms {
	return uniforms{
		fogColor:   rl.GetShaderLocation(s, "fogColor"),
		fogNear:    rl.GetShaderLocation(s, "fogNear"),
		fogFar:     rl.GetShaderLocation(s, "fogFar"),
		lightPos:   rl.GetShaderLocation(s, "lightPos"),
		lightColor: rl.GetShaderLocation(s, "lightColor"),
		lightPower: rl.GetShaderLocation(s, "lightPower"),
		viewPos:    rl.GetShaderLocation(s, "viewPos"),
	}
}

// set ignora uniforms que o compilador GLSL removeu (loc -1).
func set(s rl.Shader, loc int32, v []float32, kind rl.ShaderUniformDataType) {
	if loc < 0 {
		return
	}
	rl.SetShaderValue(s, loc, v, kind)
}

// gpuMesh mantém os slices Go vivos enquanto a GPU referencia a malha.
type gpuMesh struct {
	name string
	mesh rl.Mesh
	data assets.MeshData
}

// Renderer desenha o estado da cena com os shaders de neblina.
// Só pode ser usado na thread da janela.
type Renderer struct {
	BuildingShader rl.Shader
	PlaneShader    rl.Shader

	buildingLocs uniforms
	planeLocs    uniforms

	buildingMat rl.Material
	planeMat    rl.Material

	plane     rl.Mesh
	planeSize float32

	prototypes []*gpuMesh
	batches    *drawBatches

	log *zap.Logger
}

// NewRenderer compila os shaders. Exige a janela já aberta.
func NewRenderer(log *zap.Logger) *Renderer {
	r := &Renderer{
		batches: newDrawBatches(),
		log:     log.Named("render"),
	}

	r.BuildingShader = rl.LoadShaderFromMemory(sceneVertexShader, buildingFragmentShader)
	r.PlaneShader = rl.LoadShaderFromMemory(sceneVertexShader, planeFragmentShader)
	if r.BuildingShader.ID == 0 || r.PlaneShader.ID == 0 {
		r.log.Warn("shader customizado não compilou, usando o padrão do raylib")
	}

	// Locs aponta para um array C de MaxShaderLocations posições
	for _, s := range []rl.Shader{r.BuildingShader, r.PlaneShader} {
		locs := unsafe.Slice(s.Locs, rl.MaxShaderLocations)
		locs[rl.ShaderLocMatrixModel] = rl.GetShaderLocation(s, "matModel")
		locs[rl.ShaderLocVectorView] = rl.GetShaderLocation(s, "viewPos")
	}
	r.buildingLocs = lookupUniforms(r.BuildingShader)
	r.planeLocs = lookupUniforms(r.PlaneShader)

	r.buildingMat = rl.LoadMaterialDefault()
	r.buildingMat.Shader = r.BuildingShader
	r.planeMat = rl.LoadMaterialDefault()
	r.planeMat.Shader = r.PlaneShader

	r.log.Info("renderer inicializado",
		zap.Uint32("building_shader", r.BuildingShader.ID),
		zap.Uint32("plane_shader", r.PlaneShader.ID))
	return r
}

// Upload envia os protótipos para a GPU. Protótipos vazios ocupam o
// índice mas não são desenhados.
func (r *Renderer) Upload(c *assets.Collection) {
	r.unloadPrototypes()

	for _, p := range c.Prototypes {
		g := &gpuMesh{name: p.Name, data: p.MeshData()}
		if g.data.VertexCount() == 0 {
			r.log.Warn("protótipo sem geometria", zap.String("nome", p.Name))
			r.prototypes = append(r.prototypes, g)
			continue
		}

		g.mesh.VertexCount = int32(g.data.VertexCount())
		g.mesh.TriangleCount = int32(g.data.TriangleCount())
		g.mesh.Vertices = &g.data.Vertices[0]
		g.mesh.Normals = &g.data.Normals[0]
		if len(g.data.Indices) > 0 {
			g.mesh.Indices = &g.data.Indices[0]
		}
		rl.UploadMesh(&g.mesh, false)
		r.prototypes = append(r.prototypes, g)
	}

	r.log.Info("protótipos enviados para a GPU",
		zap.String("origem", c.Source), zap.Int("total", len(r.prototypes)))
}

// Prototypes retorna quantos protótipos estão na GPU.
func (r *Renderer) Prototypes() int { return len(r.prototypes) }

// Draw desenha um frame. Deve ser chamado entre BeginDrawing e EndDrawing.
func (r *Renderer) Draw(st *scene.State) {
	r.ensurePlane(st.Plane.Size)

	sceneRot := st.Rotation.Matrix()
	r.updateUniforms(st, sceneRot)

	rl.ClearBackground(st.Background)
	rl.BeginMode3D(toCamera3D(st.Camera))
	// a projeção vem da câmera da cena, que acompanha o aspecto da janela
	rl.SetMatrixProjection(toMatrix(st.Camera.Projection()))
	rl.SetMatrixModelview(toMatrix(st.Camera.View()))
	rl.DisableBackfaceCulling()

	// GenMeshPlane gera no plano XZ; voltamos para XY antes da rotação do chão
	planeModel := sceneRot.
		Mul4(rotateXYZ(st.Plane.Rotation)).
		Mul4(mgl32.HomogRotate3DX(-math.Pi / 2))
	r.planeMat.GetMap(rl.MapDiffuse).Color = st.Plane.Color
	rl.DrawMesh(r.plane, r.planeMat, toMatrix(planeModel))

	if st.Buildings != nil && len(r.prototypes) > 0 {
		r.batches.Clear()
		base := sceneRot.Mul4(st.Buildings.Transform())
		for _, b := range st.Buildings.Children {
			if b.Prototype < 0 || b.Prototype >= len(r.prototypes) {
				continue
			}
			r.batches.Add(b.Prototype, toMatrix(base.Mul4(b.Model())))
		}

		r.buildingMat.GetMap(rl.MapDiffuse).Color = st.BuildingColor
		r.batches.Draw(r.prototypes, r.buildingMat)
	}

	rl.EnableBackfaceCulling()
	rl.EndMode3D()
}

func (r *Renderer) updateUniforms(st *scene.State, sceneRot mgl32.Mat4) {
	light := sceneRot.Mul4x1(st.Light.Position.Vec4(1)).Vec3()
	view := []float32{st.Camera.Position.X(), st.Camera.Position.Y(), st.Camera.Position.Z()}

	for _, su := range []struct {
		shader rl.Shader
		locs   uniforms
	}{{r.BuildingShader, r.buildingLocs}, {r.PlaneShader, r.planeLocs}} {
		set(su.shader, su.locs.fogColor, rgb(st.Fog.Color), rl.ShaderUniformVec3)
		set(su.shader, su.locs.fogNear, []float32{st.Fog.Near}, rl.ShaderUniformFloat)
		set(su.shader, su.locs.fogFar, []float32{st.Fog.Far}, rl.ShaderUniformFloat)
		set(su.shader, su.locs.lightPos, []float32{light.X(), light.Y(), light.Z()}, rl.ShaderUniformVec3)
		set(su.shader, su.locs.lightColor, rgb(st.Light.Color), rl.ShaderUniformVec3)
		set(su.shader, su.locs.lightPower, []float32{st.Light.Intensity}, rl.ShaderUniformFloat)
		set(su.shader, su.locs.viewPos, view, rl.ShaderUniformVec3)
	}
}

// ensurePlane gera a malha do chão na primeira chamada ou quando o tamanho muda.
func (r *Renderer) ensurePlane(size float32) {
	if r.plane.VaoID != 0 && r.planeSize == size {
		return
	}
	if r.plane.VaoID != 0 {
		rl.UnloadMesh(&r.plane)
	}
	r.plane = rl.GenMeshPlane(size, size, 1, 1)
	r.planeSize = size
}

func (r *Renderer) unloadPrototypes() {
	for _, g := range r.prototypes {
		if g.mesh.VaoID != 0 {
			rl.UnloadMesh(&g.mesh)
		}
	}
	r.prototypes = nil
}

// Unload libera malhas e shaders.
func (r *Renderer) Unload() {
	r.unloadPrototypes()
	if r.plane.VaoID != 0 {
		rl.UnloadMesh(&r.plane)
	}
	// UnloadMaterial também descarrega o shader associado
	rl.UnloadMaterial(r.buildingMat)
	rl.UnloadMaterial(r.planeMat)
	r.log.Info("recursos de GPU liberados")
}

// rotateXYZ compõe Rx * Ry * Rz, a mesma ordem Euler usada pela cena.
func rotateXYZ(e mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(e.X()).
		Mul4(mgl32.HomogRotate3DY(e.Y())).
		Mul4(mgl32.HomogRotate3DZ(e.Z()))
}
