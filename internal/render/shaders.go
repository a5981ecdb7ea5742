package render

// Vértice comum: posição no mundo e profundidade no espaço da câmera
// para a neblina linear.
const sceneVertexShader = `
#version 330

in vec3 vertexPosition;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matView;
uniform mat4 matNormal;

out vec3 fragPosition;
out vec3 fragNormal;
out float fogDepth;

void main()
{
    vec4 world = matModel * vec4(vertexPosition, 1.0);
    fragPosition = world.xyz;
    fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 1.0)));
    fogDepth = -(matView * world).z;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// Neblina linear: 0 antes de fogNear, 1 depois de fogFar.
// Com fogFar <= fogNear tudo além de fogNear some.
const fogChunk = `
uniform vec3 fogColor;
uniform float fogNear;
uniform float fogFar;

float fogFactor(float depth) {
    if (fogFar <= fogNear) {
        return depth >= fogNear ? 1.0 : 0.0;
    }
    return smoothstep(fogNear, fogFar, depth);
}
`

// Prédios: Phong com uma luz pontual, sem ambiente.
const buildingFragmentShader = `
#version 330

in vec3 fragPosition;
in vec3 fragNormal;
in float fogDepth;

uniform vec4 colDiffuse;
uniform vec3 lightPos;
uniform vec3 lightColor;
uniform float lightPower;
uniform vec3 viewPos;
` + fogChunk + `
out vec4 finalColor;

void main()
{
    vec3 n = normalize(fragNormal);
    if (!gl_FrontFacing) n = -n;

    vec3 l = normalize(lightPos - fragPosition);
    vec3 v = normalize(viewPos - fragPosition);
    vec3 h = normalize(l + v);

    float diff = max(dot(n, l), 0.0);
    float spec = pow(max(dot(n, h), 0.0), 30.0) * 0.067;

    vec3 color = colDiffuse.rgb * lightColor * lightPower * diff + lightColor * spec;
    finalColor = vec4(mix(color, fogColor, fogFactor(fogDepth)), colDiffuse.a);
}
`

// Chão: cor chapada, só a neblina.
const planeFragmentShader = `
#version 330

in vec3 fragPosition;
in vec3 fragNormal;
in float fogDepth;

uniform vec4 colDiffuse;
` + fogChunk + `
out vec4 finalColor;

void main()
{
    finalColor = vec4(mix(colDiffuse.rgb, fogColor, fogFactor(fogDepth)), colDiffuse.a);
}
`
