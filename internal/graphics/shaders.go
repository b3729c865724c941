package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// maxDirectional is the number of directional light slots in litFS.
const maxDirectional = 3

// loadLitShader returns the scene shader: ambient plus up to maxDirectional
// directional lights, per-material opacity and a shadow map lookup.
// Vertex attributes follow raylib meshes: vertexPosition, vertexNormal.
// Counters and flags are float uniforms since SetShaderValue only takes float data.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

// loadDepthShader returns the shadow pass shader. Depth from the light is
// packed into the RGB channels of the color target with alpha left at 1, so
// the default alpha blending writes it unchanged.
func loadDepthShader() rl.Shader {
	return rl.LoadShaderFromMemory(depthVS, depthFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matModel;
uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uLightSpace;
out vec3 fragPosition;
out vec3 fragNormal;
out vec4 fragLightSpace;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(transpose(inverse(matModel))) * vertexNormal;
  fragLightSpace = uLightSpace * worldPos;
  gl_Position = uProjection * uView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
in vec4 fragLightSpace;
uniform vec4 colDiffuse;
uniform vec3 ambientColor;
uniform vec3 lightDir[3];
uniform vec3 lightColor[3];
uniform float lightCount;
uniform float shadowLight;
uniform float shadowsEnabled;
uniform float receiveShadow;
uniform float pcfRadius;
uniform float pcfSpread;
uniform float shadowMapSize;
uniform sampler2D shadowMap;
out vec4 finalColor;

float unpackDepth(vec4 rgba) {
  return dot(rgba.rgb, vec3(1.0, 1.0/255.0, 1.0/65025.0));
}

float shadowFactor(vec3 N, vec3 L) {
  vec3 p = fragLightSpace.xyz / fragLightSpace.w * 0.5 + 0.5;
  if (p.z > 1.0 || p.x < 0.0 || p.x > 1.0 || p.y < 0.0 || p.y > 1.0) return 1.0;
  float bias = max(0.004 * (1.0 - dot(N, L)), 0.0008);
  float texel = pcfSpread / shadowMapSize;
  int radius = int(pcfRadius);
  float lit = 0.0;
  float taps = 0.0;
  for (int x = -radius; x <= radius; x++) {
    for (int y = -radius; y <= radius; y++) {
      float d = unpackDepth(texture(shadowMap, p.xy + vec2(x, y) * texel));
      lit += (p.z - bias > d) ? 0.0 : 1.0;
      taps += 1.0;
    }
  }
  return lit / taps;
}

void main() {
  vec3 N = normalize(fragNormal);
  if (!gl_FrontFacing) N = -N;
  vec3 color = ambientColor * colDiffuse.rgb;
  for (int i = 0; i < int(lightCount); i++) {
    vec3 L = normalize(lightDir[i]);
    float NdotL = max(dot(N, L), 0.0);
    float s = 1.0;
    if (i == int(shadowLight) && shadowsEnabled > 0.5 && receiveShadow > 0.5 && NdotL > 0.0) {
      s = shadowFactor(N, L);
    }
    color += colDiffuse.rgb * lightColor[i] * NdotL * s;
  }
  finalColor = vec4(color, colDiffuse.a);
}
`
	depthVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matModel;
uniform mat4 uLightSpace;
void main() {
  gl_Position = uLightSpace * matModel * vec4(vertexPosition, 1.0);
}
`
	depthFS = `#version 330
out vec4 finalColor;
void main() {
  vec3 enc = fract(vec3(1.0, 255.0, 65025.0) * gl_FragCoord.z);
  enc -= enc.yzz * vec3(1.0/255.0, 1.0/255.0, 0.0);
  finalColor = vec4(enc, 1.0);
}
`
)
