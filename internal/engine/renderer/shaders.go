package renderer

// Terrain shader: per-vertex color with a single directional light.
// The model matrix carries the dynamic vertical-exaggeration Z scale,
// so normals are re-normalized after transform.
const terrainVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vNormal;
out vec3 vColor;

void main() {
	gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
	vNormal = normalize(mat3(uModel) * aNormal);
	vColor = aColor;
}
`

const terrainFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec3 vColor;

uniform vec3 uLightDir;
uniform float uAmbient;
uniform float uDiffuse;

out vec4 FragColor;

void main() {
	float nl = max(dot(normalize(vNormal), normalize(uLightDir)), 0.0);
	vec3 lit = vColor * (uAmbient + uDiffuse * nl);
	FragColor = vec4(lit, 1.0);
}
`

// Flat shader: position-only geometry with a uniform color. Used for
// the path polyline, the minimap road and the UI rectangles.
const flatVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const flatFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

// Marker shader: unit sphere lit toward the camera-ish fixed light,
// with uniform color and alpha for the glow pass.
const markerVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
	vNormal = aPos;
}
`

const markerFragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec4 uColor;
uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	float nl = max(dot(normalize(vNormal), normalize(uLightDir)), 0.0);
	FragColor = vec4(uColor.rgb * (0.5 + 0.5 * nl), uColor.a);
}
`
