package renderer

import (
	"fmt"

	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/lighting"
)

const worldVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aTangent;
layout (location = 3) in vec2 aUV;
layout (location = 4) in float aMaterial;

uniform mat4 uView;
uniform mat4 uProj;

out vec3 vWorld;
out vec3 vNormal;
out vec2 vUV;
flat out int vMaterial;

void main() {
	vWorld = aPos;
	vNormal = aNormal;
	vUV = aUV;
	vMaterial = int(aMaterial + 0.5);
	gl_Position = uProj * uView * vec4(aPos, 1.0);
}
`

// worldFragmentShader is formatted with the palette and light array sizes.
const worldFragmentShader = `
#version 410 core

#define MATERIALS %d
#define LIGHTS %d

in vec3 vWorld;
in vec3 vNormal;
in vec2 vUV;
flat in int vMaterial;

uniform vec3 uPalette[MATERIALS];
uniform vec3 uSunDir;
uniform vec3 uSunColor;
uniform vec3 uAmbient;
uniform vec3 uEye;
uniform vec3 uSky;
uniform float uFogStart;
uniform float uFogEnd;
uniform int uLightCount;
uniform vec3 uLightPos[LIGHTS];
uniform vec3 uLightColor[LIGHTS];
uniform float uLightRange[LIGHTS];

out vec4 FragColor;

// Cheap value noise so flat materials are not perfectly uniform.
float grain(vec2 p) {
	return fract(sin(dot(floor(p), vec2(12.9898, 78.233))) * 43758.5453);
}

void main() {
	vec3 n = normalize(vNormal);
	vec3 albedo = uPalette[clamp(vMaterial, 0, MATERIALS - 1)];
	albedo *= 0.9 + 0.2 * grain(vUV * 16.0);

	vec3 light = uAmbient + uSunColor * max(dot(n, normalize(uSunDir)), 0.0);
	for (int i = 0; i < LIGHTS; i++) {
		if (i >= uLightCount) {
			break;
		}
		vec3 d = uLightPos[i] - vWorld;
		float dist = length(d);
		float att = clamp(1.0 - dist / uLightRange[i], 0.0, 1.0);
		light += uLightColor[i] * att * att * max(dot(n, d / max(dist, 1e-4)), 0.0);
	}

	vec3 color = albedo * light;
	float fog = smoothstep(uFogStart, uFogEnd, distance(vWorld, uEye));
	FragColor = vec4(mix(color, uSky, fog), 1.0);
}
`

func fragmentSource() string {
	return fmt.Sprintf(worldFragmentShader, geom.MaterialCount, lighting.MaxPointLights)
}
