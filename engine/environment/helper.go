package environment

import (
	"context"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/material"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
)

// helper is the stock Builder: a flat ground plus an optional textured skybox.
type helper struct {
	groundOpacity float32
	decode        func(t *common.Texture) ([]byte, error)
}

var _ Builder = &helper{}

// NewHelper creates the stock environment Builder.
//
// Parameters:
//   - options: functional options to configure the helper
//
// Returns:
//   - Builder: the new builder
func NewHelper(options ...HelperBuilderOption) Builder {
	h := &helper{
		groundOpacity: 0.9,
		decode: func(t *common.Texture) ([]byte, error) {
			pix, _, _, err := t.Decode()
			return pix, err
		},
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *helper) Build(ctx context.Context, opts Options) (*Environment, error) {
	env := &Environment{}

	if opts.CreateSkybox {
		sky := &Skybox{
			Size:  opts.SkyboxSize,
			Color: tint(opts.SkyboxColor, opts.MainColor),
		}
		if opts.SkyboxTexture != "" {
			tex := &common.Texture{Name: "skybox", Path: opts.SkyboxTexture}
			pix, err := h.decode(tex)
			if err != nil {
				return nil, fmt.Errorf("skybox texture: %w", err)
			}
			sky.Texture = tex
			// The backdrop is drawn as the clear color, so the texture contributes its average.
			if avg, ok := averageColor(pix); ok {
				sky.Color = tint(avg, opts.MainColor)
			}
			log.Printf("[Environment] skybox texture %s loaded (%dx%d)", tex.Path, tex.Width, tex.Height)
		}
		env.Skybox = sky
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.CreateGround {
		mat := material.NewMaterial(
			material.WithName("BackgroundPlaneMaterial"),
			material.WithDiffuseColor(opts.GroundColor[0], opts.GroundColor[1], opts.GroundColor[2]),
			material.WithAlpha(h.groundOpacity),
		)
		env.Ground = scene.NewMesh(scene.MeshGround,
			scene.WithName("BackgroundPlane"),
			scene.WithGround(),
			scene.WithSize(opts.GroundSize, 0, opts.GroundSize),
			scene.WithPosition(0, opts.GroundYBias, 0),
			scene.WithMaterial(mat),
			scene.WithReceiveShadows(opts.EnableGroundShadow),
		)
	}

	return env, nil
}

// averageColor returns the mean RGB of tightly packed RGBA8 pixels, weighted by alpha.
// ok is false when there are no visible pixels.
func averageColor(pix []byte) (avg [3]float32, ok bool) {
	var sum [3]float64
	var weight float64
	for i := 0; i+3 < len(pix); i += 4 {
		a := float64(pix[i+3]) / 255
		sum[0] += float64(pix[i]) * a
		sum[1] += float64(pix[i+1]) * a
		sum[2] += float64(pix[i+2]) * a
		weight += a
	}
	if weight == 0 {
		return avg, false
	}
	for c := range sum {
		avg[c] = float32(sum[c] / weight / 255)
	}
	return avg, true
}

func tint(c, main [3]float32) [3]float32 {
	return [3]float32{c[0] * main[0], c[1] * main[1], c[2] * main[2]}
}
