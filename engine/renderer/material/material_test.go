package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, common.ColorWhite, m.Color())
	assert.Equal(t, common.ColorBlack, m.Specular())
	assert.Nil(t, m.Texture())
	assert.Equal(t, device.EnvModulate, m.EnvMode())
	assert.Equal(t, device.ShadeSmooth, m.ShadeModel())
}

func TestMaterialOptions(t *testing.T) {
	m := NewMaterial(
		WithName("shiny"),
		WithColor(common.ColorRed),
		WithSpecular(common.ColorWhite, 500),
		WithEmission(common.ColorBlue),
		WithShadeModel(device.ShadeFlat),
	)
	assert.Equal(t, "shiny", m.Name())
	assert.Equal(t, common.ColorRed, m.Color())
	assert.Equal(t, float32(128), m.Shininess())
	assert.Equal(t, common.ColorBlue, m.Emission())
	assert.Equal(t, device.ShadeFlat, m.ShadeModel())

	m.SetColor(common.ColorWhite.WithAlpha(0.25))
	assert.Equal(t, float32(0.25), m.State().AmbientDiffuse[3])
}

func TestMaterialApply(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	tex, err := dev.NewTexture(common.TextureDescriptor{Width: 8, Height: 8})
	require.NoError(t, err)

	textured := NewMaterial(WithTexture(tex, device.EnvReplace), WithShadeModel(device.ShadeFlat))
	textured.Apply(dev)
	assert.True(t, dev.Enabled(device.Texture2D))

	dev.Draw(device.Quads, make([]device.Vertex, 4))
	require.Len(t, dev.Draws(), 1)
	assert.Equal(t, tex.ID(), dev.Draws()[0].Texture)
	assert.Equal(t, device.EnvReplace, dev.Draws()[0].Material.EnvMode)

	NewMaterial(WithColor(common.ColorGreen)).Apply(dev)
	assert.False(t, dev.Enabled(device.Texture2D))
}
