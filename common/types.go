// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// TextureData holds RGBA pixel data for a texture pending GPU upload.
type TextureData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// TextureSource describes where the bytes of a texture come from. Embedded textures
// (glTF buffers) carry their bytes in Data; external textures carry a file Path.
type TextureSource struct {
	// Name is an identifier for this texture (e.g., "diffuse", "normalMap").
	Name string

	// Path is the file path for external textures (empty for embedded).
	Path string

	// Data contains raw image bytes for embedded textures (PNG/JPEG).
	Data []byte
}

// Decode decodes the texture to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG and JPEG formats.
//
// Returns:
//   - TextureData: the decoded RGBA pixels and dimensions
//   - error: error if decoding fails
func (t *TextureSource) Decode() (TextureData, error) {
	if t == nil {
		return TextureData{}, fmt.Errorf("texture is nil")
	}

	if len(t.Data) > 0 {
		data, err := DecodeTexture(bytes.NewReader(t.Data))
		if err != nil {
			return TextureData{}, fmt.Errorf("failed to decode embedded image %q: %w", t.Name, err)
		}
		return data, nil
	}
	if t.Path == "" {
		return TextureData{}, fmt.Errorf("texture %q has neither data nor path", t.Name)
	}

	file, err := os.Open(t.Path)
	if err != nil {
		return TextureData{}, fmt.Errorf("failed to open texture file %s: %w", t.Path, err)
	}
	defer file.Close()

	data, err := DecodeTexture(file)
	if err != nil {
		return TextureData{}, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
	}
	return data, nil
}

// DecodeTexture decodes a PNG or JPEG stream into tightly packed RGBA8 pixels.
//
// Parameters:
//   - r: the encoded image stream
//
// Returns:
//   - TextureData: the decoded pixels and dimensions
//   - error: error if the stream is not a supported image
func DecodeTexture(r io.Reader) (TextureData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return TextureData{}, err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return TextureData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

// CheckerTexture builds a size x size RGBA texture alternating between two colors per
// pixel. Used as the fallback texture when a material has no texture for a slot.
//
// Parameters:
//   - size: edge length in pixels (minimum 1)
//   - a: RGBA color for even cells
//   - b: RGBA color for odd cells
//
// Returns:
//   - TextureData: the generated texture
func CheckerTexture(size int, a, b [4]byte) TextureData {
	if size < 1 {
		size = 1
	}
	pixels := make([]byte, 0, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				pixels = append(pixels, a[:]...)
			} else {
				pixels = append(pixels, b[:]...)
			}
		}
	}
	return TextureData{Pixels: pixels, Width: uint32(size), Height: uint32(size)}
}
