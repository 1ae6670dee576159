package image

import (
	"encoding/json"
	"fmt"
	"os"
)

// rasterFile is the JSON form of a raster: row-major pixels plus geometry.
type rasterFile struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	X0     int       `json:"x0"`
	Y0     int       `json:"y0"`
	Pixels []float64 `json:"pixels"`
}

// ReadRasterFile loads a float64 raster from a JSON cutout file.
func ReadRasterFile(path string) (*Raster[float64], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f rasterFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode raster %s: %w", path, err)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("raster %s has invalid size %dx%d", path, f.Width, f.Height)
	}
	if len(f.Pixels) != f.Width*f.Height {
		return nil, fmt.Errorf("raster %s has %d pixels, want %d", path, len(f.Pixels), f.Width*f.Height)
	}
	r := NewRaster[float64](f.Width, f.Height)
	r.SetOrigin(f.X0, f.Y0)
	for row := 0; row < f.Height; row++ {
		for col := 0; col < f.Width; col++ {
			r.SetFloat(f.X0+col, f.Y0+row, f.Pixels[row*f.Width+col])
		}
	}
	return r, nil
}

// WriteRasterFile stores any view as a JSON cutout file.
func WriteRasterFile(path string, v View) error {
	f := rasterFile{
		Width:  v.Width(),
		Height: v.Height(),
		X0:     v.X0(),
		Y0:     v.Y0(),
		Pixels: make([]float64, 0, v.Width()*v.Height()),
	}
	for row := 0; row < f.Height; row++ {
		for col := 0; col < f.Width; col++ {
			f.Pixels = append(f.Pixels, v.FloatAt(f.X0+col, f.Y0+row))
		}
	}
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
