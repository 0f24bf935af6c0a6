package gfont

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type Fonts struct {
	Normal font.Face
	Small  font.Face
	Bold   font.Face // piece letters on generated figures
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// LoadFonts uses the Go fonts bundled with x/image, no files needed
func LoadFonts() (*Fonts, error) {
	var err error
	fonts := &Fonts{}
	if fonts.Normal, err = newFace(goregular.TTF, 20); err != nil {
		return nil, err
	}
	if fonts.Small, err = newFace(goregular.TTF, 16); err != nil {
		return nil, err
	}
	if fonts.Bold, err = newFace(gobold.TTF, 56); err != nil {
		return nil, err
	}
	return fonts, nil
}
