// Package vision finds enemies in captured frames: template correlation for
// every class, plus dark-blob segmentation close to the house where small
// soldiers slip past the templates.
package vision

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"

	"github.com/disintegration/gift"
	"github.com/lkarlslund/stormbot/internal/target"
	"gocv.io/x/gocv"
)

// ErrTemplateMissing is returned when a class template cannot be loaded.
var ErrTemplateMissing = errors.New("template missing")

// TemplateStore holds one luminance template per class.
type TemplateStore struct {
	mats map[target.Class]gocv.Mat
}

// LoadTemplates reads the template of every class from fsys. Any missing or
// unreadable template fails the whole load.
func LoadTemplates(fsys fs.FS, classes []target.Descriptor) (*TemplateStore, error) {
	s := &TemplateStore{mats: make(map[target.Class]gocv.Mat, len(classes))}
	for _, d := range classes {
		gray, err := loadGray(fsys, d.Template)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("%w: %v template %s: %v", ErrTemplateMissing, d.Class, d.Template, err)
		}
		mat, err := gocv.ImageGrayToMatGray(gray)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("%v template %s: %w", d.Class, d.Template, err)
		}
		s.mats[d.Class] = mat
	}
	return s, nil
}

func loadGray(fsys fs.FS, name string) (*image.Gray, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	g := gift.New(gift.Grayscale())
	gray := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(gray, img)
	return gray, nil
}

// Template returns the luminance template of c.
func (s *TemplateStore) Template(c target.Class) (gocv.Mat, bool) {
	m, ok := s.mats[c]
	return m, ok
}

// Len returns the number of loaded templates.
func (s *TemplateStore) Len() int {
	return len(s.mats)
}

func (s *TemplateStore) Close() {
	for c, m := range s.mats {
		m.Close()
		delete(s.mats, c)
	}
}
