package vision

import (
	"image"
	"sync"

	"github.com/lkarlslund/stormbot/internal/target"
	"gocv.io/x/gocv"
)

// Detector runs every class template over the enemy region and segments the
// critical region in front of the house.
type Detector struct {
	classes   []target.Descriptor
	templates *TemplateStore
	enemy     image.Rectangle
	critical  image.Rectangle
	segment   SegmentOptions
}

// NewDetector returns a detector for the given classes. enemy and critical
// are regions of the captured frame. Every class must have a template in
// templates.
func NewDetector(templates *TemplateStore, classes []target.Descriptor, enemy, critical image.Rectangle, segment SegmentOptions) *Detector {
	return &Detector{
		classes:   classes,
		templates: templates,
		enemy:     enemy,
		critical:  critical,
		segment:   segment,
	}
}

// Detect returns every enemy found in frame, in frame coordinates. Template
// hits come first in class order, then the segmented soldiers.
func (d *Detector) Detect(frame gocv.Mat) []target.Detection {
	bounds := image.Rect(0, 0, frame.Cols(), frame.Rows())

	var found []target.Detection

	if enemy := d.enemy.Intersect(bounds); !enemy.Empty() {
		region := frame.Region(enemy)
		gray := Gray(region)
		region.Close()

		perClass := make([][]target.Detection, len(d.classes))
		var wg sync.WaitGroup
		wg.Add(len(d.classes))
		for i, class := range d.classes {
			go func(i int, class target.Descriptor) {
				defer wg.Done()
				perClass[i] = d.matchClass(gray, enemy.Min, class)
			}(i, class)
		}
		wg.Wait()
		gray.Close()

		for _, ds := range perClass {
			found = append(found, ds...)
		}
	}

	if critical := d.critical.Intersect(bounds); !critical.Empty() {
		region := frame.Region(critical)
		for _, bb := range Segment(region, d.segment) {
			found = append(found, target.Detection{
				Class: target.Soldier,
				Box:   bb.Add(critical.Min),
			})
		}
		region.Close()
	}

	return found
}

func (d *Detector) matchClass(gray gocv.Mat, offset image.Point, class target.Descriptor) []target.Detection {
	tmpl, ok := d.templates.Template(class.Class)
	if !ok {
		return nil
	}
	hits := Suppress(MatchTemplate(gray, tmpl, class.Threshold), class.Size)
	ds := make([]target.Detection, 0, len(hits))
	for _, p := range hits {
		ds = append(ds, target.Detection{
			Class: class.Class,
			Box:   class.Box(p.Add(offset)),
		})
	}
	return ds
}
