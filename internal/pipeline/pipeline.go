// Package pipeline turns an encoded sketch image into a wireframe.
//
// An Analyzer sequences the stages of the sketch analysis:
//
//  1. Decode the image (imaging.Decode)
//  2. Preprocess into a binary mask (preprocess.Run)
//  3. Extract candidate shapes (detection.DetectShapes)
//  4. Classify each shape (classify.Classifier)
//  5. Scale each box onto the target canvas (wireframe.Scale)
//
// and packages the components, processing notes and an optional annotated
// debug image into a Result.
//
// An Analyzer holds only immutable configuration, so one value may serve
// any number of concurrent calls. Output is a deterministic function of
// the input pixels, the options and the configuration: IDs are name-based
// UUIDs rather than random ones.
package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/ironsheep/sketch2wire/internal/classify"
	"github.com/ironsheep/sketch2wire/internal/config"
	"github.com/ironsheep/sketch2wire/internal/detection"
	"github.com/ironsheep/sketch2wire/internal/imaging"
	"github.com/ironsheep/sketch2wire/internal/preprocess"
	"github.com/ironsheep/sketch2wire/internal/wireframe"
)

// idNamespace scopes every generated wireframe ID.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ironsheep/sketch2wire"))

// Options control a single analysis call.
type Options struct {
	// ProduceDebugImage requests an annotated PNG of the detections.
	ProduceDebugImage bool

	// Name is the wireframe name. Empty means wireframe.DefaultName.
	Name string

	// Device selects a named canvas preset from the configuration.
	Device string

	// Canvas overrides both Device and the configured default canvas.
	Canvas *config.Canvas
}

// DefaultOptions returns the options used when the caller has no
// preference: debug image on, default name, default canvas.
func DefaultOptions() Options {
	return Options{
		ProduceDebugImage: true,
		Name:              wireframe.DefaultName,
	}
}

// Result is the complete output of one analysis.
type Result struct {
	Wireframe *wireframe.Wireframe `json:"wireframe"`

	// Components is the same list as Wireframe.Components.
	Components []wireframe.Component `json:"components"`

	// DebugImage is a PNG data URI, or nil when not requested.
	DebugImage *string `json:"debug_image_base64"`

	// OriginalSize is the decoded [width, height] before any resize.
	OriginalSize [2]int `json:"original_size"`

	ProcessingNotes []string `json:"processing_notes"`
}

// Analyzer runs the sketch analysis pipeline with a fixed configuration.
type Analyzer struct {
	cfg        config.Config
	classifier *classify.Classifier
}

// New validates cfg and returns an Analyzer bound to it.
//
// Returns *config.ConfigError if any parameter is invalid.
func New(cfg config.Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	classifier, err := classify.New(cfg.Classifier)
	if err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg, classifier: classifier}, nil
}

// Config returns the configuration the analyzer was built with.
func (a *Analyzer) Config() config.Config {
	return a.cfg
}

// Classifier returns the rule chain used to type shapes.
func (a *Analyzer) Classifier() *classify.Classifier {
	return a.classifier
}

// Analyze decodes a base64 (optionally data-URI prefixed) image and
// analyzes it.
//
// Returns *imaging.DecodeError if the input cannot be decoded and
// *config.ConfigError if opts names an unknown device or an invalid
// canvas. No partial result is returned on error.
func (a *Analyzer) Analyze(encoded string, opts Options) (*Result, error) {
	raw, err := imaging.Decode(encoded, a.cfg.Preprocess.MaxInputPixels)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeImage(raw, opts)
}

// AnalyzeBytes analyzes an encoded image file held in memory.
func (a *Analyzer) AnalyzeBytes(data []byte, opts Options) (*Result, error) {
	raw, err := imaging.DecodeBytes(data, a.cfg.Preprocess.MaxInputPixels)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeImage(raw, opts)
}

// Preprocess runs only the preprocessing stage with the analyzer's
// configuration.
func (a *Analyzer) Preprocess(raw *imaging.RawImage) (*preprocess.Result, error) {
	return preprocess.Run(raw, a.cfg.Preprocess)
}

// AnalyzeImage analyzes an already decoded image.
func (a *Analyzer) AnalyzeImage(raw *imaging.RawImage, opts Options) (*Result, error) {
	if opts.Name == "" {
		opts.Name = wireframe.DefaultName
	}
	canvas, device, err := a.resolveCanvas(opts)
	if err != nil {
		return nil, err
	}

	notes := []string{fmt.Sprintf("Original size: %dx%d", raw.Width, raw.Height)}

	pre, err := preprocess.Run(raw, a.cfg.Preprocess)
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess image: %w", err)
	}
	if pre.Scale != 1.0 {
		notes = append(notes, fmt.Sprintf("Resized by factor %.2f", pre.Scale))
	}

	shapes, err := detection.DetectShapes(pre.Mask, a.cfg.Detection)
	if err != nil {
		return nil, fmt.Errorf("failed to detect shapes: %w", err)
	}

	wfID := wireframeID(raw, opts.Name, canvas)
	wf := wireframe.New(wfID.String(), opts.Name, wireframe.Size{Width: canvas.Width, Height: canvas.Height})
	wf.DeviceType = device

	annotations := make([]imaging.Annotation, 0, len(shapes))
	palette := imaging.Palette(len(wireframe.AllTypes()))

	for i, shape := range shapes {
		typ, confidence := a.classifier.Classify(shape, pre.Width, pre.Height)
		pos, size := wireframe.Scale(shape.Rect(), pre.Width, pre.Height, wf.CanvasSize)

		wf.Add(wireframe.Component{
			ID:         uuid.NewSHA1(wfID, []byte(fmt.Sprintf("component-%d", i))).String(),
			Type:       typ,
			Position:   pos,
			Size:       size,
			Props:      wireframe.DefaultProps(typ),
			Confidence: &confidence,
			Source:     wireframe.SourceCV,
		})

		annotations = append(annotations, imaging.Annotation{
			Rect:  shape.Rect(),
			Label: fmt.Sprintf("%s (%d%%)", typ, int(math.Round(confidence*100))),
			Color: palette[typ],
		})
	}

	notes = append(notes, fmt.Sprintf("Detected %d components", len(wf.Components)))
	if len(wf.Components) == 0 {
		notes = append(notes, "No shapes survived filtering; the sketch may be blank or its outlines too faint or too small")
	}
	notes = append(notes, "Types: "+typeSummary(wf))

	result := &Result{
		Wireframe:       wf,
		Components:      wf.Components,
		OriginalSize:    [2]int{raw.Width, raw.Height},
		ProcessingNotes: notes,
	}

	if opts.ProduceDebugImage {
		uri, err := imaging.EncodePNGDataURI(imaging.Annotate(pre.Processed, annotations))
		if err != nil {
			return nil, fmt.Errorf("failed to render debug image: %w", err)
		}
		result.DebugImage = &uri
	}

	return result, nil
}

// resolveCanvas picks the target canvas: an explicit canvas first, then a
// device preset, then the configured default. The second return value is
// the device name when a preset was used.
func (a *Analyzer) resolveCanvas(opts Options) (config.Canvas, string, error) {
	if opts.Canvas != nil {
		if err := opts.Canvas.Validate("canvas"); err != nil {
			return config.Canvas{}, "", err
		}
		return *opts.Canvas, "", nil
	}
	if opts.Device != "" {
		canvas, err := a.cfg.Device(opts.Device)
		if err != nil {
			return config.Canvas{}, "", err
		}
		return canvas, opts.Device, nil
	}
	return a.cfg.Canvas, "", nil
}

// wireframeID derives a stable ID from the decoded pixels, the wireframe
// name and the canvas, so identical requests produce identical output.
func wireframeID(raw *imaging.RawImage, name string, canvas config.Canvas) uuid.UUID {
	header := fmt.Sprintf("%dx%d|%s|%dx%d|", raw.Width, raw.Height, name, canvas.Width, canvas.Height)
	data := make([]byte, 0, len(header)+len(raw.Image.Pix))
	data = append(data, header...)
	data = append(data, raw.Image.Pix...)
	return uuid.NewSHA1(idNamespace, data)
}

// typeSummary lists per-type counts in declaration order, for example
// "navbar=1, hero=1, footer=1".
func typeSummary(wf *wireframe.Wireframe) string {
	counts := wf.Counts()
	parts := make([]string, 0, len(counts))
	for _, t := range wireframe.AllTypes() {
		if n := counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", t, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
