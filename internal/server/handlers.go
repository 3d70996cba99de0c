package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/sketch2wire/internal/config"
	"github.com/ironsheep/sketch2wire/internal/detection"
	"github.com/ironsheep/sketch2wire/internal/imaging"
	"github.com/ironsheep/sketch2wire/internal/pipeline"
	"github.com/ironsheep/sketch2wire/internal/wireframe"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sketch_analyze").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	s.metrics.ObserveToolCall(params.Name, err)
	if err != nil {
		if s.Debug {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Decodes the inline image or loads it from the cache
//  4. Calls the analyzer
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "sketch_analyze":
		return s.handleSketchAnalyze(args)
	case "sketch_preprocess":
		return s.handleSketchPreprocess(args)
	case "sketch_classify":
		return s.handleSketchClassify(args)
	case "sketch_component_types":
		return s.handleSketchComponentTypes(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// imageSource is embedded by every tool that takes an image.
type imageSource struct {
	ImageBase64 string `json:"image_base64"`
	Path        string `json:"path"`
}

// load returns the image named by the source. Inline data wins over a
// path; files are served from the cache while unchanged on disk.
func (s *Server) load(src imageSource) (*imaging.RawImage, error) {
	switch {
	case src.ImageBase64 != "":
		return imaging.Decode(src.ImageBase64, s.analyzer.Config().Preprocess.MaxInputPixels)
	case src.Path != "":
		return s.cache.Load(src.Path)
	default:
		return nil, errors.New("one of image_base64 or path is required")
	}
}

// === Sketch Analysis Handlers ===

type sketchAnalyzeArgs struct {
	imageSource
	ProduceDebugImage *bool  `json:"produce_debug_image"`
	Name              string `json:"name"`
	Device            string `json:"device"`
	CanvasWidth       int    `json:"canvas_width"`
	CanvasHeight      int    `json:"canvas_height"`
}

func (s *Server) handleSketchAnalyze(args json.RawMessage) (interface{}, error) {
	var a sketchAnalyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := pipeline.DefaultOptions()
	if a.ProduceDebugImage != nil {
		opts.ProduceDebugImage = *a.ProduceDebugImage
	}
	if a.Name != "" {
		opts.Name = a.Name
	}
	opts.Device = a.Device
	if a.CanvasWidth != 0 || a.CanvasHeight != 0 {
		opts.Canvas = &config.Canvas{Width: a.CanvasWidth, Height: a.CanvasHeight}
	}

	start := time.Now()
	raw, err := s.load(a.imageSource)
	var result *pipeline.Result
	if err == nil {
		result, err = s.analyzer.AnalyzeImage(raw, opts)
	}
	s.metrics.ObserveAnalysis(result, err, time.Since(start))
	if err != nil {
		return nil, err
	}

	if s.Debug {
		log.Printf("Analyzed sketch %dx%d: %d components", result.OriginalSize[0], result.OriginalSize[1], len(result.Components))
	}
	return result, nil
}

type sketchPreprocessResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Scale       float64 `json:"scale"`
	MaskBase64  string  `json:"mask_base64"`
	EdgesBase64 string  `json:"edges_base64"`
}

func (s *Server) handleSketchPreprocess(args json.RawMessage) (interface{}, error) {
	var a imageSource
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	raw, err := s.load(a)
	if err != nil {
		return nil, err
	}

	pre, err := s.analyzer.Preprocess(raw)
	if err != nil {
		return nil, err
	}
	mask, err := imaging.EncodePNGDataURI(pre.Mask)
	if err != nil {
		return nil, err
	}
	edges, err := imaging.EncodePNGDataURI(pre.Edges)
	if err != nil {
		return nil, err
	}

	return &sketchPreprocessResult{
		Width:       pre.Width,
		Height:      pre.Height,
		Scale:       pre.Scale,
		MaskBase64:  mask,
		EdgesBase64: edges,
	}, nil
}

type sketchClassifyArgs struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Area        float64 `json:"area"`
	ImageWidth  int     `json:"image_width"`
	ImageHeight int     `json:"image_height"`
}

func (s *Server) handleSketchClassify(args json.RawMessage) (interface{}, error) {
	var a sketchClassifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %dx%d", a.Width, a.Height)
	}
	if a.ImageWidth <= 0 || a.ImageHeight <= 0 {
		return nil, fmt.Errorf("image_width and image_height must be positive, got %dx%d", a.ImageWidth, a.ImageHeight)
	}
	if a.Area == 0 {
		a.Area = float64(a.Width * a.Height)
	}

	shape := detection.Shape{
		X:           a.X,
		Y:           a.Y,
		Width:       a.Width,
		Height:      a.Height,
		Area:        a.Area,
		AspectRatio: float64(a.Width) / float64(a.Height),
	}
	return s.analyzer.Classifier().Explain(shape, a.ImageWidth, a.ImageHeight), nil
}

// componentTypeInfo describes one component type. AnnotationColor is the
// outline color the type gets in debug images.
type componentTypeInfo struct {
	Type            wireframe.ComponentType `json:"type"`
	AnnotationColor string                  `json:"annotation_color"`
	DefaultProps    map[string]any          `json:"default_props"`
}

func (s *Server) handleSketchComponentTypes(json.RawMessage) (interface{}, error) {
	types := wireframe.AllTypes()
	palette := imaging.Palette(len(types))
	infos := make([]componentTypeInfo, len(types))
	for i, t := range types {
		infos[i] = componentTypeInfo{
			Type:            t,
			AnnotationColor: imaging.HexColor(palette[t]),
			DefaultProps:    wireframe.DefaultProps(t),
		}
	}
	return infos, nil
}
