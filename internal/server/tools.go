package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageSourceProperties are the two mutually exclusive ways a tool can
// receive an image.
func imageSourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"image_base64": map[string]interface{}{
			"type":        "string",
			"description": "Base64 encoded image, optionally with a data URI prefix (data:image/png;base64,...)",
		},
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to an image file. Used when image_base64 is not given",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	analyzeProps := imageSourceProperties()
	analyzeProps["produce_debug_image"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Return an annotated PNG showing each detection and its label. Default true",
		"default":     true,
	}
	analyzeProps["name"] = map[string]interface{}{
		"type":        "string",
		"description": "Wireframe name. Default \"Sketch Wireframe\"",
	}
	analyzeProps["device"] = map[string]interface{}{
		"type":        "string",
		"description": "Named canvas preset (desktop, macbook, iphone, or any preset from the config file)",
	}
	analyzeProps["canvas_width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Explicit canvas width in pixels. Overrides device when set together with canvas_height",
	}
	analyzeProps["canvas_height"] = map[string]interface{}{
		"type":        "integer",
		"description": "Explicit canvas height in pixels",
	}

	return []Tool{
		{
			Name:        "sketch_analyze",
			Description: "Convert a photo or drawing of a UI sketch into a wireframe: typed components (navbar, hero, card, button, ...) with canvas positions, sizes, default props and confidence scores.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": analyzeProps,
			},
		},
		{
			Name:        "sketch_preprocess",
			Description: "Run only the image cleanup stage and return the binary mask and edge map as base64 PNGs. Use this to see why strokes are or are not being detected.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageSourceProperties(),
			},
		},
		{
			Name:        "sketch_classify",
			Description: "Classify a single bounding box against the component rules and report which rule fired. Useful for tuning classifier thresholds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate in image pixels",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate in image pixels",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Box width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Box height in pixels",
					},
					"area": map[string]interface{}{
						"type":        "number",
						"description": "Enclosed area in square pixels. Default width*height",
					},
					"image_width": map[string]interface{}{
						"type":        "integer",
						"description": "Width of the image the box was found in",
					},
					"image_height": map[string]interface{}{
						"type":        "integer",
						"description": "Height of the image the box was found in",
					},
				},
				"required": []string{"x", "y", "width", "height", "image_width", "image_height"},
			},
		},
		{
			Name:        "sketch_component_types",
			Description: "List every component type the analyzer can produce together with its default props and the outline color used for it in debug images.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
