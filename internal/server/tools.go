package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// regionSchema describes a region descriptor argument.
var regionSchema = map[string]interface{}{
	"type":        "object",
	"description": "Region to compare against. point: x,y. box: x,y (top-left),width,height. circle: x,y,radius. polygon: points [[x,y],...] (3 or more). feature: index of another detected feature. scalar: value (a bare coordinate for above/below/left/right).",
	"properties": map[string]interface{}{
		"type": map[string]interface{}{
			"type": "string",
			"enum": []string{"point", "box", "circle", "polygon", "feature", "scalar"},
		},
		"x":      map[string]interface{}{"type": "number"},
		"y":      map[string]interface{}{"type": "number"},
		"width":  map[string]interface{}{"type": "number"},
		"height": map[string]interface{}{"type": "number"},
		"radius": map[string]interface{}{"type": "number"},
		"points": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "number"},
				"minItems": 2,
				"maxItems": 2,
			},
		},
		"index": map[string]interface{}{"type": "integer"},
		"value": map[string]interface{}{"type": "number"},
	},
	"required": []string{"type"},
}

// detectProperties returns the arguments shared by every features_* tool
// plus extra.
func detectProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": pathProperty,
		"detector": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"all", "blobs", "circles", "lines", "text"},
			"description": "Which detector produces the features (default all)",
			"default":     "all",
		},
		"params": map[string]interface{}{
			"type":        "object",
			"description": "Detector tuning. Omitted fields keep their defaults.",
			"properties": map[string]interface{}{
				"min_area": map[string]interface{}{
					"type":        "integer",
					"description": "Minimum blob area in pixels (default 100)",
					"default":     100,
				},
				"min_radius": map[string]interface{}{
					"type":        "integer",
					"description": "Minimum circle radius in pixels (default 5)",
					"default":     5,
				},
				"max_radius": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum circle radius in pixels (default 50)",
					"default":     50,
				},
				"min_length": map[string]interface{}{
					"type":        "integer",
					"description": "Minimum line length in pixels (default 20)",
					"default":     20,
				},
				"min_confidence": map[string]interface{}{
					"type":        "number",
					"description": "Minimum text region confidence, 0-1 (default 0.5)",
					"default":     0.5,
				},
			},
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

var limitProperty = map[string]interface{}{
	"type":        "integer",
	"description": "Maximum number of features to return (capped by the server)",
}

var scaleProperty = map[string]interface{}{
	"type":        "number",
	"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
	"default":     1.0,
}

var queryProperties = map[string]interface{}{
	"filters": map[string]interface{}{
		"type":        "array",
		"description": "Filters applied in order. Each keeps the features for which the relation to the region holds. Containment and overlap use bounding boxes.",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"relation": map[string]interface{}{
					"type": "string",
					"enum": []string{"inside", "outside", "overlaps", "above", "below", "left", "right"},
				},
				"region": regionSchema,
			},
			"required": []string{"relation", "region"},
		},
	},
	"sort": map[string]interface{}{
		"type":        "object",
		"description": "Stable ascending sort of the filtered features.",
		"properties": map[string]interface{}{
			"by": map[string]interface{}{
				"type": "string",
				"enum": []string{"area", "length", "distance", "distance_from_center", "angle", "color"},
			},
			"x":          map[string]interface{}{"type": "number", "description": "Reference x for distance"},
			"y":          map[string]interface{}{"type": "number", "description": "Reference y for distance"},
			"angle":      map[string]interface{}{"type": "number", "description": "Reference angle in degrees for angle"},
			"color":      map[string]interface{}{"type": "string", "description": "Reference hex color for color"},
			"descending": map[string]interface{}{"type": "boolean", "default": false},
		},
		"required": []string{"by"},
	},
	"limit": limitProperty,
}

func mergeProperties(maps ...map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Features
		{
			Name:        "features_detect",
			Description: "Detect features (blobs, circles, lines, text regions) and list them with index, bounding box, size, angle and mean color. Indices are stable for the same path, detector and params.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectProperties(map[string]interface{}{"limit": limitProperty}),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "features_query",
			Description: "Detect features, keep those matching spatial filters (inside, outside, overlaps, above, below, left, right of a region) and sort them.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectProperties(queryProperties),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "features_relation",
			Description: "Test one spatial relation between a detected feature and a region or another feature.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": detectProperties(map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Index of the feature from features_detect",
					},
					"relation": map[string]interface{}{
						"type": "string",
						"enum": []string{"contains", "does_not_contain", "overlaps", "does_not_overlap",
							"inside", "outside", "above", "below", "left", "right"},
					},
					"region": regionSchema,
				}),
				"required": []string{"path", "index", "relation", "region"},
			},
		},
		{
			Name:        "features_distance_pairs",
			Description: "Return the matrix of center-to-center distances between detected features.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectProperties(map[string]interface{}{"limit": limitProperty}),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "features_render",
			Description: "Draw the matching features over the image and return it as base64-encoded PNG. Accepts the same filters and sort as features_query.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": detectProperties(mergeProperties(queryProperties, map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex (default #FF0000)",
					},
					"auto_color": map[string]interface{}{
						"type":        "boolean",
						"description": "Give every feature its own color",
						"default":     false,
					},
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw each feature's index next to it",
						"default":     false,
					},
					"line_width": map[string]interface{}{
						"type":        "number",
						"description": "Outline width in pixels (default 1)",
						"default":     1,
					},
					"scale": scaleProperty,
				})),
				"required": []string{"path"},
			},
		},
		{
			Name:        "features_crop",
			Description: "Crop the image to one detected feature and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": detectProperties(map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Index of the feature from features_detect",
					},
					"scale": scaleProperty,
				}),
				"required": []string{"path", "index"},
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
