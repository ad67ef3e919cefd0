package server

import (
	"encoding/json"
	"image"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/ironsheep/feature-tools-mcp/internal/detection"
	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
	"github.com/ironsheep/feature-tools-mcp/internal/imaging"
	"github.com/ironsheep/feature-tools-mcp/internal/render"
)

// detectAll selects every detector.
const detectAll = "all"

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "features_query").
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

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warnw("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debugw("tool finished", "tool", params.Name, "duration", time.Since(start))

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Features
	case "features_detect":
		return s.handleFeaturesDetect(args)
	case "features_query":
		return s.handleFeaturesQuery(args)
	case "features_relation":
		return s.handleFeaturesRelation(args)
	case "features_distance_pairs":
		return s.handleFeaturesDistancePairs(args)
	case "features_render":
		return s.handleFeaturesRender(args)
	case "features_crop":
		return s.handleFeaturesCrop(args)

	default:
		return nil, errors.Errorf("unknown tool: %s", name)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return errors.New("missing arguments")
	}
	return errors.Wrap(json.Unmarshal(args, v), "invalid arguments")
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Detection ===

// detectArgs selects an image and the detector run over it. Params overrides
// individual fields of detection.DefaultParams.
type detectArgs struct {
	Path     string          `json:"path"`
	Detector string          `json:"detector"`
	Params   json.RawMessage `json:"params"`
}

// detect loads the image and runs the detector, reusing an earlier run with
// the same path, detector and parameters.
func (s *Server) detect(a detectArgs) (image.Image, features.Collection, error) {
	if a.Path == "" {
		return nil, features.Collection{}, errors.New("path is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, features.Collection{}, err
	}

	p := detection.DefaultParams()
	if len(a.Params) > 0 {
		if err := json.Unmarshal(a.Params, &p); err != nil {
			return nil, features.Collection{}, errors.Wrap(err, "invalid detector params")
		}
	}
	kind := detection.Kind(a.Detector)
	if kind == "" {
		kind = detectAll
	}

	key := detectionKey{path: a.Path, kind: kind, params: p}
	if col, ok := s.detections.Get(key); ok {
		return img, col, nil
	}

	var col features.Collection
	if kind == detectAll {
		col, err = s.detector.DetectAll(img, p)
	} else {
		col, err = s.detector.Detect(img, kind, p)
	}
	if err != nil {
		return nil, features.Collection{}, err
	}
	s.detections.Add(key, col)
	return img, col, nil
}

// === Query ===

type filterArgs struct {
	Relation string     `json:"relation"`
	Region   regionArgs `json:"region"`
}

type sortArgs struct {
	By         string  `json:"by"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Angle      float64 `json:"angle"`
	Color      string  `json:"color"`
	Descending bool    `json:"descending"`
}

type queryArgs struct {
	detectArgs
	Filters []filterArgs `json:"filters"`
	Sort    *sortArgs    `json:"sort"`
	Limit   int          `json:"limit"`
}

var collectionFilters = map[string]func(features.Collection, features.Region) (features.Collection, error){
	"inside":   features.Collection.Inside,
	"outside":  features.Collection.Outside,
	"overlaps": features.Collection.Overlaps,
	"above":    features.Collection.Above,
	"below":    features.Collection.Below,
	"left":     features.Collection.Left,
	"right":    features.Collection.Right,
}

// query applies the filters in order, then the sort. Every filter is checked
// before any runs so all argument errors are reported together.
func query(col features.Collection, filters []filterArgs, sortBy *sortArgs) (features.Collection, error) {
	type step struct {
		apply  func(features.Collection, features.Region) (features.Collection, error)
		region features.Region
	}

	var errs error
	steps := make([]step, 0, len(filters))
	for i, f := range filters {
		apply, ok := collectionFilters[f.Relation]
		if !ok {
			errs = multierr.Append(errs, errors.Errorf("filter %d: unknown relation %q", i, f.Relation))
			continue
		}
		r, err := f.Region.toRegion(col)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "filter %d", i))
			continue
		}
		steps = append(steps, step{apply: apply, region: r})
	}
	if errs != nil {
		return features.Collection{}, errs
	}

	out := col
	for i, st := range steps {
		var err error
		if out, err = st.apply(out, st.region); err != nil {
			return features.Collection{}, errors.Wrapf(err, "filter %d (%s %s)", i, filters[i].Relation, st.region)
		}
	}

	if sortBy == nil {
		return out, nil
	}
	return sortCollection(out, *sortBy)
}

func sortCollection(col features.Collection, a sortArgs) (features.Collection, error) {
	var sorted features.Collection
	switch a.By {
	case "area":
		sorted = col.SortArea()
	case "length":
		sorted = col.SortLength()
	case "distance":
		sorted = col.SortDistance(geometry.Pt(a.X, a.Y))
	case "distance_from_center":
		sorted = col.SortDistanceFromCenter()
	case "angle":
		sorted = col.SortAngle(a.Angle)
	case "color":
		c, err := imaging.ParseColorful(a.Color)
		if err != nil {
			return features.Collection{}, err
		}
		sorted = col.SortColorDistance(c)
	default:
		return features.Collection{}, errors.Errorf("unknown sort key %q", a.By)
	}

	if a.Descending {
		sorted = features.NewCollection(lo.Reverse(sorted.Features())...)
	}
	return sorted, nil
}

type boundsResult struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

type featureResult struct {
	Index     int                 `json:"index"`
	Kind      string              `json:"kind"`
	X         float64             `json:"x"`
	Y         float64             `json:"y"`
	Bounds    boundsResult        `json:"bounds"`
	Width     float64             `json:"width"`
	Height    float64             `json:"height"`
	Area      float64             `json:"area"`
	Length    float64             `json:"length"`
	Angle     float64             `json:"angle"`
	Radius    float64             `json:"radius,omitempty"`
	MeanColor imaging.ColorResult `json:"mean_color"`
}

type queryResult struct {
	Detected  int             `json:"detected"`
	Matched   int             `json:"matched"`
	Truncated bool            `json:"truncated,omitempty"`
	Features  []featureResult `json:"features"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// describe lists up to limit features of subset, each tagged with its index
// in the full detection.
func describe(all, subset features.Collection, limit int) queryResult {
	indexOf := make(map[*features.Feature]int, all.Len())
	for i, f := range all.Features() {
		indexOf[f] = i
	}

	shown := subset
	if subset.Len() > limit {
		shown = subset.Slice(0, limit)
	}

	return queryResult{
		Detected:  all.Len(),
		Matched:   subset.Len(),
		Truncated: shown.Len() < subset.Len(),
		Features: lo.Map(shown.Features(), func(f *features.Feature, _ int) featureResult {
			e := f.Extents()
			return featureResult{
				Index:     indexOf[f],
				Kind:      f.Kind.String(),
				X:         round2(f.X),
				Y:         round2(f.Y),
				Bounds:    boundsResult{MinX: round2(e.MinX), MinY: round2(e.MinY), MaxX: round2(e.MaxX), MaxY: round2(e.MaxY)},
				Width:     round2(f.Width()),
				Height:    round2(f.Height()),
				Area:      round2(f.Area()),
				Length:    round2(f.Length()),
				Angle:     round2(f.Angle()),
				Radius:    round2(f.Radius),
				MeanColor: imaging.DescribeColor(f.MeanColor()),
			}
		}),
	}
}

func (s *Server) limit(requested int) int {
	if requested > 0 && requested < s.cfg.MaxFeatures {
		return requested
	}
	return s.cfg.MaxFeatures
}

type detectToolArgs struct {
	detectArgs
	Limit int `json:"limit"`
}

func (s *Server) handleFeaturesDetect(args json.RawMessage) (interface{}, error) {
	var a detectToolArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, col, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}
	return describe(col, col, s.limit(a.Limit)), nil
}

func (s *Server) handleFeaturesQuery(args json.RawMessage) (interface{}, error) {
	var a queryArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, col, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}
	matched, err := query(col, a.Filters, a.Sort)
	if err != nil {
		return nil, err
	}
	return describe(col, matched, s.limit(a.Limit)), nil
}

// === Relation ===

var featurePredicates = map[string]func(*features.Feature, features.Region) (bool, error){
	"contains":         (*features.Feature).Contains,
	"does_not_contain": (*features.Feature).DoesNotContain,
	"overlaps":         (*features.Feature).Overlaps,
	"does_not_overlap": (*features.Feature).DoesNotOverlap,
	"inside":           (*features.Feature).IsContainedWithin,
	"outside":          (*features.Feature).IsNotContainedWithin,
	"above":            (*features.Feature).Above,
	"below":            (*features.Feature).Below,
	"left":             (*features.Feature).Left,
	"right":            (*features.Feature).Right,
}

type relationArgs struct {
	detectArgs
	Index    int        `json:"index"`
	Relation string     `json:"relation"`
	Region   regionArgs `json:"region"`
}

type relationResult struct {
	Index    int    `json:"index"`
	Relation string `json:"relation"`
	Region   string `json:"region"`
	Result   bool   `json:"result"`
}

func (s *Server) handleFeaturesRelation(args json.RawMessage) (interface{}, error) {
	var a relationArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	pred, ok := featurePredicates[a.Relation]
	if !ok {
		return nil, errors.Errorf("unknown relation %q", a.Relation)
	}

	_, col, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}
	f, err := featureAt(col, a.Index)
	if err != nil {
		return nil, err
	}
	r, err := a.Region.toRegion(col)
	if err != nil {
		return nil, err
	}

	result, err := pred(f, r)
	if err != nil {
		s.logger.Debugw("relation undetermined", "relation", a.Relation, "region", r.String(), "error", err)
		return nil, errors.Wrapf(err, "feature %d %s %s", a.Index, a.Relation, r)
	}
	return relationResult{Index: a.Index, Relation: a.Relation, Region: r.String(), Result: result}, nil
}

// === Distances ===

type distancePairsResult struct {
	Count    int         `json:"count"`
	Distance [][]float64 `json:"distance"`
}

func (s *Server) handleFeaturesDistancePairs(args json.RawMessage) (interface{}, error) {
	var a detectToolArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, col, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}
	if n := s.limit(a.Limit); col.Len() > n {
		col = col.Slice(0, n)
	}

	m := col.DistancePairs()
	n := m.SymmetricDim()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = round2(m.At(i, j))
		}
	}
	return distancePairsResult{Count: n, Distance: rows}, nil
}

// === Output images ===

type renderArgs struct {
	queryArgs
	Color     string  `json:"color"`
	AutoColor bool    `json:"auto_color"`
	Labels    bool    `json:"labels"`
	LineWidth float64 `json:"line_width"`
	Scale     float64 `json:"scale"`
}

type renderResult struct {
	Matched int                   `json:"matched"`
	Image   *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleFeaturesRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	img, col, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}
	matched, err := query(col, a.Filters, a.Sort)
	if err != nil {
		return nil, err
	}
	if n := s.limit(a.Limit); matched.Len() > n {
		matched = matched.Slice(0, n)
	}

	style := render.Style{AutoColor: a.AutoColor, Labels: a.Labels, LineWidth: a.LineWidth}
	if a.Color != "" {
		c, err := imaging.ParseHexColor(a.Color)
		if err != nil {
			return nil, err
		}
		style.Color = c
	}

	encoded, err := imaging.Encode(render.Render(img, matched, style), a.Scale)
	if err != nil {
		return nil, err
	}
	return renderResult{Matched: matched.Len(), Image: encoded}, nil
}

type cropArgs struct {
	detectArgs
	Index int     `json:"index"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleFeaturesCrop(args json.RawMessage) (interface{}, error) {
	var a cropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	_, col, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}
	f, err := featureAt(col, a.Index)
	if err != nil {
		return nil, err
	}

	cropped := f.Crop()
	if cropped == nil || cropped.Bounds().Empty() {
		return nil, errors.Errorf("feature %d does not cover any pixels", a.Index)
	}
	return imaging.Encode(cropped, a.Scale)
}
