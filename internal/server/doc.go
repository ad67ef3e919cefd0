// Package server implements the MCP (Model Context Protocol) server for
// spatial queries over detected image features.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Features:
//   - features_detect: Run a detector and list the resulting features
//   - features_query: Filter detected features by spatial relation and sort them
//   - features_relation: Test one relation between a feature and a region
//   - features_distance_pairs: Center-to-center distance matrix
//   - features_render: Draw matching features over the image
//   - features_crop: Crop the image to one feature
//
// Every features_* tool takes the image path, a detector name (blobs,
// circles, lines, text or all) and optional detector params. Feature indices
// refer to the order of that detection, so they stay valid across calls that
// use the same path, detector and params.
//
// # Regions
//
// Filters and relations compare features against a region object:
//
//	{"type": "box", "x": 0, "y": 0, "width": 50, "height": 30}
//	{"type": "feature", "index": 3}
//
// The other types are point, circle, polygon and scalar. A scalar region is
// a bare coordinate for the directional relations.
//
// # Caching
//
// Decoded images and detection results are held in bounded LRU caches sized
// from the configuration. Evicted entries are recomputed on demand.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
