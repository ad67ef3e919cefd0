// Package imaging loads, describes and encodes images for the MCP server.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward and Y increases downward.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. It is bounded by an LRU policy, so a
// long-running server does not grow without limit; evicted images are decoded
// again on their next Load.
//
// # Color Representation
//
// Colors are returned as hex "#RRGGBB", 8-bit RGB, and HSL with hue in
// degrees (0-360) and saturation and lightness as percentages (0-100).
//
// # Output
//
// Encode produces base64 PNG payloads, optionally rescaled with a Lanczos
// filter, for rendered overlays and feature crops.
package imaging
