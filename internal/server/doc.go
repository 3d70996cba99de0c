// Package server implements the MCP (Model Context Protocol) server for sketch analysis.
//
// The server exposes the sketch-to-wireframe pipeline as MCP tools so an AI
// client can turn a photographed or drawn UI sketch into a structured
// wireframe, inspect the intermediate mask, and query the classifier.
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
//   - sketch_analyze: Full pipeline; returns the wireframe, components,
//     processing notes and an optional annotated debug PNG
//   - sketch_preprocess: Binary mask and edge map as PNG data URIs
//   - sketch_classify: Classify one bounding box and name the rule that fired
//   - sketch_component_types: The component types with their default props
//     and debug outline colors
//
// Image tools accept either image_base64 (optionally a data URI) or path.
//
// # Image Caching
//
// Images loaded by path are cached by path together with the file size and
// modification time, so a sketch redrawn in place is decoded again. At most
// 16 files are kept. Inline images are never cached. Every input is checked
// against preprocess.max_input_pixels before its pixels are decoded.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "failed to decode image: ..."
//
// # Usage
//
//	analyzer, err := pipeline.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(analyzer, metrics.New(prometheus.DefaultRegisterer))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
