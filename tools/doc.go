// Package tools defines tool contracts and implementations.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, executor.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Registry: ordered, duplicate-checked tool lookup; definition export
//     order is registration order and stable across calls.
//   - Course tools: search_course_content, get_course_outline.
//
// Executors return content text plus optional attribution sources; they never
// see the model directly.
package tools
