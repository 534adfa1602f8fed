// Package utils provides loose type conversion for untyped request payloads,
// such as ids and indexes decoded from JSON into map[string]any.
package utils
