package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"bookmark-manager/core/apperr"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const (
	fieldFolderTree = "folderTree"
	fieldAllLinks   = "allLinks"
)

// Validate checks that both top-level lists are present.
func (b *Bundle) Validate() error {
	const op = "reconcile.validate"
	if b == nil {
		return apperr.Validation(op, "bundle is required")
	}
	if b.FolderTree == nil {
		return apperr.Validation(op, "%s must be an array", fieldFolderTree)
	}
	if b.AllLinks == nil {
		return apperr.Validation(op, "%s must be an array", fieldAllLinks)
	}
	return nil
}

// DecodeBundle parses data in the given format, failing with a validation
// error unless both top-level fields are arrays.
func DecodeBundle(data []byte, format string) (*Bundle, error) {
	switch format {
	case FormatJSON, "":
		return decodeJSON(data)
	case FormatYAML, "yml":
		return decodeYAML(data)
	}
	return nil, apperr.Validation("reconcile.decode", "unsupported bundle format %q", format)
}

func decodeJSON(data []byte) (*Bundle, error) {
	const op = "reconcile.decode"

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperr.Validation(op, "bundle is not a JSON object: %v", err)
	}
	for _, field := range []string{fieldFolderTree, fieldAllLinks} {
		value, ok := raw[field]
		if !ok || !bytes.HasPrefix(bytes.TrimSpace(value), []byte("[")) {
			return nil, apperr.Validation(op, "%s must be an array", field)
		}
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, apperr.Validation(op, "malformed bundle: %v", err)
	}
	return &bundle, nil
}

func decodeYAML(data []byte) (*Bundle, error) {
	const op = "reconcile.decode"

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Validation(op, "bundle is not valid YAML: %v", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, apperr.Validation(op, "bundle is not a YAML mapping")
	}

	root := doc.Content[0]
	kinds := map[string]yaml.Kind{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		kinds[root.Content[i].Value] = root.Content[i+1].Kind
	}
	for _, field := range []string{fieldFolderTree, fieldAllLinks} {
		if kinds[field] != yaml.SequenceNode {
			return nil, apperr.Validation(op, "%s must be an array", field)
		}
	}

	var bundle Bundle
	if err := root.Decode(&bundle); err != nil {
		return nil, apperr.Validation(op, "malformed bundle: %v", err)
	}
	// Empty YAML sequences may decode as nil.
	if bundle.FolderTree == nil {
		bundle.FolderTree = []ImportFolder{}
	}
	if bundle.AllLinks == nil {
		bundle.AllLinks = []ImportLink{}
	}
	return &bundle, nil
}

// EncodeBundle renders bundle in the given format.
func EncodeBundle(bundle *Bundle, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(bundle, "", "  ")
	case FormatYAML, "yml":
		return yaml.Marshal(bundle)
	}
	return nil, fmt.Errorf("unsupported bundle format %q", format)
}
