package mcpserver

import (
	"encoding/json"
	"fmt"

	"pageforge/internal/domain"
)

// parseProps decodes a tool's props argument. It must be a JSON object.
func parseProps(raw string) (domain.Props, error) {
	var props domain.Props
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, fmt.Errorf("invalid props JSON: %w", err)
	}
	if props == nil {
		return nil, fmt.Errorf("invalid props JSON: expected an object")
	}
	return props, nil
}

// approvalMetadata renders key/value pairs as the JSON metadata of a pending action.
func approvalMetadata(key, value string) string {
	data, err := json.Marshal(map[string]string{key: value})
	if err != nil {
		return "{}"
	}
	return string(data)
}
