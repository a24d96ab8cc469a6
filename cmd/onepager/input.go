package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/onepager/internal/types"
)

// readRequest loads a generation request from path. The file may hold a full
// request body ({"data": {...}, "template": ...}) or the bare résumé object.
func readRequest(path string) (types.GenerateRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.GenerateRequest{}, fmt.Errorf("failed to read input file: %w", err)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(content, &envelope); err != nil {
		return types.GenerateRequest{}, fmt.Errorf("failed to unmarshal input JSON: %w", err)
	}

	var req types.GenerateRequest
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(content, &req); err != nil {
			return types.GenerateRequest{}, fmt.Errorf("failed to unmarshal request JSON: %w", err)
		}
		return req, nil
	}

	var raw types.RawResume
	if err := json.Unmarshal(content, &raw); err != nil {
		return types.GenerateRequest{}, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	req.Data = &raw
	return req, nil
}
