package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-explanation",
		Description: "A self-explanation",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"explanation": map[string]any{"type": "string", "minLength": 1},
				"confidence":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				"focus":       map[string]any{"type": "string", "enum": []any{"subject", "style", "color"}},
			},
			"required": []any{"explanation"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"explanation":"I guessed.","confidence":0.4,"focus":"style"}`, false},
		{"optional fields omitted", `{"explanation":"I guessed."}`, false},
		{"missing required", `{"confidence":0.4}`, true},
		{"empty string", `{"explanation":""}`, true},
		{"wrong type", `{"explanation":42}`, true},
		{"out of range", `{"explanation":"x","confidence":1.5}`, true},
		{"invalid enum", `{"explanation":"x","focus":"mood"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
			if string(invErr.Content) != tt.raw {
				t.Errorf("content = %q, want %q", invErr.Content, tt.raw)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"image": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subject": map[string]any{"type": "string"},
					},
					"required": []any{"subject"},
				},
				"keywords": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"image", "keywords"},
		},
	}

	valid := json.RawMessage(`{"image":{"subject":"tree"},"keywords":["fruit","tree"]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"image":{"subject":"tree"},"keywords":[1,2]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}

func TestFinishContent(t *testing.T) {
	content, err := finishContent(nil, `He said "hi"`)
	if err != nil {
		t.Fatalf("free text: %v", err)
	}
	resp := &Response{Content: content}
	if resp.Text() != `He said "hi"` {
		t.Errorf("Text() = %q", resp.Text())
	}

	if _, err := finishContent(testSchema(), `{"explanation":""}`); err == nil {
		t.Error("expected schema violation")
	}

	structured := &Response{Content: json.RawMessage(`{"explanation":"x"}`)}
	if structured.Text() != `{"explanation":"x"}` {
		t.Errorf("structured Text() = %q", structured.Text())
	}
}
