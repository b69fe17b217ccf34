package types

import (
	"encoding/json"
	"testing"
)

func TestGenerationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid parts array",
			body:    `{"parts":[{"text":"hello"}]}`,
			wantErr: false,
		},
		{
			name:    "valid with system instruction",
			body:    `{"parts":[{"text":"hi"}],"systemInstruction":"be terse"}`,
			wantErr: false,
		},
		{
			name:    "empty parts array is still an array",
			body:    `{"parts":[]}`,
			wantErr: false,
		},
		{
			name:    "missing parts",
			body:    `{"systemInstruction":"be terse"}`,
			wantErr: true,
		},
		{
			name:    "parts is a string",
			body:    `{"parts":"not an array"}`,
			wantErr: true,
		},
		{
			name:    "parts is an object",
			body:    `{"parts":{"text":"hello"}}`,
			wantErr: true,
		},
		{
			name:    "parts is a number",
			body:    `{"parts":42}`,
			wantErr: true,
		},
		{
			name:    "parts is null",
			body:    `{"parts":null}`,
			wantErr: true,
		},
		{
			name:    "parts array with leading whitespace",
			body:    `{"parts":  [1,2]}`,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req GenerationRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("failed to unmarshal test body: %v", err)
			}

			err := req.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

func TestGenerationRequest_PartsPreservedVerbatim(t *testing.T) {
	raw := `{"parts":[{"text":"a"},{"inlineData":{"mimeType":"image/png","data":"AAAA"}}]}`

	var req GenerationRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	want := `[{"text":"a"},{"inlineData":{"mimeType":"image/png","data":"AAAA"}}]`
	if string(req.Parts) != want {
		t.Errorf("parts not preserved verbatim:\n got: %s\nwant: %s", req.Parts, want)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "parts", Message: "must be an array"}
	want := `validation error for field "parts": must be an array`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
