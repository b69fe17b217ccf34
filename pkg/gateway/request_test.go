package gateway

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"halcyon-hq/torii/pkg/gateway/types"
)

func TestParseGenerationRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid request",
			body:    `{"parts":[{"text":"hello"}],"systemInstruction":"be terse"}`,
			wantErr: false,
		},
		{
			name:    "valid without system instruction",
			body:    `{"parts":[{"text":"hello"}]}`,
			wantErr: false,
		},
		{
			name:    "invalid JSON",
			body:    `{"parts":[`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
		{
			name:    "missing parts",
			body:    `{"systemInstruction":"x"}`,
			wantErr: true,
		},
		{
			name:    "parts not an array",
			body:    `{"parts":"oops"}`,
			wantErr: true,
		},
		{
			name:    "JSON array at top level",
			body:    `[1,2,3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(tt.body))

			req, err := ParseGenerationRequest(r)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				// Every parse failure must map to the 400 contract body.
				resp := HandleError(err)
				if resp.HTTPStatusCode() != http.StatusBadRequest {
					t.Errorf("expected parse failure to map to 400, got %d", resp.HTTPStatusCode())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(req.Parts) == 0 {
				t.Error("expected parts populated")
			}
		})
	}
}

func TestParseGenerationRequest_BodyTooLarge(t *testing.T) {
	huge := `{"parts":[{"text":"` + strings.Repeat("a", MaxRequestBodySize) + `"}]}`
	r := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(huge))

	_, err := ParseGenerationRequest(r)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError for oversized body, got %v", err)
	}
}

func TestWriteErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	if err := WriteErrorResponse(w, types.NewAccessDeniedError()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Access denied: Token verification failed."}` {
		t.Errorf("unexpected body: %s", got)
	}
}

func TestWriteJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	if err := WriteJSONResponse(w, http.StatusOK, types.GenerationResponse{Text: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"text":"hi"}` {
		t.Errorf("unexpected body: %s", got)
	}
}
