package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseHFResponse(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"list shape", `[{"generated_text":"Paris."}]`, "Paris.", false},
		{"list picks first", `[{"generated_text":"first"},{"generated_text":"second"}]`, "first", false},
		{"object shape", `{"generated_text":"Paris."}`, "Paris.", false},
		{"empty list", `[]`, "", true},
		{"garbage", `not json at all`, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseHFResponse([]byte(tc.body))
			if tc.wantErr {
				if err == nil {
					t.Errorf("parseHFResponse(%q) succeeded, want error", tc.body)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHFResponse(%q): %v", tc.body, err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHuggingFaceComplete(t *testing.T) {
	var gotReq hfRequest
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`[{"generated_text":"The capital is Paris."}]`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider(srv.URL, "secret-key", "mistralai/Mistral-7B-Instruct-v0.2")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages:    []Message{{Role: RoleUser, Content: "What is the capital of France?"}},
		MaxTokens:   500,
		Temperature: 0.7,
		TopP:        0.95,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if resp.Content != "The capital is Paris." {
		t.Errorf("content = %q", resp.Content)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if !strings.HasSuffix(gotPath, "mistralai/Mistral-7B-Instruct-v0.2") {
		t.Errorf("request path = %q, want model suffix", gotPath)
	}
	if gotReq.Inputs != "What is the capital of France?" {
		t.Errorf("inputs = %q", gotReq.Inputs)
	}
	if gotReq.Parameters.MaxNewTokens != 500 || gotReq.Parameters.TopP != 0.95 {
		t.Errorf("parameters = %+v", gotReq.Parameters)
	}
	if !gotReq.Parameters.DoSample {
		t.Error("do_sample = false with temperature 0.7")
	}
}

func TestHuggingFaceCompleteObjectShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"generated_text":"object shaped"}`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider(srv.URL, "k", "m")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "object shaped" {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestHuggingFaceCompleteDeterministic(t *testing.T) {
	var gotReq hfRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`[{"generated_text":"YES"}]`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider(srv.URL, "k", "m")
	if _, err := p.Complete(context.Background(), CompletionRequest{
		Messages:    []Message{{Role: RoleUser, Content: "q"}},
		Temperature: 0,
	}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotReq.Parameters.DoSample {
		t.Error("do_sample = true with temperature 0")
	}
}

func TestHuggingFaceCompleteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider(srv.URL, "k", "m")
	_, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	})
	if err == nil {
		t.Fatal("Complete succeeded, want error")
	}
	genErr, ok := AsGenerationError(err)
	if !ok {
		t.Fatalf("error %v is not a GenerationError", err)
	}
	if genErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", genErr.StatusCode)
	}
	if !strings.Contains(genErr.Detail, "currently loading") {
		t.Errorf("detail %q lost the backend message", genErr.Detail)
	}
	if genErr.Provider != "huggingface" {
		t.Errorf("provider = %q", genErr.Provider)
	}
}

func TestHuggingFaceMessagesFlattened(t *testing.T) {
	var gotReq hfRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`[{"generated_text":"ok"}]`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider(srv.URL, "k", "m")
	if _, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "You answer briefly."},
			{Role: RoleUser, Content: "What is the capital of France?"},
		},
	}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	want := "You answer briefly.\nWhat is the capital of France?"
	if gotReq.Inputs != want {
		t.Errorf("inputs = %q, want %q", gotReq.Inputs, want)
	}
}
