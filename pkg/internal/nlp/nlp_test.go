package nlp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sony/gobreaker"
)

func TestExtractable(t *testing.T) {
	cases := []struct {
		fileType string
		want     bool
	}{
		{"application/pdf", true},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"application/msword", true},
		{"text/plain", true},
		{"text/markdown", true},
		{"image/png", false},
		{"video/mp4", false},
		{"application/zip", false},
		{"", false},
	}

	for _, c := range cases {
		if got := Extractable(c.fileType); got != c.want {
			t.Errorf("Extractable(%q) = %v, want %v", c.fileType, got, c.want)
		}
	}
}

func TestHTTPEmbedder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		var req embedRequest
		if err := sonic.Unmarshal(body, &req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Text != "hello" {
			t.Errorf("text = %q, want hello", req.Text)
		}

		_ = sonic.ConfigDefault.NewEncoder(w).Encode(embedResponse{Embeddings: []float64{0.1, 0.2}})
	}))
	defer srv.Close()

	e := NewHTTPEmbedder(srv.URL, 5*time.Second)

	got, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 2 || got[0] != 0.1 {
		t.Errorf("Embed = %v", got)
	}
}

func TestHTTPEmbedderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := NewHTTPEmbedder(srv.URL, 5*time.Second)

	if _, err := e.Embed(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on 502 response")
	}
}

func TestHTTPProcessorSkipsUnextractable(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := NewHTTPProcessor(srv.URL, 5*time.Second)

	got, err := p.Process(context.Background(), "https://blob/x.png", "image/png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got.Text != "" || got.Embedding != nil {
		t.Errorf("expected empty result for image, got %+v", got)
	}
	if called {
		t.Error("processor endpoint should not be called for image types")
	}
}

func TestHTTPProcessor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		var req processRequest
		_ = sonic.Unmarshal(body, &req)
		if req.FileType != "application/pdf" {
			t.Errorf("fileType = %q", req.FileType)
		}

		_ = sonic.ConfigDefault.NewEncoder(w).Encode(processResponse{
			ExtractedText: "quarterly report",
			Embeddings:    []float64{0.5},
		})
	}))
	defer srv.Close()

	p := NewHTTPProcessor(srv.URL, 5*time.Second)

	got, err := p.Process(context.Background(), "https://blob/report.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got.Text != "quarterly report" || len(got.Embedding) != 1 {
		t.Errorf("Process = %+v", got)
	}
}

type failingEmbedder struct{ err error }

func (f *failingEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return nil, f.err
}

func TestBreakerEmbedderOpensAfterFailures(t *testing.T) {
	inner := &failingEmbedder{err: errors.New("down")}
	b := NewBreakerEmbedder(inner, "test")

	// 连续失败足够多次后熔断器打开
	for i := 0; i < 10; i++ {
		_, _ = b.Embed(context.Background(), "q")
	}

	_, err := b.Embed(context.Background(), "q")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want open-state error", err)
	}
}
