package factory

import (
	"testing"
	"time"

	"campus-assistant-be/pkg/generation/ollama"
)

func TestNewProviderAppliesConfiguredTimeout(t *testing.T) {
	p, err := NewProvider("ollama", "solar:10.7b", "http://ollama:11434", 45*time.Second)
	if err != nil {
		t.Fatal(err)
	}

	op, ok := p.(*ollama.OllamaProvider)
	if !ok {
		t.Fatalf("provider type = %T, want *ollama.OllamaProvider", p)
	}
	if op.Client.Timeout != 45*time.Second {
		t.Errorf("client timeout = %s, want 45s", op.Client.Timeout)
	}
	if op.BaseURL != "http://ollama:11434" {
		t.Errorf("base url = %q", op.BaseURL)
	}
}

func TestNewProviderDefaultsTimeoutAndURL(t *testing.T) {
	p, err := NewProvider("ollama", "solar:10.7b", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	op := p.(*ollama.OllamaProvider)
	if op.Client.Timeout != ollama.DefaultTimeout {
		t.Errorf("client timeout = %s, want the default", op.Client.Timeout)
	}
	if op.BaseURL != "http://localhost:11434" {
		t.Errorf("base url = %q", op.BaseURL)
	}
}

func TestNewProviderRejectsUnknownType(t *testing.T) {
	if _, err := NewProvider("openai", "gpt", "", 0); err == nil {
		t.Error("expected an error for an unsupported provider")
	}
}
