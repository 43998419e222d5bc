package render

import (
	"testing"
)

func TestRenderString_WithHelpers(t *testing.T) {
	r := NewRenderer()

	got, err := r.RenderString("greeting", "Hello {{ pascalCase .Name }}", map[string]string{"Name": "my_app"})
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	if string(got) != "Hello MyApp" {
		t.Errorf("rendered %q", got)
	}
}

func TestRenderString_CachedTemplateRerenders(t *testing.T) {
	r := NewRenderer()

	first, err := r.RenderString("t", "v={{ .V }}", map[string]string{"V": "1"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.RenderString("t", "ignored on cache hit", map[string]string{"V": "2"})
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != "v=1" || string(second) != "v=2" {
		t.Errorf("got %q then %q", first, second)
	}
}

func TestRenderString_ParseError(t *testing.T) {
	r := NewRenderer()

	if _, err := r.RenderString("bad", "{{ .Unclosed", nil); err == nil {
		t.Error("expected parse error")
	}
}

func TestCaseHelpers(t *testing.T) {
	tests := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{PascalCase, "user_name", "UserName"},
		{PascalCase, "my-app", "MyApp"},
		{CamelCase, "user_name", "userName"},
		{CamelCase, "", ""},
		{SnakeCase, "UserName", "user_name"},
		{SnakeCase, "myApp", "my_app"},
	}

	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("case(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
