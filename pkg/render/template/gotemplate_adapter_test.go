package template_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte(`Hola {{ name }}`)},
		"use-global.tmpl": {Data: []byte(`{{ settings.env }}`)},
		"progress.tmpl":   {Data: []byte(`width: {{ value|percent }}`)},
		"escape.tmpl":     {Data: []byte(`{{ text }}`)},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesOutput(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ana"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hola Ana" || buf.String() != result {
		t.Fatalf("unexpected output %q / %q", result, buf.String())
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.RenderTemplate("use-global.tmpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_PercentFilter(t *testing.T) {
	engine := newEngine(t)

	for value, want := range map[float64]string{0: "width: 0%", 25: "width: 25%", 100: "width: 100%", 33.3333: "width: 33.33%"} {
		got, err := engine.RenderTemplate("progress", map[string]any{"value": value})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if got != want {
			t.Fatalf("percent %v: want %q, got %q", value, want, got)
		}
	}
}

func TestEngine_AutoescapesValues(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("escape", map[string]any{"text": `<b>"x"</b>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_test", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout_test", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatal("expected duplicate filter registration to fail")
	}

	got, err := engine.RenderString(`{{ name|shout_test }}`, map[string]any{"name": "luis"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "LUIS!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RejectsNonMapData(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("hello", struct{ Name string }{"Ana"}); err == nil {
		t.Fatal("expected struct data to be rejected")
	}
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected missing template source to fail")
	}
}
