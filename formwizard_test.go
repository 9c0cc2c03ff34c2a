package formwizard

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
)

func TestGenerateHTML(t *testing.T) {
	c, err := NewController()
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	html, err := GenerateHTML(context.Background(), c, RenderOptions{Action: "/solicitudes/crear"}, vanilla.WithDocument("es"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, fragment := range []string{`lang="es"`, "Paso 1 de 5"} {
		if !strings.Contains(string(html), fragment) {
			t.Fatalf("expected %q in output", fragment)
		}
	}
}

func TestGenerateHTML_RequiresController(t *testing.T) {
	if _, err := GenerateHTML(context.Background(), nil, RenderOptions{}); err == nil {
		t.Fatal("expected nil controller to fail")
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{vanilla.StylesheetName, vanilla.RuntimeScriptName} {
		if _, err := fs.ReadFile(AssetsFS(), name); err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "wizard.tmpl"); err != nil {
		t.Fatalf("expected wizard template: %v", err)
	}
}
