package web

import (
	"io/fs"
	"testing"
)

func TestEmbeddedTemplatesExist(t *testing.T) {
	templatesFS := GetTemplatesFS()

	requiredFiles := []string{
		"index.html",
		"game.html",
		"admin/login.html",
		"admin/layout.html",
		"admin/settings.html",
	}

	for _, file := range requiredFiles {
		_, err := fs.Stat(templatesFS, file)
		if err != nil {
			t.Errorf("required template %q not found: %v", file, err)
		}
	}
}

func TestEmbeddedStaticFilesExist(t *testing.T) {
	staticFS := GetStaticFS()

	requiredFiles := []string{
		"css/game.css",
		"css/admin.css",
		"js/index.js",
		"js/game.js",
		"js/settings.js",
	}

	for _, file := range requiredFiles {
		_, err := fs.Stat(staticFS, file)
		if err != nil {
			t.Errorf("required static file %q not found: %v", file, err)
		}
	}
}

func TestTemplatesReadable(t *testing.T) {
	templatesFS := GetTemplatesFS()

	content, err := fs.ReadFile(templatesFS, "game.html")
	if err != nil {
		t.Fatalf("failed to read game.html: %v", err)
	}
	if len(content) == 0 {
		t.Error("game.html is empty")
	}
}

func TestStaticFilesReadable(t *testing.T) {
	staticFS := GetStaticFS()

	content, err := fs.ReadFile(staticFS, "js/game.js")
	if err != nil {
		t.Fatalf("failed to read js/game.js: %v", err)
	}
	if len(content) == 0 {
		t.Error("js/game.js is empty")
	}
}
