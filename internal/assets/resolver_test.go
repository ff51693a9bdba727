package assets

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestNewStyleResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewStyleResolver("")
		if err != nil {
			t.Fatalf("NewStyleResolver(\"\") error = %v", err)
		}
		if resolver == nil {
			t.Fatal("NewStyleResolver() returned nil")
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()

		resolver, err := NewStyleResolver(tmpDir)
		if err != nil {
			t.Fatalf("NewStyleResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewStyleResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewStyleResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestStyleResolver_LoadStyle_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewStyleResolver("")
	if err != nil {
		t.Fatalf("NewStyleResolver() error = %v", err)
	}

	t.Run("loads embedded style", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("default")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got == "" {
			t.Error("LoadStyle() returned empty content")
		}
	})

	t.Run("returns error for nonexistent", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("nonexistent-xyz")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestStyleResolver_LoadStyle_CustomWithFallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	stylesDir := filepath.Join(tmpDir, "styles")
	if err := os.MkdirAll(stylesDir, 0755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}

	// Create a custom style
	customCSS := "/* custom style */"
	if err := os.WriteFile(filepath.Join(stylesDir, "mystyle.css"), []byte(customCSS), 0644); err != nil {
		t.Fatalf("failed to write CSS file: %v", err)
	}

	resolver, err := NewStyleResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewStyleResolver() error = %v", err)
	}

	t.Run("loads custom style when available", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("mystyle")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != customCSS {
			t.Errorf("LoadStyle() = %q, want %q", got, customCSS)
		}
	})

	t.Run("falls back to embedded when custom not found", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("default")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got == "" {
			t.Error("LoadStyle() returned empty content from fallback")
		}
	})

	t.Run("returns error when neither has style", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("nonexistent-xyz")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestStyleResolver_LoadStyle_CustomOverridesEmbedded(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	stylesDir := filepath.Join(tmpDir, "styles")
	if err := os.MkdirAll(stylesDir, 0755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}

	// Create a custom style with the same name as an embedded one
	customCSS := "/* CUSTOM OVERRIDE of default */"
	if err := os.WriteFile(filepath.Join(stylesDir, "default.css"), []byte(customCSS), 0644); err != nil {
		t.Fatalf("failed to write CSS file: %v", err)
	}

	resolver, err := NewStyleResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewStyleResolver() error = %v", err)
	}

	got, err := resolver.LoadStyle("default")
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if got != customCSS {
		t.Errorf("LoadStyle() = %q, want custom override %q", got, customCSS)
	}
}

func TestStyleResolver_ListStyles(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewStyleResolver("")
		if err != nil {
			t.Fatalf("NewStyleResolver() error = %v", err)
		}

		got, err := resolver.ListStyles()
		if err != nil {
			t.Fatalf("ListStyles() error = %v", err)
		}
		if !slices.Contains(got, "default") {
			t.Errorf("ListStyles() = %v, should contain \"default\"", got)
		}
	})

	t.Run("merges custom and embedded without duplicates", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		stylesDir := filepath.Join(tmpDir, "styles")
		if err := os.MkdirAll(stylesDir, 0755); err != nil {
			t.Fatalf("failed to create styles dir: %v", err)
		}

		// One new style and one that shadows an embedded name
		for _, name := range []string{"mystyle.css", "default.css"} {
			if err := os.WriteFile(filepath.Join(stylesDir, name), []byte("x"), 0644); err != nil {
				t.Fatalf("failed to write CSS file: %v", err)
			}
		}

		resolver, err := NewStyleResolver(tmpDir)
		if err != nil {
			t.Fatalf("NewStyleResolver() error = %v", err)
		}

		got, err := resolver.ListStyles()
		if err != nil {
			t.Fatalf("ListStyles() error = %v", err)
		}

		if !slices.Contains(got, "mystyle") {
			t.Errorf("ListStyles() = %v, should contain custom \"mystyle\"", got)
		}
		if !slices.IsSorted(got) {
			t.Errorf("ListStyles() = %v, want sorted order", got)
		}

		count := 0
		for _, name := range got {
			if name == "default" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("ListStyles() = %v, want \"default\" exactly once, got %d", got, count)
		}
	})
}

func TestStyleResolver_ValidationErrorsNotFallenBack(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	resolver, err := NewStyleResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewStyleResolver() error = %v", err)
	}

	_, err = resolver.LoadStyle("../secret")
	if !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName (no fallback)", err)
	}
}

func TestStyleResolver_HasCustomLoader(t *testing.T) {
	t.Parallel()

	t.Run("false when no custom path", func(t *testing.T) {
		t.Parallel()

		resolver, _ := NewStyleResolver("")
		if resolver.HasCustomLoader() {
			t.Error("HasCustomLoader() = true, want false")
		}
	})

	t.Run("true when custom path set", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		resolver, _ := NewStyleResolver(tmpDir)
		if !resolver.HasCustomLoader() {
			t.Error("HasCustomLoader() = false, want true")
		}
	})
}

func TestStyleResolver_ImplementsStyleLoader(t *testing.T) {
	t.Parallel()

	var _ StyleLoader = (*StyleResolver)(nil)
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ErrStyleNotFound", ErrStyleNotFound, true},
		{"wrapped ErrStyleNotFound", errors.New("wrap: " + ErrStyleNotFound.Error()), false},
		{"ErrInvalidAssetName", ErrInvalidAssetName, false},
		{"ErrAssetRead", ErrAssetRead, false},
		{"generic error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := isNotFoundError(tt.err)
			if got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
