package internal

import (
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if got := cfg.Marker.Marker().Token(); got != "#->" {
		t.Errorf("token = %q, want #->", got)
	}
}

func TestMarkerConfig_EmptyArrow(t *testing.T) {
	cfg := MarkerConfig{Comment: "//", Arrow: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty arrow should fail validation")
	}
}

func TestStagingConfig_InvalidMode(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Staging.Mode = "overwrite"
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestStagingConfig_InPlaceRejected(t *testing.T) {
	cfg := StagingConfig{Mode: "in-place", DebugSuffix: ".gitcommit"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("in-place must not be configurable as a run mode")
	}
}

func TestTemplateConfig_BodyWidth(t *testing.T) {
	cfg := TemplateConfig{BodyWidth: 5}
	if err := cfg.Validate(); err == nil {
		t.Fatal("tiny body width should fail validation")
	}
	cfg.BodyWidth = 72
	if err := cfg.Validate(); err != nil {
		t.Fatalf("width 72 should pass: %v", err)
	}
}

func TestFullConfig_RepositoryValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Repository.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch repository error")
	}
}
