package model

import (
	"testing"
)

func TestDefaultAppConfigMatchesDefaults(t *testing.T) {
	cfg := DefaultAppConfig()
	p := NewProject()

	if cfg.DefaultSlabWidth != p.Slab.Width || cfg.DefaultSlabHeight != p.Slab.Height {
		t.Errorf("config slab defaults %vx%v do not match NewProject", cfg.DefaultSlabWidth, cfg.DefaultSlabHeight)
	}
	if cfg.DefaultSpacing != DefaultSettings().Spacing {
		t.Errorf("config spacing default %.1f does not match DefaultSettings", cfg.DefaultSpacing)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should be initialized")
	}
}

func TestApplyToProject(t *testing.T) {
	cfg := AppConfig{DefaultSlabWidth: 300, DefaultSlabHeight: 150, DefaultSpacing: 2}
	p := NewProject()
	cfg.ApplyToProject(&p)

	if p.Slab.Width != 300 || p.Slab.Height != 150 {
		t.Errorf("slab defaults not applied: %+v", p.Slab)
	}
	if p.Settings.Spacing != 2 {
		t.Errorf("spacing default not applied: %.1f", p.Settings.Spacing)
	}

	// Zero config leaves the project untouched
	p2 := NewProject()
	AppConfig{}.ApplyToProject(&p2)
	if p2.Slab != NewProject().Slab || p2.Settings != NewProject().Settings {
		t.Error("empty config should not override project defaults")
	}
}

func TestAddRecentProject(t *testing.T) {
	var cfg AppConfig
	cfg.AddRecentProject("a.sfproj")
	cfg.AddRecentProject("b.sfproj")
	cfg.AddRecentProject("a.sfproj")

	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "a.sfproj" || cfg.RecentProjects[1] != "b.sfproj" {
		t.Errorf("unexpected order: %v", cfg.RecentProjects)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentProject(string(rune('a'+i)) + ".sfproj")
	}
	if len(cfg.RecentProjects) != maxRecentProjects {
		t.Errorf("expected list capped at %d, got %d", maxRecentProjects, len(cfg.RecentProjects))
	}
}
