package model

// maxRecentProjects bounds the recent-projects list in the app config.
const maxRecentProjects = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultSlabWidth  float64 `json:"default_slab_width"`
	DefaultSlabHeight float64 `json:"default_slab_height"`
	DefaultSpacing    float64 `json:"default_spacing"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible
// defaults matching the values from DefaultSettings and NewProject.
func DefaultAppConfig() AppConfig {
	p := NewProject()
	return AppConfig{
		DefaultSlabWidth:  p.Slab.Width,
		DefaultSlabHeight: p.Slab.Height,
		DefaultSpacing:    DefaultSettings().Spacing,
		RecentProjects:    []string{},
	}
}

// ApplyToProject copies the saved defaults into a project. Used when
// creating a new project so it inherits the user's preferences.
func (c AppConfig) ApplyToProject(p *Project) {
	if c.DefaultSlabWidth > 0 && c.DefaultSlabHeight > 0 {
		p.Slab = Slab{Width: c.DefaultSlabWidth, Height: c.DefaultSlabHeight}
	}
	if c.DefaultSpacing > 0 {
		p.Settings.Spacing = c.DefaultSpacing
	}
}

// AddRecentProject prepends path to the recent list, dropping any
// previous occurrence and trimming to the size limit.
func (c *AppConfig) AddRecentProject(path string) {
	recent := make([]string, 0, len(c.RecentProjects)+1)
	recent = append(recent, path)
	for _, r := range c.RecentProjects {
		if r != path {
			recent = append(recent, r)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
