// Package sitecfg resolves the flat settings key-value map into a structured,
// defaulted site configuration so callers never branch on key presence.
package sitecfg

import (
	"github.com/webfolio/webfolio/internal/db/models"
)

// General holds the general site settings group.
type General struct {
	SiteName          string `json:"siteName"`
	SiteURL           string `json:"siteUrl"`
	ContactEmail      string `json:"contactEmail"`
	EnableBlog        bool   `json:"enableBlog"`
	EnableComments    bool   `json:"enableComments"`
	EnableContactForm bool   `json:"enableContactForm"`
}

// SEO holds the search-engine and social metadata group.
type SEO struct {
	SiteTitle         string `json:"siteTitle"`
	SiteDescription   string `json:"siteDescription"`
	OGImage           string `json:"ogImage"`
	TwitterHandle     string `json:"twitterHandle"`
	GoogleAnalyticsID string `json:"googleAnalyticsId"`
}

// Theme holds the visual appearance group.
type Theme struct {
	DefaultTheme     string `json:"defaultTheme"`
	AllowThemeToggle bool   `json:"allowThemeToggle"`
	PrimaryColor     string `json:"primaryColor"`
	AccentColor      string `json:"accentColor"`
	FontFamily       string `json:"fontFamily"`
}

// Settings is the fully resolved site configuration.
type Settings struct {
	General General `json:"general"`
	SEO     SEO     `json:"seo"`
	Theme   Theme   `json:"theme"`
}

// Resolve maps the raw key-value settings onto the structured configuration,
// substituting a hardcoded default for every absent or wrong-typed key.
// Resolution is pure and total; it never fails.
func Resolve(raw map[string]models.Value) Settings {
	return Settings{
		General: General{
			SiteName:          str(raw, "general.siteName", ""),
			SiteURL:           str(raw, "general.siteUrl", ""),
			ContactEmail:      str(raw, "general.contactEmail", ""),
			EnableBlog:        boolean(raw, "general.enableBlog", true),
			EnableComments:    boolean(raw, "general.enableComments", true),
			EnableContactForm: boolean(raw, "general.enableContactForm", true),
		},
		SEO: SEO{
			SiteTitle:         str(raw, "seo.siteTitle", ""),
			SiteDescription:   str(raw, "seo.siteDescription", ""),
			OGImage:           str(raw, "seo.ogImage", ""),
			TwitterHandle:     str(raw, "seo.twitterHandle", ""),
			GoogleAnalyticsID: str(raw, "seo.googleAnalyticsId", ""),
		},
		Theme: Theme{
			DefaultTheme:     str(raw, "theme.defaultTheme", "system"),
			AllowThemeToggle: boolean(raw, "theme.allowThemeToggle", true),
			PrimaryColor:     str(raw, "theme.primaryColor", "#000000"),
			AccentColor:      str(raw, "theme.accentColor", "#0070f3"),
			FontFamily:       str(raw, "theme.fontFamily", "Inter"),
		},
	}
}

func str(raw map[string]models.Value, key, def string) string {
	v, ok := raw[key]
	if !ok || v.Kind != models.KindString {
		return def
	}

	return v.Str
}

func boolean(raw map[string]models.Value, key string, def bool) bool {
	v, ok := raw[key]
	if !ok || v.Kind != models.KindBool {
		return def
	}

	return v.Bool
}
