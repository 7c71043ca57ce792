package md2wechat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-md2wechat/internal/assets"
	"github.com/alnah/go-md2wechat/internal/pipeline"
	"github.com/alnah/go-md2wechat/internal/yamlutil"
)

// Theme maps semantic roles (heading1, paragraph, tableHeaderCell, ...)
// to inline CSS declarations.
type Theme = pipeline.Theme

// DefaultThemeName is the built-in theme used when none is selected.
const DefaultThemeName = assets.DefaultThemeName

// DefaultTheme returns the built-in classic theme.
func DefaultTheme() Theme {
	return pipeline.DefaultTheme()
}

// ThemeRoles returns every role name a theme can set.
func ThemeRoles() []string {
	return append([]string(nil), pipeline.ThemeRoles...)
}

// ThemeNames returns the built-in theme names, sorted.
func ThemeNames() []string {
	return assets.ThemeNames()
}

// themeFile is the YAML layout of a theme asset.
type themeFile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Styles      map[string]string `yaml:"styles"`
}

// ParseTheme decodes a theme file. Roles the file omits keep their
// DefaultTheme value.
func ParseTheme(data []byte) (Theme, error) {
	var f themeFile
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	return ApplyThemeOverrides(DefaultTheme(), f.Styles)
}

// ApplyThemeOverrides returns a copy of t with each role in overrides
// replaced. Unknown roles and unsafe declarations are rejected.
func ApplyThemeOverrides(t Theme, overrides map[string]string) (Theme, error) {
	roles := make([]string, 0, len(overrides))
	for role := range overrides {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		css := strings.TrimSpace(overrides[role])
		if err := validateDeclarations(role, css); err != nil {
			return Theme{}, err
		}
		var ok bool
		if t, ok = t.WithRole(role, css); !ok {
			return Theme{}, fmt.Errorf("%w: %q (known roles: %s)", ErrUnknownRole, role, strings.Join(pipeline.ThemeRoles, ", "))
		}
	}
	return t, nil
}

// ValidateTheme checks every role of t.
func ValidateTheme(t Theme) error {
	for _, role := range pipeline.ThemeRoles {
		css, _ := t.Role(role)
		if err := validateDeclarations(role, css); err != nil {
			return err
		}
	}
	return nil
}

// validateDeclarations rejects characters that would end the style
// attribute or break table row splitting.
func validateDeclarations(role, css string) error {
	if i := strings.IndexAny(css, "\"<>|"); i >= 0 {
		return fmt.Errorf("%w: role %q contains %q", ErrInvalidTheme, role, css[i])
	}
	return nil
}

// loadTheme reads and parses a named theme through loader.
func loadTheme(loader assets.AssetLoader, name string) (Theme, error) {
	data, err := loader.LoadTheme(name)
	if err != nil {
		return Theme{}, convertAssetError(err)
	}
	t, err := ParseTheme(data)
	if err != nil {
		return Theme{}, fmt.Errorf("theme %q: %w", name, err)
	}
	return t, nil
}

// LoadTheme loads a built-in theme, or a custom one from
// <basePath>/themes/<name>.yaml when basePath is set.
func LoadTheme(name, basePath string) (Theme, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return Theme{}, convertAssetError(err)
	}
	return loadTheme(resolver, name)
}
