package pipeline

// ThemeRoles lists every role name in the order the fields are declared.
// Names match the YAML keys of theme files and config overrides.
var ThemeRoles = []string{
	"root", "heading1", "heading2", "subheading", "blockquote", "paragraph",
	"strongText", "imageWrapper", "image", "imageCaption", "imageError",
	"highlightBox", "tableWrapper", "table", "tableHeaderCell", "tableBodyCell",
}

// roleField returns a pointer to the field backing role, or nil.
func (t *Theme) roleField(role string) *string {
	switch role {
	case "root":
		return &t.Root
	case "heading1":
		return &t.Heading1
	case "heading2":
		return &t.Heading2
	case "subheading":
		return &t.Subheading
	case "blockquote":
		return &t.Blockquote
	case "paragraph":
		return &t.Paragraph
	case "strongText":
		return &t.StrongText
	case "imageWrapper":
		return &t.ImageWrapper
	case "image":
		return &t.Image
	case "imageCaption":
		return &t.ImageCaption
	case "imageError":
		return &t.ImageError
	case "highlightBox":
		return &t.HighlightBox
	case "tableWrapper":
		return &t.TableWrapper
	case "table":
		return &t.Table
	case "tableHeaderCell":
		return &t.TableHeaderCell
	case "tableBodyCell":
		return &t.TableBodyCell
	}
	return nil
}

// IsThemeRole reports whether role names a Theme field.
func IsThemeRole(role string) bool {
	return (&Theme{}).roleField(role) != nil
}

// Role returns the declarations for role and whether the role exists.
func (t Theme) Role(role string) (string, bool) {
	f := t.roleField(role)
	if f == nil {
		return "", false
	}
	return *f, true
}

// WithRole returns a copy of t with role set to css.
// The second result is false, and t is returned unchanged, for unknown roles.
func (t Theme) WithRole(role, css string) (Theme, bool) {
	f := t.roleField(role)
	if f == nil {
		return t, false
	}
	*f = css
	return t, true
}

// Merge returns a copy of t where every non-empty role of over replaces
// the corresponding role of t.
func (t Theme) Merge(over Theme) Theme {
	for _, role := range ThemeRoles {
		if css, _ := over.Role(role); css != "" {
			t, _ = t.WithRole(role, css)
		}
	}
	return t
}
