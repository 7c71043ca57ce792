package pipeline

// Theme maps semantic roles to inline CSS declarations.
// A Theme is a value: stages read it and never modify it.
type Theme struct {
	Root            string `yaml:"root"` // outer document container
	Heading1        string `yaml:"heading1"`
	Heading2        string `yaml:"heading2"`
	Subheading      string `yaml:"subheading"`
	Blockquote      string `yaml:"blockquote"`
	Paragraph       string `yaml:"paragraph"`
	StrongText      string `yaml:"strongText"`
	ImageWrapper    string `yaml:"imageWrapper"`
	Image           string `yaml:"image"`
	ImageCaption    string `yaml:"imageCaption"`
	ImageError      string `yaml:"imageError"` // placeholder for unresolved image directives
	HighlightBox    string `yaml:"highlightBox"`
	TableWrapper    string `yaml:"tableWrapper"`
	Table           string `yaml:"table"`
	TableHeaderCell string `yaml:"tableHeaderCell"`
	TableBodyCell   string `yaml:"tableBodyCell"`
}

// DefaultTheme returns the classic gold palette.
func DefaultTheme() Theme {
	return Theme{
		Root:            "font-family: -apple-system, BlinkMacSystemFont, 'Helvetica Neue', 'PingFang SC', 'Microsoft YaHei', sans-serif; background: #fff; line-height: 2.0; letter-spacing: 0.5px;",
		Heading1:        "font-size: 26px; color: #222; text-align: center; margin: 40px 0; font-weight: bold; line-height: 1.4;",
		Heading2:        "font-size: 19px; color: #b48e4d; border-bottom: 2px solid #b48e4d; padding-bottom: 5px; margin: 40px 0 25px; display: inline-block;",
		Subheading:      "font-size: 17px; font-weight: bold; margin: 30px 0 15px; color: #222;",
		Blockquote:      "border-left: 4px solid #b48e4d; padding: 18px 25px; color: #666; background: #fdfaf5; margin: 30px 0; line-height: 1.8;",
		Paragraph:       "font-size: 16.5px; color: #333; line-height: 2.0; margin-bottom: 25px; text-align: justify;",
		StrongText:      "color: #b48e4d; font-weight: bold;",
		ImageWrapper:    "margin: 35px 0; text-align: center;",
		Image:           "width: 100%; border-radius: 4px; box-shadow: 0 4px 15px rgba(0,0,0,0.08);",
		ImageCaption:    "font-size: 13px; color: #888; margin-top: 10px; font-style: italic;",
		ImageError:      "color: red; text-align: center; padding: 20px;",
		HighlightBox:    "background: #007bff; color: white; padding: 15px; border-radius: 4px; font-weight: bold; margin: 25px 0; text-align: center;",
		TableWrapper:    "overflow-x: auto;",
		Table:           "width: 100%; border-collapse: collapse; margin: 25px 0; font-size: 14px;",
		TableHeaderCell: "background: #f8f8f8; font-weight: bold; color: #b48e4d; padding: 10px; border: 1px solid #eee;",
		TableBodyCell:   "padding: 10px; border: 1px solid #eee; color: #555;",
	}
}
