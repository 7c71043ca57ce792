// Package assets provides style themes and HTML templates for article rendering.
// Assets can be loaded from embedded files or custom filesystem paths.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in themes (classic, jade, ink) and the
// phone-frame preview template.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found there, so a directory may override a single theme.
//
// # Directory Structure
//
//	{basePath}/
//	├── themes/
//	│   └── {name}.yaml          # role → inline CSS declarations
//	└── templates/
//	    └── {name}.html          # html/template page (e.g. preview.html)
//
// Theme files are returned as raw YAML; decoding and validation happen in the
// caller so this package stays free of rendering types.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
