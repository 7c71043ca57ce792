package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple name", input: "classic"},
		{name: "name with hyphen", input: "my-theme"},
		{name: "name with underscore", input: "my_theme"},
		{name: "name with numbers", input: "theme2"},
		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "a/b", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: `a\b`, wantErr: ErrInvalidAssetName},
		{name: "dot dot", input: "..", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "classic.yaml", wantErr: ErrInvalidAssetName},
		{name: "space", input: "my theme", wantErr: ErrInvalidAssetName},
		{name: "control character", input: "a\x00b", wantErr: ErrInvalidAssetName},
		{name: "too long", input: strings.Repeat("a", maxAssetNameLength+1), wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) error = %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
