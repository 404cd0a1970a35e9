package cli

import (
	"os"
	"testing"
)

// TestValidateOutputPath tests output path validation
func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name: "relative path",
			path: "./sdk",
		},
		{
			name: "absolute path",
			path: "/tmp/sdk-output",
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:    "path traversal",
			path:    "../outside",
			wantErr: true,
		},
		{
			name:    "embedded traversal",
			path:    "sdk/../../outside",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestGetGitHubTokenPriority(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("GH_TOKEN", "from-gh-env")

	if got := getGitHubToken("from-flag"); got != "from-flag" {
		t.Errorf("getGitHubToken(flag) = %q, want flag value", got)
	}
	if got := getGitHubToken(""); got != "from-env" {
		t.Errorf("getGitHubToken() = %q, want GITHUB_TOKEN value", got)
	}

	os.Unsetenv("GITHUB_TOKEN")
	if got := getGitHubToken(""); got != "from-gh-env" {
		t.Errorf("getGitHubToken() = %q, want GH_TOKEN value", got)
	}
}
