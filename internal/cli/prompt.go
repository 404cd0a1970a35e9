package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// confirmRemoveOutputDir asks whether a pre-existing output directory may
// be removed. Downloads refuse to write into an existing directory, so
// without consent the fetch is aborted.
func confirmRemoveOutputDir(path string) (bool, error) {
	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Output directory %s already exists. Remove it?", path),
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}
