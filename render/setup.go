package render

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"news-shorts-pipeline/types"
)

// rootFile is where the engine registers its compositions
const rootFile = "src/Root.tsx"

// VerifySetup runs the pre-flight checks against the render engine
// directory: the project must exist, its dependencies must be
// installed and the configured composition must be registered. A
// missing ffmpeg binary is only a warning since the engine bundles its
// own encoder.
func (s *Service) VerifySetup() types.SetupVerification {
	v := types.SetupVerification{}

	if info, err := os.Stat(s.cfg.WorkingDir); err == nil && info.IsDir() {
		v.EngineDirExists = true
	} else {
		v.Errors = append(v.Errors, fmt.Sprintf("render engine directory %s not found", s.cfg.WorkingDir))
	}

	if v.EngineDirExists {
		if _, err := os.Stat(filepath.Join(s.cfg.WorkingDir, "node_modules")); err == nil {
			v.DependenciesPresent = true
		} else {
			v.Errors = append(v.Errors, "engine dependencies not installed (run npm install in the engine directory)")
		}

		v.CompositionFound = s.compositionRegistered(s.cfg.Composition)
		if !v.CompositionFound {
			v.Errors = append(v.Errors, fmt.Sprintf("composition %q not registered in %s", s.cfg.Composition, rootFile))
		}
	}

	if _, err := exec.LookPath("ffmpeg"); err == nil {
		v.FFmpegAvailable = true
	} else {
		v.Warnings = append(v.Warnings, "ffmpeg not found on PATH; post-processing steps will be skipped")
	}

	v.IsValid = v.EngineDirExists && v.DependenciesPresent && v.CompositionFound
	return v
}

func (s *Service) compositionRegistered(id string) bool {
	data, err := os.ReadFile(filepath.Join(s.cfg.WorkingDir, rootFile))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), `"`+id+`"`)
}
