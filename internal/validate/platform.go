package validate

import (
	"fmt"
	"runtime"

	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
)

const platformCategory = "platform"

// checkPlatform flags choices known to be awkward on the host platform.
// Findings here are advisory: Warning or Info, never blocking, because the
// generated project may well be built somewhere else.
func checkPlatform(goos string, opts settings.Options, r *Result) {
	if goos == "" {
		goos = runtime.GOOS
	}

	switch goos {
	case "windows":
		if opts.BuildSystem == settings.BuildMake {
			r.Add(Message{
				Severity:   SeverityWarning,
				Category:   platformCategory,
				Component:  "buildSystem",
				Message:    "plain make has no native Windows toolchain; builds need MSYS2 or WSL",
				Suggestion: "cmake or xmake generate Visual Studio projects directly",
			})
		}
		if opts.PackageManager == settings.PackageSpack {
			r.Add(Message{
				Severity:  SeverityWarning,
				Category:  platformCategory,
				Component: "packageManager",
				Message:   "spack does not support Windows hosts",
			})
		}
	case "darwin", "linux":
		for _, ed := range opts.Editors {
			if ed == settings.EditorVS {
				r.Add(Message{
					Severity:  SeverityInfo,
					Category:  platformCategory,
					Component: "editors",
					Message:   fmt.Sprintf("Visual Studio integration is Windows-only and will be inert on %s", goos),
				})
			}
		}
	}

	if goos != "windows" {
		for _, ci := range opts.CiSystems {
			if ci == settings.CiAppVeyor {
				r.Add(Message{
					Severity:  SeverityInfo,
					Category:  platformCategory,
					Component: "ciSystems",
					Message:   "appveyor pipelines default to Windows images; verify the generated matrix",
				})
			}
		}
	}
}
