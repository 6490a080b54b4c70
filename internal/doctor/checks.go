package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AstroAir/create-cpp-project-sub000/internal/backup"
	"github.com/AstroAir/create-cpp-project-sub000/internal/config"
	"github.com/AstroAir/create-cpp-project-sub000/internal/git"
	"github.com/AstroAir/create-cpp-project-sub000/internal/profile"
)

// ConfigRootCheck verifies the config root exists and is writable.
type ConfigRootCheck struct {
	Root string
}

func (c *ConfigRootCheck) Name() string     { return "config-root" }
func (c *ConfigRootCheck) Category() string { return "storage" }

func (c *ConfigRootCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := os.Stat(c.Root)
	if os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("%s does not exist yet; it is created on first write", c.Root)
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat %s: %v", c.Root, err)
		return result
	}
	if !info.IsDir() {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s is not a directory", c.Root)
		result.FixHint = "move the file aside and re-run"
		return result
	}

	probe := filepath.Join(c.Root, ".doctor-probe")
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s is not writable: %v", c.Root, err)
		result.FixHint = "check the directory ownership and permissions"
		return result
	}
	os.Remove(probe)

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s is writable", c.Root)
	return result
}

// DocumentCheck verifies one persisted scope document parses and reports its
// schema version.
type DocumentCheck struct {
	Label string
	Path  string
}

func (c *DocumentCheck) Name() string     { return "document-" + c.Label }
func (c *DocumentCheck) Category() string { return "storage" }

func (c *DocumentCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("%s document not present", c.Label)
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot read %s: %v", c.Path, err)
		return result
	}

	version := config.DetectSchemaVersion(data)
	if version > config.CurrentSchemaVersion {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s document is schema v%d, this build understands up to v%d",
			c.Label, version, config.CurrentSchemaVersion)
		result.FixHint = "upgrade cpp-scaffold or restore a backup"
		return result
	}
	if version < config.CurrentSchemaVersion {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%s document is schema v%d; it migrates on next load", c.Label, version)
		return result
	}

	if _, err := config.ParseDocument(data); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s document does not parse: %v", c.Label, err)
		result.FixHint = "restore a backup with 'cpp-scaffold config backups'"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s document parses at schema v%d", c.Label, version)
	return result
}

// ProfilesCheck verifies every saved profile loads.
type ProfilesCheck struct {
	Manager *profile.Manager
}

func (c *ProfilesCheck) Name() string     { return "profiles" }
func (c *ProfilesCheck) Category() string { return "profiles" }

func (c *ProfilesCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	names, err := c.Manager.List()
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot list profiles: %v", err)
		return result
	}
	if len(names) == 0 {
		result.Status = SeverityInfo
		result.Message = "no profiles saved"
		return result
	}

	var broken []string
	for _, name := range names {
		if _, err := c.Manager.Load(name); err != nil {
			broken = append(broken, name)
		}
	}
	if len(broken) > 0 {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d of %d profiles do not load: %v", len(broken), len(names), broken)
		result.FixHint = "delete or re-save the broken profiles"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d profile(s) load cleanly", len(names))
	return result
}

// BackupsCheck warns when the backup area has grown past the retention count.
type BackupsCheck struct {
	Manager *backup.Manager
}

func (c *BackupsCheck) Name() string     { return "backups" }
func (c *BackupsCheck) Category() string { return "storage" }

func (c *BackupsCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	infos, err := c.Manager.List()
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot list backups: %v", err)
		return result
	}
	if len(infos) > backup.DefaultRetentionCount {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d backups on disk", len(infos))
		result.FixHint = "run 'cpp-scaffold config backups --prune'"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d backup(s) on disk", len(infos))
	return result
}

// GitCheck reports whether git is available for project initialization.
type GitCheck struct{}

func (c *GitCheck) Name() string     { return "git" }
func (c *GitCheck) Category() string { return "tools" }

func (c *GitCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if !git.Available() {
		result.Status = SeverityInfo
		result.Message = "git is not on PATH; generated projects are not initialized"
		result.FixHint = "install git to enable repository initialization"
		return result
	}

	result.Status = SeverityPass
	result.Message = "git is available"
	return result
}
