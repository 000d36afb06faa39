package kit

// File and directory name constants used throughout kit.
// Centralizing these prevents typos and makes refactoring easier.
const (
	// ManifestFilename is the manifest file expected at a kit's root
	ManifestFilename = "kit.yaml"

	// SkillsDirName is the directory skills install into
	SkillsDirName = "skills"

	// CommandsDirName is the directory commands install into
	CommandsDirName = "commands"

	// AgentsDirName is the directory agents install into
	AgentsDirName = "agents"

	// HooksDirName is the directory hook scripts install into
	HooksDirName = "hooks"

	// DocsDirName is the directory docs install into
	DocsDirName = "docs"

	// SettingsFilename is the shared hook-configuration document
	SettingsFilename = "settings.json"

	// StateFilename is the installed-kit record store
	StateFilename = "installed.json"

	// LockFilename guards the settings/state pair of a scope
	LockFilename = ".lock"
)

// DirFor maps an artifact type to its directory name within a scope root.
func DirFor(t ArtifactType) string {
	switch t {
	case TypeSkill:
		return SkillsDirName
	case TypeCommand:
		return CommandsDirName
	case TypeAgent:
		return AgentsDirName
	case TypeHook:
		return HooksDirName
	case TypeDoc:
		return DocsDirName
	}
	return string(t)
}
