package catalog

// Built-in desktop app ids
const (
	GitHubManager = "github-manager"
	CodeEditor    = "code-editor"
	FileManager   = "file-manager"
	Terminal      = "terminal"
	Collaboration = "collaboration"
	SystemMonitor = "system-monitor"
	CodeIDE       = "code-ide"
)

// DefaultEntries returns the apps shipped with the desktop shell
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:       GitHubManager,
			Title:    "GitHub Manager",
			Icon:     "git-branch",
			Kind:     "github-browser",
			Category: "Development",
		},
		{
			ID:       CodeEditor,
			Title:    "Code Editor",
			Icon:     "code",
			Kind:     "agent-workspace",
			Category: "Agents",
			Props:    map[string]interface{}{"agent_id": "code-agent", "agent_type": "coder"},
		},
		{
			ID:       FileManager,
			Title:    "Browser Agent",
			Icon:     "folder",
			Kind:     "agent-workspace",
			Category: "Agents",
			Props:    map[string]interface{}{"agent_id": "browser-agent", "agent_type": "browser"},
		},
		{
			ID:       Terminal,
			Title:    "Research Agent",
			Icon:     "terminal",
			Kind:     "agent-workspace",
			Category: "Agents",
			Props:    map[string]interface{}{"agent_id": "research-agent", "agent_type": "researcher"},
		},
		{
			ID:       Collaboration,
			Title:    "Agent Collaboration",
			Icon:     "users",
			Kind:     "agent-collaboration",
			Category: "Agents",
		},
		{
			ID:       SystemMonitor,
			Title:    "System Monitor",
			Icon:     "activity",
			Kind:     "system-monitor",
			Category: "System",
		},
		{
			ID:       CodeIDE,
			Title:    "LexOS IDE",
			Icon:     "monitor",
			Kind:     "code-ide",
			Category: "Development",
		},
	}
}

// Default returns a catalog of the built-in apps
func Default() *Catalog {
	c, err := New(DefaultEntries()...)
	if err != nil {
		panic("catalog: invalid built-in entries: " + err.Error())
	}
	return c
}
