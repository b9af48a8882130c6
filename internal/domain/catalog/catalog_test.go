package catalog

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryIDs(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{
		GitHubManager, CodeEditor, FileManager, Terminal,
		Collaboration, SystemMonitor, CodeIDE,
	}, entryIDs(c.List()))

	e, ok := c.Lookup(CodeIDE)
	require.True(t, ok)
	assert.Equal(t, "LexOS IDE", e.Title)

	_, ok = c.Lookup("calculator")
	assert.False(t, ok)
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{"missing id", []Entry{{Title: "No ID"}}, ErrInvalidEntry},
		{"blank id", []Entry{{ID: "  ", Title: "Blank"}}, ErrInvalidEntry},
		{"missing title", []Entry{{ID: "x"}}, ErrInvalidEntry},
		{"duplicate", []Entry{{ID: "x", Title: "X"}, {ID: "x", Title: "Y"}}, ErrDuplicateApp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNewContent(t *testing.T) {
	e, _ := Default().Lookup(CodeEditor)

	content := e.NewContent()
	panel, ok := content.(Panel)
	require.True(t, ok)
	assert.Equal(t, "agent-workspace", panel.Kind())
	assert.Equal(t, CodeEditor, panel.AppID)
	assert.Equal(t, "coder", panel.Props()["agent_type"])

	// props are cloned per window and per read
	panel.Props()["agent_type"] = "mutated"
	assert.Equal(t, "coder", panel.Props()["agent_type"])
	again, _ := Default().Lookup(CodeEditor)
	assert.Equal(t, "coder", again.Props["agent_type"])
	assert.Equal(t, "coder", e.Props["agent_type"])
}

func TestPanelPropsAreDeepCopies(t *testing.T) {
	source := map[string]interface{}{
		"layout": map[string]interface{}{"split": "vertical"},
		"tabs":   []interface{}{"main.go", map[string]interface{}{"pinned": true}},
	}
	p := NewPanel("code-editor", "editor", source)

	// mutating the source after construction has no effect
	source["layout"].(map[string]interface{})["split"] = "horizontal"

	got := p.Props()
	assert.Equal(t, "vertical", got["layout"].(map[string]interface{})["split"])

	// nor does mutating a returned copy
	got["layout"].(map[string]interface{})["split"] = "grid"
	got["tabs"].([]interface{})[1].(map[string]interface{})["pinned"] = false
	again := p.Props()
	assert.Equal(t, "vertical", again["layout"].(map[string]interface{})["split"])
	assert.Equal(t, true, again["tabs"].([]interface{})[1].(map[string]interface{})["pinned"])

	assert.Nil(t, NewPanel("x", "x", nil).Props())
}

func TestLookupReturnsCopies(t *testing.T) {
	c := Default()

	e, _ := c.Lookup(CodeEditor)
	e.Props["agent_type"] = "mutated"
	c.List()[1].Props["agent_type"] = "mutated"

	again, _ := c.Lookup(CodeEditor)
	assert.Equal(t, "coder", again.Props["agent_type"])
}

func TestPanelJSON(t *testing.T) {
	p := NewPanel("notes", "notes", map[string]interface{}{"autosave": true})

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"app_id":"notes","kind":"notes","props":{"autosave":true}}`, string(data))

	data, err = json.Marshal(NewPanel("calculator", "calculator", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"app_id":"calculator","kind":"calculator"}`, string(data))
}

func TestNewContentDefaultsKindToID(t *testing.T) {
	c, err := New(Entry{ID: "calculator", Title: "Calculator"})
	require.NoError(t, err)

	e, _ := c.Lookup("calculator")
	assert.Equal(t, "calculator", e.NewContent().Kind())
	assert.Equal(t, "General", e.Category)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{AllCategories, "Development", "Agents", "System"}, Default().Categories())
}

func TestFilter(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"everything", "", "", entryIDs(c.List())},
		{"all category", "", AllCategories, entryIDs(c.List())},
		{"case insensitive query", "AGENT", "", []string{FileManager, Terminal, Collaboration}},
		{"category only", "", "Development", []string{GitHubManager, CodeIDE}},
		{"query and category", "code", "Agents", []string{CodeEditor}},
		{"no match", "spreadsheet", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entryIDs(c.Filter(tt.query, tt.category)))
		})
	}
}

func TestSearch(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query", "", entryIDs(c.List())},
		{"title", "monitor", []string{SystemMonitor}},
		{"id only", "file", []string{FileManager}},
		{"category", "agents", []string{CodeEditor, FileManager, Terminal, Collaboration}},
		{"case insensitive across fields", "CODE", []string{CodeEditor, CodeIDE}},
		{"no match", "spreadsheet", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entryIDs(c.Search(tt.query)))
		})
	}

	// the launcher filter matches titles only
	assert.Empty(t, c.Filter("file", ""))
	assert.Equal(t, []string{CodeEditor}, entryIDs(c.Filter("CODE", "")))
}

func TestWithKeepsOriginal(t *testing.T) {
	base := Default()

	extended, err := base.With(Entry{ID: "calculator", Title: "Calculator", Category: "Tools"})
	require.NoError(t, err)

	assert.Equal(t, base.Len()+1, extended.Len())
	_, ok := base.Lookup("calculator")
	assert.False(t, ok)

	_, err = base.With(Entry{ID: SystemMonitor, Title: "Dup"})
	assert.True(t, errors.Is(err, ErrDuplicateApp))
}

func TestDiscover(t *testing.T) {
	paths, err := Discover(filepath.Join("testdata", "apps", "**", "*"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("testdata", "apps", "media", "gallery.toml"),
		filepath.Join("testdata", "apps", "tools.yaml"),
	}, paths)

	paths, err = Discover("")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestLoadFile(t *testing.T) {
	entries, err := LoadFile(filepath.Join("testdata", "apps", "tools.yaml"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "calculator", entries[0].ID)
	assert.Equal(t, "Tools", entries[0].Category)
	assert.Equal(t, true, entries[1].Props["autosave"])

	entries, err = LoadFile(filepath.Join("testdata", "apps", "media", "gallery.toml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"gallery", "music"}, entryIDs(entries))
	assert.Equal(t, false, entries[1].Props["shuffle"])
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "untitled.yaml"))
	assert.True(t, errors.Is(err, ErrInvalidEntry))

	_, err = LoadFile(filepath.Join("testdata", "malformed.toml"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join("testdata", "apps", "README.txt"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	c, err := Build(filepath.Join("testdata", "apps", "**", "*.{yaml,toml}"))
	require.NoError(t, err)

	assert.Equal(t, Default().Len()+4, c.Len())
	assert.Contains(t, c.Categories(), "Media")

	_, err = Build(filepath.Join("testdata", "duplicate.yaml"))
	assert.True(t, errors.Is(err, ErrDuplicateApp))

	c, err = Build("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), c.Len())
}

func TestLoad(t *testing.T) {
	tools := filepath.Join("testdata", "apps", "tools.yaml")
	gallery := filepath.Join("testdata", "apps", "media", "gallery.toml")

	c, err := Default().Load(tools, gallery)
	require.NoError(t, err)
	assert.Equal(t, Default().Len()+4, c.Len())

	ids := entryIDs(c.List())
	assert.Equal(t, []string{"calculator"}, ids[Default().Len():Default().Len()+1])
	assert.Equal(t, "music", ids[len(ids)-1])

	c, err = Default().Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), c.Len())

	_, err = Default().Load(tools, tools)
	assert.True(t, errors.Is(err, ErrDuplicateApp))

	_, err = Default().Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}
