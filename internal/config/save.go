package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// SaveTheme replaces the theme section of the config file. Comments and
// formatting in other sections are kept by editing the yaml.Node tree.
func SaveTheme(configPath string, theme ThemeConfig) error {
	return saveSection(configPath, "theme", buildThemeNode(theme))
}

// SavePopups replaces the popups section of the config file.
func SavePopups(configPath string, p PopupsConfig) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content,
		scalar("position"), scalar(p.Position),
		scalar("min_width"), intScalar(p.MinWidth),
		scalar("dismiss_on_escape"), boolScalar(p.DismissOnEscape),
		scalar("light_dismiss"), boolScalar(p.LightDismiss),
	)
	return saveSection(configPath, "popups", node)
}

func saveSection(configPath, key string, section *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	root := doc.Content[0]
	found := false
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1] = section
			found = true
			break
		}
	}
	if !found {
		root.Content = append(root.Content, scalar(key), section)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".poptart.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func buildThemeNode(theme ThemeConfig) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if theme.Preset != "" {
		node.Content = append(node.Content, scalar("preset"), scalar(theme.Preset))
	}

	colors := theme.FlattenedColors()
	if len(colors) == 0 {
		return node
	}
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	colorsNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		colorsNode.Content = append(colorsNode.Content,
			scalar(k),
			&yaml.Node{Kind: yaml.ScalarNode, Value: colors[k], Style: yaml.DoubleQuotedStyle},
		)
	}
	node.Content = append(node.Content, scalar("colors"), colorsNode)
	return node
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func intScalar(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)}
}

func boolScalar(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(v)}
}
