package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AddService appends a service entry to the config file at configPath.
// It edits the YAML node tree directly so existing structure and comments
// are preserved. Returns an error if a service with the same id already
// exists.
func AddService(configPath string, svc Service) error {
	root, err := readConfigNode(configPath)
	if err != nil {
		return err
	}
	docNode := root.Content[0]

	servicesNode := findMapValue(docNode, "services")
	if servicesNode == nil {
		// First service: create the sequence
		servicesNode = &yaml.Node{
			Kind:    yaml.SequenceNode,
			Tag:     "!!seq",
			Content: []*yaml.Node{},
		}
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: "services",
		}
		docNode.Content = append(docNode.Content, keyNode, servicesNode)
	}

	for _, entry := range servicesNode.Content {
		if id := findMapValue(entry, "id"); id != nil && id.Value == svc.ID {
			return fmt.Errorf("service '%s' is already configured", svc.ID)
		}
	}

	servicesNode.Content = append(servicesNode.Content, serviceNode(svc))

	return writeConfigNode(configPath, root)
}

// RemoveService deletes the service entry with the given id from the config
// file at configPath.
func RemoveService(configPath, serviceID string) error {
	root, err := readConfigNode(configPath)
	if err != nil {
		return err
	}
	docNode := root.Content[0]

	servicesNode := findMapValue(docNode, "services")
	if servicesNode == nil {
		return fmt.Errorf("service '%s' not found in config", serviceID)
	}

	index := -1
	for i, entry := range servicesNode.Content {
		if id := findMapValue(entry, "id"); id != nil && id.Value == serviceID {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("service '%s' not found in config", serviceID)
	}

	servicesNode.Content = append(servicesNode.Content[:index], servicesNode.Content[index+1:]...)

	return writeConfigNode(configPath, root)
}

// serviceNode builds the YAML mapping node for a single service entry.
func serviceNode(svc Service) *yaml.Node {
	node := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	appendScalar := func(key, value, tag string) {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value},
		)
	}

	appendScalar("id", svc.ID, "!!str")
	appendScalar("name", svc.Name, "!!str")

	aliasSeq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, alias := range svc.Aliases {
		aliasSeq.Content = append(aliasSeq.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: alias})
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "aliases"},
		aliasSeq,
	)

	priority := svc.Priority
	if priority == 0 {
		priority = DefaultPriority
	}
	appendScalar("priority", strconv.Itoa(priority), "!!int")

	return node
}

// readConfigNode parses the config file as a yaml.Node tree.
func readConfigNode(configPath string) (*yaml.Node, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("invalid YAML document structure")
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at document root")
	}

	return &root, nil
}

// writeConfigNode serializes the node tree back to the config file.
func writeConfigNode(configPath string, root *yaml.Node) error {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}
