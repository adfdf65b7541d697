package phrases

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Tree maps category → sub-category → phrases, keeping first-seen order at
// both levels.
type Tree struct {
	Categories []*Category

	byName map[string]*Category
}

// Category is one top-level group of the tree.
type Category struct {
	Name          string
	Subcategories []*Subcategory

	byName map[string]*Subcategory
}

// Subcategory holds phrases in source row order.
type Subcategory struct {
	Name    string
	Phrases []Record
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{byName: make(map[string]*Category)}
}

// BuildTree indexes every valid row of grid under each (category,
// sub-category) pair of its cross product.
func BuildTree(grid [][]string) *Tree {
	t := NewTree()
	validRows(grid, func(idx int, row []string) {
		rec := recordFromRow(idx, row)
		cats := splitKeys(row[ColWorkType], UncategorizedKey)
		subs := splitKeys(row[ColTheme], UnsubcategorizedKey)
		for _, cat := range cats {
			for _, sub := range subs {
				t.Add(cat, sub, rec)
			}
		}
	})
	return t
}

// Add appends rec under (category, subcategory), creating either level on
// first use.
func (t *Tree) Add(category, subcategory string, rec Record) {
	if t.byName == nil {
		t.byName = make(map[string]*Category)
	}
	c, ok := t.byName[category]
	if !ok {
		c = &Category{Name: category, byName: make(map[string]*Subcategory)}
		t.byName[category] = c
		t.Categories = append(t.Categories, c)
	}
	s, ok := c.byName[subcategory]
	if !ok {
		s = &Subcategory{Name: subcategory}
		c.byName[subcategory] = s
		c.Subcategories = append(c.Subcategories, s)
	}
	s.Phrases = append(s.Phrases, rec)
}

// Category looks up a category by key. It returns nil when absent.
func (t *Tree) Category(name string) *Category {
	if t == nil {
		return nil
	}
	return t.byName[name]
}

// Subcategory looks up a sub-category by key. It returns nil when absent.
func (c *Category) Subcategory(name string) *Subcategory {
	if c == nil {
		return nil
	}
	return c.byName[name]
}

// Phrases returns the sequence at (category, subcategory), or nil.
func (t *Tree) Phrases(category, subcategory string) []Record {
	s := t.Category(category).Subcategory(subcategory)
	if s == nil {
		return nil
	}
	return s.Phrases
}

// Len counts tree entries, so a row fanned out to four pairs counts four times.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, c := range t.Categories {
		for _, s := range c.Subcategories {
			n += len(s.Phrases)
		}
	}
	return n
}

// MarshalJSON encodes the tree as nested objects in key order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range t.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, c.Name); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, s := range c.Subcategories {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONKey(&buf, s.Name); err != nil {
				return nil, err
			}
			list, err := json.Marshal(s.Phrases)
			if err != nil {
				return nil, err
			}
			buf.Write(list)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}

// MarshalYAML encodes the tree as nested mappings in key order.
func (t *Tree) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range t.Categories {
		subs := &yaml.Node{Kind: yaml.MappingNode}
		for _, s := range c.Subcategories {
			list := &yaml.Node{}
			if err := list.Encode(s.Phrases); err != nil {
				return nil, err
			}
			subs.Content = append(subs.Content, yamlKey(s.Name), list)
		}
		root.Content = append(root.Content, yamlKey(c.Name), subs)
	}
	return root, nil
}

func yamlKey(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
