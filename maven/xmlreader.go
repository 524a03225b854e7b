// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package maven

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	xmlpkg "github.com/michaelkedar/xml"
)

// Node is one element of a namespace-stripped XML tree. Text
// holds the element's own character data; Children holds nested elements in
// document order.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// ParseFile reads and parses the descriptor or metadata document at path.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("maven: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// ParseString parses an in-memory XML document.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads an XML document from r, strips namespaces from every element
// ("{ns}tag" becomes "tag"), and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xmlpkg.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = xmlpkg.HTMLEntity

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("maven: parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xmlpkg.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xmlpkg.EndElement:
			if len(stack) == 0 {
				continue
			}
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n.Text = strings.TrimSpace(n.Text)
			if len(stack) == 0 {
				root = n
			}
		case xmlpkg.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("maven: empty document")
	}
	return root, nil
}

// Elements returns every descendant matching path, an element-name chain
// like "dependencies/dependency" resolved relative to n, in document order.
// A segment of "*" matches any child name.
func (n *Node) Elements(path string) []*Node {
	if n == nil || path == "" {
		return nil
	}
	segs := strings.Split(path, "/")
	cur := []*Node{n}
	for _, seg := range segs {
		var next []*Node
		for _, c := range cur {
			for _, child := range c.Children {
				if seg == "*" || child.Name == seg {
					next = append(next, child)
				}
			}
		}
		cur = next
	}
	return cur
}

// Element returns the at-most-one element matching path. It returns
// (nil, nil) if there is no match, and an error if there is more than one.
func (n *Node) Element(path string) (*Node, error) {
	matches := n.Elements(path)
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("maven: %q matched %d elements, want at most 1", path, len(matches))
	}
}

// Value returns the text of the at-most-one element matching path.
func (n *Node) Value(path string) (string, bool) {
	el, err := n.Element(path)
	if err != nil || el == nil {
		return "", false
	}
	return el.Text, true
}
