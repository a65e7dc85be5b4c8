package recast

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/beevik/etree"
	"github.com/gabriel-vasile/mimetype"
	"gopkg.in/yaml.v3"
)

// JSONSource decodes a JSON payload into a source document for MapAccessor.
func JSONSource(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("json source: %w", err)
	}
	return v, nil
}

// YAMLSource decodes a YAML payload into a source document for MapAccessor.
func YAMLSource(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml source: %w", err)
	}
	return v, nil
}

// TOMLSource decodes a TOML payload into a source document for MapAccessor.
func TOMLSource(data []byte) (any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("toml source: %w", err)
	}
	return m, nil
}

// XMLSource parses an XML payload into a document for XMLAccessor.
func XMLSource(data []byte) (any, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xml source: %w", err)
	}
	return doc, nil
}

// DetectSource sniffs the payload format and returns a ready source/accessor
// pair. JSON and XML are detected by content type; TOML and YAML are told
// apart by parsing, TOML first since YAML accepts nearly anything.
func DetectSource(data []byte) (any, Accessor, error) {
	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("application/json"):
		src, err := JSONSource(data)
		return src, MapAccessor{}, err
	case mtype.Is("text/xml") || mtype.Is("application/xml"):
		src, err := XMLSource(data)
		return src, XMLAccessor{}, err
	}

	if src, err := TOMLSource(data); err == nil {
		return src, MapAccessor{}, nil
	}
	if src, err := YAMLSource(data); err == nil {
		if _, ok := src.(map[string]any); ok {
			return src, MapAccessor{}, nil
		}
	}
	return nil, nil, fmt.Errorf("%w (%s)", ErrUnknownFormat, mtype.String())
}

// xmlNode is the etree surface the accessor needs; both *etree.Document and
// *etree.Element satisfy it, so nested recursion works on plain elements.
type xmlNode interface {
	FindElement(path string) *etree.Element
	FindElements(path string) []*etree.Element
}

// XMLAccessor extracts values from etree documents. Paths use etree's
// XPath-like syntax relative to the current node; a leading "@" reads an
// attribute of the current element instead.
type XMLAccessor struct{}

func (XMLAccessor) Field(src any, path string) any {
	if attr, ok := strings.CutPrefix(path, "@"); ok {
		el, isEl := src.(*etree.Element)
		if !isEl {
			return nil
		}
		if a := el.SelectAttr(attr); a != nil {
			return a.Value
		}
		return nil
	}
	node, ok := src.(xmlNode)
	if !ok {
		return nil
	}
	el := node.FindElement(path)
	if el == nil {
		return nil
	}
	return el.Text()
}

func (XMLAccessor) ListOf(src any, path string) any {
	node, ok := src.(xmlNode)
	if !ok {
		return nil
	}
	els := node.FindElements(path)
	if els == nil {
		return nil
	}
	out := make([]any, len(els))
	for i, el := range els {
		out[i] = el.Text()
	}
	return out
}

func (XMLAccessor) HasOne(src any, path string) any {
	node, ok := src.(xmlNode)
	if !ok {
		return nil
	}
	el := node.FindElement(path)
	if el == nil {
		return nil
	}
	return el
}

func (XMLAccessor) HasMany(src any, path string) any {
	node, ok := src.(xmlNode)
	if !ok {
		return nil
	}
	els := node.FindElements(path)
	if els == nil {
		return nil
	}
	out := make([]any, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}
