package blockly

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

const (
	elementBlock = "block"
	elementField = "field"

	xmlnsPrefix = "xmlns"
	xmlURL      = "http://www.w3.org/XML/1998/namespace"
)

var (
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	encodingLabel = regexp.MustCompile(`^<\?xml[^>]*?\sencoding\s*=\s*["']([A-Za-z][A-Za-z0-9._-]*)["']`)
)

// frame is one open element while walking the document.
type frame struct {
	block *BlockNode // set when the element is a collected block
	// field capture: set while reading the text of a block's first <field name=...>
	fieldOwner *BlockNode
	fieldName  string
	fieldText  strings.Builder
	capturing  bool
	// namespace URLs declared on this element
	bound []string
}

// Parse reads a workspace document and returns every block below the document
// root in document order. Nested blocks are returned in the flat sequence and
// also linked from their enclosing block's Children.
//
// A well-formed document without blocks yields an empty slice and no error.
// Anything that is not well-formed XML yields a *ParseError.
//
// The document is already text, so an encoding named by its XML declaration
// is not applied again. Use ParseReader for encoded bytes.
func Parse(document string) ([]*BlockNode, error) {
	dec := xml.NewDecoder(strings.NewReader(document))
	dec.Strict = true
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	blocks := make([]*BlockNode, 0)
	stack := make([]*frame, 0, 16)
	namespaces := make(map[string]int)
	rootSeen := false

	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newParseError(dec, err)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" && offset != 0 {
				return nil, newParseError(dec, errors.New("XML declaration not at start of document"))
			}

		case xml.StartElement:
			if err := checkAttributes(t); err != nil {
				return nil, newParseError(dec, err)
			}
			bound := declaredNamespaces(t)
			for _, url := range bound {
				namespaces[url]++
			}
			if err := checkPrefixes(t, namespaces); err != nil {
				return nil, newParseError(dec, err)
			}

			if len(stack) == 0 {
				if rootSeen {
					return nil, newParseError(dec, errors.New("junk after document element"))
				}
				rootSeen = true
				stack = append(stack, &frame{bound: bound})
				continue
			}

			parent := stack[len(stack)-1]
			if parent.capturing {
				// Field text stops at the first child element.
				parent.capturing = false
			}

			f := &frame{bound: bound}
			switch t.Name.Local {
			case elementBlock:
				node := &BlockNode{
					Type:   attr(t, "type"),
					ID:     attr(t, "id"),
					Fields: make(map[string]string),
				}
				if owner := nearestBlock(stack); owner != nil {
					owner.Children = append(owner.Children, node)
				}
				blocks = append(blocks, node)
				f.block = node
			case elementField:
				name := attr(t, "name")
				if owner := parent.block; owner != nil && name != "" {
					if _, seen := owner.Fields[name]; !seen {
						owner.Fields[name] = ""
						f.fieldOwner = owner
						f.fieldName = name
						f.capturing = true
					}
				}
			}
			stack = append(stack, f)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, newParseError(dec, fmt.Errorf("unexpected end element </%s>", t.Name.Local))
			}
			top := stack[len(stack)-1]
			if top.fieldOwner != nil {
				top.fieldOwner.Fields[top.fieldName] = top.fieldText.String()
			}
			for _, url := range top.bound {
				if namespaces[url]--; namespaces[url] == 0 {
					delete(namespaces, url)
				}
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, newParseError(dec, errors.New("text outside the document element"))
				}
				continue
			}
			if top := stack[len(stack)-1]; top.capturing {
				top.fieldText.Write(t)
			}
		}
	}

	if !rootSeen {
		return nil, newParseError(dec, errors.New("no element found"))
	}
	if len(stack) != 0 {
		return nil, newParseError(dec, io.ErrUnexpectedEOF)
	}

	return blocks, nil
}

// nearestBlock returns the innermost open block element, skipping the document root.
func nearestBlock(stack []*frame) *BlockNode {
	for i := len(stack) - 1; i >= 1; i-- {
		if stack[i].block != nil {
			return stack[i].block
		}
	}
	return nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// checkAttributes rejects an attribute name repeated on one element
func checkAttributes(el xml.StartElement) error {
	seen := make(map[xml.Name]struct{}, len(el.Attr))
	for _, a := range el.Attr {
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("duplicate attribute %q on <%s>", qualified(a.Name), el.Name.Local)
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}

func declaredNamespaces(el xml.StartElement) []string {
	var urls []string
	for _, a := range el.Attr {
		if a.Name.Space == xmlnsPrefix || (a.Name.Space == "" && a.Name.Local == xmlnsPrefix) {
			if a.Value != "" {
				urls = append(urls, a.Value)
			}
		}
	}
	return urls
}

// checkPrefixes rejects names whose prefix was never declared. The decoder
// leaves such a prefix in Name.Space instead of a namespace URL.
func checkPrefixes(el xml.StartElement, namespaces map[string]int) error {
	known := func(space string) bool {
		if space == "" || space == xmlURL {
			return true
		}
		_, ok := namespaces[space]
		return ok
	}

	if !known(el.Name.Space) {
		return fmt.Errorf("unbound prefix %q on element <%s>", el.Name.Space, el.Name.Local)
	}
	for _, a := range el.Attr {
		if a.Name.Space == xmlnsPrefix {
			continue
		}
		if !known(a.Name.Space) {
			return fmt.Errorf("unbound prefix %q on attribute %q", a.Name.Space, a.Name.Local)
		}
	}
	return nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// ParseReader reads an encoded workspace document and parses it.
// See DecodeDocument for how the bytes are turned into text.
func ParseReader(r io.Reader) ([]*BlockNode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	document, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return Parse(document)
}

// DecodeDocument turns raw document bytes into text. Bytes are UTF-8 unless the
// XML declaration names another IANA charset. A leading UTF-8 byte order mark is dropped.
func DecodeDocument(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	m := encodingLabel.FindSubmatch(data)
	if m == nil {
		return string(data), nil
	}
	label := string(m[1])
	if strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") {
		return string(data), nil
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err == nil && enc == nil {
		err = fmt.Errorf("unsupported charset %q", label)
	}
	if err != nil {
		return "", &ParseError{Line: 1, Err: err}
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &ParseError{Line: 1, Err: err}
	}
	return string(decoded), nil
}

func newParseError(dec *xml.Decoder, err error) *ParseError {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Line: syntaxErr.Line, Err: errors.New(syntaxErr.Msg)}
	}
	line, _ := dec.InputPos()
	return &ParseError{Line: line, Err: err}
}
