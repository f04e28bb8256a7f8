package api

import (
	"encoding/xml"
	"errors"
	"strings"
)

const soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

var errMissingBody = errors.New("response has no SOAP body")

// xmlNode is a schema-free XML element tree. The firmware returns a
// different document per action and often per model, so responses get dug
// through generically instead of per-action structs.
type xmlNode struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []xmlNode `xml:",any"`
}

// soapBody parses a response document and locates its SOAP Body element.
func soapBody(doc []byte) (*xmlNode, error) {
	var root xmlNode
	if err := xml.Unmarshal(doc, &root); err != nil {
		return nil, err
	}
	if body := findElement(&root, soapEnvelopeNS, "Body"); body != nil {
		return body, nil
	}
	return nil, errMissingBody
}

func findElement(node *xmlNode, space, local string) *xmlNode {
	if node.XMLName.Space == space && node.XMLName.Local == local {
		return node
	}
	for i := range node.Children {
		if found := findElement(&node.Children[i], space, local); found != nil {
			return found
		}
	}
	return nil
}

// bodyFields flattens the body's children and grandchildren into a tag to
// text map, the shape the record codecs consume. Tags are compared without
// namespaces because firmwares are not consistent about them.
func bodyFields(body *xmlNode) map[string]string {
	fields := make(map[string]string)
	for i := range body.Children {
		child := &body.Children[i]
		fields[child.XMLName.Local] = strings.TrimSpace(child.Text)
		for j := range child.Children {
			sub := &child.Children[j]
			fields[sub.XMLName.Local] = strings.TrimSpace(sub.Text)
		}
	}
	return fields
}

// deviceFields collects the field maps of every Device element in a
// GetAttachDevice2 response, which nests its entries one level too deep for
// the flat map.
func deviceFields(body *xmlNode) []map[string]string {
	var devices []map[string]string
	walkElements(body, "Device", func(node *xmlNode) {
		fields := make(map[string]string, len(node.Children))
		for i := range node.Children {
			child := &node.Children[i]
			fields[child.XMLName.Local] = strings.TrimSpace(child.Text)
		}
		devices = append(devices, fields)
	})
	return devices
}

func walkElements(node *xmlNode, local string, fn func(*xmlNode)) {
	for i := range node.Children {
		child := &node.Children[i]
		if child.XMLName.Local == local {
			fn(child)
			continue
		}
		walkElements(child, local, fn)
	}
}

// successResponseCode reports whether a ResponseCode field marks success.
// Firmwares use "0", "000" and "0000" interchangeably.
func successResponseCode(code string) bool {
	switch code {
	case "0", "000", "0000":
		return true
	}
	return false
}
