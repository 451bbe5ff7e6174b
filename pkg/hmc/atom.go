package hmc

import (
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Entry is one unit of the Atom document protocol: an opaque identifier, a
// publication timestamp, an optional canonical-location link and version tag,
// and exactly one typed payload element.
type Entry struct {
	// ID is the server-assigned identifier of the entry.
	ID string
	// Published is the publication instant. Zero when absent.
	Published time.Time
	// SelfLink is the canonical location, present only on freestanding
	// entities.
	SelfLink string
	// ETag is the opaque version tag used for conditional updates, when the
	// entry carries one.
	ETag string
	// ContentType is the raw type attribute of the content element; its
	// trailing "type=Kind" component names the concrete kind.
	ContentType string

	content *etree.Element
}

// Payload returns the single payload element inside the entry's content, or
// nil when the entry carries none.
func (e *Entry) Payload() *etree.Element {
	if e.content == nil {
		return nil
	}

	children := e.content.ChildElements()
	if len(children) == 0 {
		return nil
	}

	return children[0]
}

// Kind returns the concrete kind named by the content-type indicator, or ""
// when the entry has no usable indicator.
func (e *Entry) Kind() Kind {
	idx := strings.LastIndex(e.ContentType, "=")
	if idx < 0 || idx == len(e.ContentType)-1 {
		return ""
	}

	return Kind(strings.TrimSpace(e.ContentType[idx+1:]))
}

// DecodeFeed decodes the ordered entries of a feed response. An empty buffer
// or an empty root yields an empty slice, not an error; a root that is itself
// an entry yields a single-element slice. Order follows the document order.
func DecodeFeed(data []byte) ([]*Entry, error) {
	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}

	if root == nil {
		return nil, nil
	}

	if root.Tag == "entry" {
		entry, err := decodeEntryElement(root)
		if err != nil {
			return nil, err
		}

		return []*Entry{entry}, nil
	}

	var entries []*Entry

	for _, child := range root.ChildElements() {
		if child.Tag != "entry" {
			continue
		}

		entry, err := decodeEntryElement(child)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// DecodeEntry decodes a single-entry response: the root entry, or the first
// entry of a feed. Returns nil when the document holds no entry.
func DecodeEntry(data []byte) (*Entry, error) {
	entries, err := DecodeFeed(data)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, nil
	}

	return entries[0], nil
}

// parseRoot parses the raw document and returns its root element, nil when
// the buffer is empty or holds no root.
func parseRoot(data []byte) (*etree.Element, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	doc := etree.NewDocument()

	err := doc.ReadFromBytes(data)
	if err != nil {
		return nil, &ProtocolError{Op: "decoding document", Detail: err.Error()}
	}

	return doc.Root(), nil
}

func decodeEntryElement(el *etree.Element) (*Entry, error) {
	entry := &Entry{}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "id":
			entry.ID = strings.TrimSpace(child.Text())
		case "published":
			published, err := parsePublished(child.Text())
			if err != nil {
				return nil, err
			}

			entry.Published = published
		case "etag":
			entry.ETag = strings.TrimSpace(child.Text())
		case "link":
			if strings.EqualFold(child.SelectAttrValue("rel", ""), "self") {
				entry.SelfLink = child.SelectAttrValue("href", "")
			}
		case "content":
			entry.ContentType = child.SelectAttrValue("type", "")
			entry.content = child
		}
	}

	return entry, nil
}

// parsePublished parses the publication timestamp. A malformed value is a
// protocol violation, never swallowed.
func parsePublished(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, nil
	}

	published, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return time.Time{}, &ProtocolError{Op: "parsing entry timestamp", Detail: err.Error()}
	}

	return published, nil
}
