package hmc

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Entity is the typed projection of a payload element, driven entirely by the
// kind's attribute table. A freestanding entity additionally carries the
// identity snapshot captured at parse time (UUID, publication instant,
// canonical location, version tag); the snapshot never changes, while field
// writes go straight to the backing payload tree, which stays authoritative
// for re-encoding.
type Entity struct {
	schema *Schema
	root   *etree.Element

	uuid      string
	published time.Time
	selfLink  string
	etag      string
}

// ParseEntry builds a freestanding entity from one entry. When expected is
// non-empty and the entry's kind differs, or the entry has no payload or no
// type indicator, it returns (nil, nil): callers use this to filter
// heterogeneous feeds. A registry miss with expected set is fatal: the
// caller asked for a specific, known kind.
func ParseEntry(entry *Entry, expected Kind) (*Entity, error) {
	if entry == nil {
		return nil, nil
	}

	payload := entry.Payload()
	kind := entry.Kind()

	if payload == nil || kind == "" {
		return nil, nil
	}

	if expected != "" && kind != expected {
		return nil, nil
	}

	schema, ok := SchemaFor(kind)
	if !ok {
		if expected != "" {
			return nil, &ProtocolError{
				Op:     "resolving entity kind",
				Detail: fmt.Sprintf("kind %q is not registered", kind),
			}
		}

		return nil, nil
	}

	return &Entity{
		schema:    schema,
		root:      payload,
		uuid:      entry.ID,
		published: entry.Published,
		selfLink:  entry.SelfLink,
		etag:      entry.ETag,
	}, nil
}

// ParseFeed applies ParseEntry to every entry and silently drops entries that
// resolve to absent: feeds legitimately mix unrelated kinds.
func ParseFeed(entries []*Entry, expected Kind) ([]*Entity, error) {
	var entities []*Entity

	for _, entry := range entries {
		entity, err := ParseEntry(entry, expected)
		if err != nil {
			return nil, err
		}

		if entity != nil {
			entities = append(entities, entity)
		}
	}

	return entities, nil
}

// NewEmbedded builds an embedded entity over a sub-element owned by a parent
// payload. Embedded entities have no identity, location, or version tag.
func NewEmbedded(kind Kind, el *etree.Element) (*Entity, error) {
	schema, ok := SchemaFor(kind)
	if !ok {
		return nil, &ProtocolError{
			Op:     "resolving entity kind",
			Detail: fmt.Sprintf("kind %q is not registered", kind),
		}
	}

	return &Entity{schema: schema, root: el}, nil
}

// Kind returns the entity's concrete kind.
func (e *Entity) Kind() Kind { return e.schema.Kind }

// UUID returns the identifier captured at parse time; empty for embedded
// entities.
func (e *Entity) UUID() string { return e.uuid }

// Published returns the publication instant captured at parse time.
func (e *Entity) Published() time.Time { return e.published }

// SelfLink returns the canonical location captured at parse time; empty for
// embedded entities.
func (e *Entity) SelfLink() string { return e.selfLink }

// ETag returns the version tag captured at parse time; empty for embedded
// entities and for entries that carried none.
func (e *Entity) ETag() string { return e.etag }

// Element returns the backing payload element.
func (e *Entity) Element() *etree.Element { return e.root }

// Get returns the value bound at the field's path. The second return is
// false when the path is absent from the tree or the field is not declared
// by the kind's attribute table.
func (e *Entity) Get(field string) (string, bool) {
	path, ok := e.schema.Path(field)
	if !ok {
		return "", false
	}

	el := findPath(e.root, path)
	if el == nil {
		return "", false
	}

	return strings.TrimSpace(el.Text()), true
}

// Set writes the field's value into the backing tree, creating missing
// intermediate path segments on demand. The captured identity snapshot is
// unaffected; only re-encoding observes the write.
func (e *Entity) Set(field, value string) error {
	path, ok := e.schema.Path(field)
	if !ok {
		return fmt.Errorf("kind %s declares no field %q", e.schema.Kind, field)
	}

	ensurePath(e.root, path).SetText(value)

	return nil
}

// Clear removes the field's node from the backing tree, if present.
func (e *Entity) Clear(field string) error {
	path, ok := e.schema.Path(field)
	if !ok {
		return fmt.Errorf("kind %s declares no field %q", e.schema.Kind, field)
	}

	removePath(e.root, path)

	return nil
}

// Encode re-serializes the backing payload tree for submission. The tree is
// authoritative, so the output always reflects the latest writes.
func (e *Entity) Encode() ([]byte, error) {
	doc := etree.NewDocument()
	doc.SetRoot(e.root.Copy())

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", e.schema.Kind, err)
	}

	return data, nil
}

// Children collects the embedded entities nested under the container path,
// dispatching each child element by its tag against the registry. Children
// whose kind is not in the given set (or, with no kinds given, not in the
// registry at all) are skipped, not fatal: bulk listings must survive
// protocol evolution on the server side.
func (e *Entity) Children(containerPath string, kinds ...Kind) []*Entity {
	container := findPath(e.root, containerPath)
	if container == nil {
		return nil
	}

	wanted := make(map[Kind]bool, len(kinds))
	for _, kind := range kinds {
		wanted[kind] = true
	}

	var children []*Entity

	for _, child := range container.ChildElements() {
		kind := Kind(child.Tag)
		if len(kinds) > 0 && !wanted[kind] {
			continue
		}

		schema, ok := SchemaFor(kind)
		if !ok {
			continue
		}

		children = append(children, &Entity{schema: schema, root: child})
	}

	return children
}

// LinkedIDs extracts the identifiers embedded in the link elements found at
// the given path, taking the href path segment at the given index (negative
// counts from the end). Relationships are expressed this way instead of
// embedding full related objects.
func (e *Entity) LinkedIDs(path string, segment int) []string {
	container := findPath(e.root, path)
	if container == nil {
		return nil
	}

	var ids []string

	for _, link := range container.ChildElements() {
		if link.Tag != "link" {
			continue
		}

		href := link.SelectAttrValue("href", "")
		if href == "" {
			continue
		}

		id, ok := hrefSegment(href, segment)
		if ok {
			ids = append(ids, id)
		}
	}

	return ids
}

func hrefSegment(href string, segment int) (string, bool) {
	trimmed := strings.Trim(strings.TrimSpace(href), "/")
	if trimmed == "" {
		return "", false
	}

	parts := strings.Split(trimmed, "/")

	idx := segment
	if idx < 0 {
		idx += len(parts)
	}

	if idx < 0 || idx >= len(parts) {
		return "", false
	}

	return parts[idx], true
}
