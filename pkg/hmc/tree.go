package hmc

import (
	"strings"

	"github.com/beevik/etree"
)

// Path helpers over the payload tree. Paths are slash-separated local element
// names resolved relative to a payload element; namespace prefixes on the
// document side are ignored so the same table works across schema versions.

func findChild(el *etree.Element, name string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == name {
			return child
		}
	}

	return nil
}

func findPath(el *etree.Element, path string) *etree.Element {
	current := el

	for _, segment := range splitPath(path) {
		current = findChild(current, segment)
		if current == nil {
			return nil
		}
	}

	return current
}

// ensurePath walks the path, creating missing intermediate segments on
// demand, and returns the final element.
func ensurePath(el *etree.Element, path string) *etree.Element {
	current := el

	for _, segment := range splitPath(path) {
		next := findChild(current, segment)
		if next == nil {
			next = current.CreateElement(segment)
		}

		current = next
	}

	return current
}

// removePath removes the element at path, if present. Intermediate segments
// are left in place.
func removePath(el *etree.Element, path string) {
	target := findPath(el, path)
	if target == nil || target.Parent() == nil {
		return
	}

	target.Parent().RemoveChild(target)
}

func splitPath(path string) []string {
	var segments []string

	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return segments
}
