package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"nested-models/core/model"
)

// resolvePath walks path from root. Attribute names descend into models;
// inside a collection a segment is a member index, or an identity when no
// member sits at that index.
func resolvePath(root *model.Model, path string) (any, error) {
	var cur any = root
	if path == "" {
		return cur, nil
	}
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case *model.Model:
			next, ok := node.Lookup(seg)
			if !ok {
				return nil, fmt.Errorf("%s: no attribute %q: %w", path, seg, ErrBadPath)
			}
			cur = next
		case *model.Collection:
			member := memberOf(node, seg)
			if member == nil {
				return nil, fmt.Errorf("%s: no member %q: %w", path, seg, ErrBadPath)
			}
			cur = member
		default:
			return nil, fmt.Errorf("%s: %q is not a model or collection: %w", path, seg, ErrBadPath)
		}
	}
	switch cur.(type) {
	case *model.Model, *model.Collection:
		return cur, nil
	default:
		return nil, fmt.Errorf("%s: holds %T: %w", path, cur, ErrBadPath)
	}
}

func memberOf(c *model.Collection, seg string) *model.Model {
	if i, err := strconv.Atoi(seg); err == nil {
		if m := c.At(i); m != nil {
			return m
		}
		if m := c.Get(i); m != nil {
			return m
		}
	}
	return c.Get(seg)
}
