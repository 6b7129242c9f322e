package normalizer

// Shape names the payload layout a provider used.
type Shape string

const (
	ShapeConnection Shape = "connection"
	ShapeNested     Shape = "nested"
	ShapeFlat       Shape = "flat"
)

// shapeExtractor knows where one payload layout keeps the profile object and the
// post list. Field-level extraction is shared across shapes.
type shapeExtractor interface {
	shape() Shape
	match(root map[string]any) bool
	// anchored reports whether root carries enough to be treated as a real profile.
	anchored(root map[string]any) bool
	user(root map[string]any) map[string]any
	posts(root map[string]any) []any
}

// Probed in order; flat matches any object and must stay last.
var shapeExtractors = []shapeExtractor{
	connectionShape{},
	nestedShape{},
	flatShape{},
}

func detectShape(root map[string]any) shapeExtractor {
	for _, s := range shapeExtractors {
		if s.match(root) {
			return s
		}
	}
	return flatShape{}
}

// connectionShape: {"result": {"user": {...}, "edges": [{"node": {...}}]}} or the
// same envelope at the root.
type connectionShape struct{}

func (connectionShape) shape() Shape { return ShapeConnection }

func (s connectionShape) container(root map[string]any) (map[string]any, bool) {
	if result, ok := objectAt(root, "result"); ok {
		if _, ok := listAt(result, "edges"); ok {
			return result, true
		}
	}
	if _, ok := listAt(root, "edges"); ok {
		return root, true
	}
	return nil, false
}

func (s connectionShape) match(root map[string]any) bool {
	_, ok := s.container(root)
	return ok
}

func (s connectionShape) anchored(root map[string]any) bool { return s.match(root) }

func (s connectionShape) user(root map[string]any) map[string]any {
	c, _ := s.container(root)
	if u, ok := objectAt(c, "user"); ok {
		return u
	}
	return c
}

func (s connectionShape) posts(root map[string]any) []any {
	c, _ := s.container(root)
	edges, _ := listAt(c, "edges")
	return edges
}

// nestedShape: {"data": {"user": {...}, "items": [...]}}.
type nestedShape struct{}

func (nestedShape) shape() Shape { return ShapeNested }

func (nestedShape) match(root map[string]any) bool {
	_, ok := objectAt(root, "data")
	return ok
}

func (s nestedShape) anchored(root map[string]any) bool { return s.match(root) }

func (nestedShape) user(root map[string]any) map[string]any {
	if u, ok := objectAt(root, "data.user"); ok {
		return u
	}
	return map[string]any{}
}

func (nestedShape) posts(root map[string]any) []any {
	return firstList(root, "data.items", "data.posts", "data.user.edge_owner_to_timeline_media.edges")
}

// flatShape: profile fields directly at the root.
type flatShape struct{}

func (flatShape) shape() Shape { return ShapeFlat }

func (flatShape) match(map[string]any) bool { return true }

func (flatShape) anchored(root map[string]any) bool {
	_, ok := firstString(root, usernamePaths...)
	return ok
}

func (flatShape) user(root map[string]any) map[string]any { return root }

func (flatShape) posts(root map[string]any) []any {
	return firstList(root, "posts", "items", "edge_owner_to_timeline_media.edges")
}

func firstList(node any, candidates ...string) []any {
	for _, path := range candidates {
		if list, ok := listAt(node, path); ok {
			return list
		}
	}
	return nil
}
