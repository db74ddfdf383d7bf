package arm

import (
	"regexp"
	"strconv"
)

// Field keys emitted by ParseFields and consumed by Build. Child segment
// keys carry a 1-based level suffix, e.g. "child_type_1".
const (
	FieldSubscription      = "subscription"
	FieldResourceGroup     = "resource_group"
	FieldNamespace         = "namespace"
	FieldType              = "type"
	FieldName              = "name"
	FieldLastChildNum      = "last_child_num"
	FieldResourceNamespace = "resource_namespace"
	FieldResourceType      = "resource_type"
	FieldResourceName      = "resource_name"
	FieldResourceParent    = "resource_parent"

	childNamespacePrefix = "child_namespace_"
	childTypePrefix      = "child_type_"
	childNamePrefix      = "child_name_"
	childParentPrefix    = "child_parent_"
)

var (
	// armIDPattern matches the root of an ARM identifier. Everything past
	// the root resource name is captured as an unconstrained remainder and
	// decomposed separately by childPattern.
	armIDPattern = regexp.MustCompile(
		`(?i)^/subscriptions/(?P<subscription>[^/]+)` +
			`(/resourceGroups/(?P<resource_group>[^/]+))?` +
			`(/providers/(?P<namespace>[^/]+)/(?P<type>[^/]*)/(?P<name>[^/]+)(?P<children>.*))?`)

	// childPattern matches one nested child segment within the remainder.
	childPattern = regexp.MustCompile(
		`(?i)(/providers/(?P<child_namespace>[^/]+))?/(?P<child_type>[^/]*)/(?P<child_name>[^/]+)`)
)

var (
	subIdx   = armIDPattern.SubexpIndex("subscription")
	rgIdx    = armIDPattern.SubexpIndex("resource_group")
	nsIdx    = armIDPattern.SubexpIndex("namespace")
	typeIdx  = armIDPattern.SubexpIndex("type")
	nameIdx  = armIDPattern.SubexpIndex("name")
	childIdx = armIDPattern.SubexpIndex("children")

	childNsIdx   = childPattern.SubexpIndex("child_namespace")
	childTypeIdx = childPattern.SubexpIndex("child_type")
	childNameIdx = childPattern.SubexpIndex("child_name")
)

// ChildSegment is one nested resource address below the root resource.
// Namespace is empty when the segment is not scoped by its own
// /providers/ prefix. Type may legitimately be empty; Name never is for
// identifiers produced by Parse.
type ChildSegment struct {
	Namespace string `json:"namespace,omitempty"`
	Type      string `json:"type"`
	Name      string `json:"name"`
}

// ResourceID is the decomposed form of an ARM resource identifier.
//
// A ResourceID with an empty Subscription is opaque: the input did not
// match the identifier grammar and Name holds the whole original string.
// Parse never fails; callers that need strict validation should use
// IsValidResourceID.
type ResourceID struct {
	Subscription  string `json:"subscription,omitempty"`
	ResourceGroup string `json:"resource_group,omitempty"`

	// Namespace, Type and Name describe the root resource. They are set
	// together: a non-empty Namespace implies a non-empty Name, although
	// Type may be empty.
	Namespace string `json:"namespace,omitempty"`
	Type      string `json:"type,omitempty"`
	Name      string `json:"name,omitempty"`

	// Children holds the nested segments in order of appearance,
	// level 1 first.
	Children []ChildSegment `json:"children,omitempty"`
}

// Parse decomposes an ARM resource identifier into a ResourceID.
//
// Empty input yields the zero ResourceID. Input that does not match the
// identifier grammar yields an opaque ResourceID carrying the input in
// Name. Parse never returns an error.
func Parse(rid string) *ResourceID {
	if rid == "" {
		return &ResourceID{}
	}
	m := armIDPattern.FindStringSubmatchIndex(rid)
	if m == nil {
		return &ResourceID{Name: rid}
	}

	id := &ResourceID{
		Subscription:  group(rid, m, subIdx),
		ResourceGroup: group(rid, m, rgIdx),
		Namespace:     group(rid, m, nsIdx),
		Type:          group(rid, m, typeIdx),
		Name:          group(rid, m, nameIdx),
	}

	remainder := group(rid, m, childIdx)
	for _, cm := range childPattern.FindAllStringSubmatchIndex(remainder, -1) {
		id.Children = append(id.Children, ChildSegment{
			Namespace: group(remainder, cm, childNsIdx),
			Type:      group(remainder, cm, childTypeIdx),
			Name:      group(remainder, cm, childNameIdx),
		})
	}
	return id
}

// ParseFields decomposes an ARM resource identifier into the flat field
// mapping used by Build. Keys whose value is absent are omitted; present
// but empty values (an empty root type, for example) are retained.
func ParseFields(rid string) map[string]string {
	return Parse(rid).Fields()
}

// group extracts submatch i from an index-pair slice, returning the empty
// string when the group did not participate in the match.
func group(s string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}

// Opaque reports whether the ResourceID is a fallback wrapper around a
// string that did not match the identifier grammar.
func (r *ResourceID) Opaque() bool {
	return r.Subscription == "" && r.Name != ""
}

// LastChildNum returns the number of child segments, matching the
// last_child_num field of the flat mapping. Zero means no children.
func (r *ResourceID) LastChildNum() int {
	return len(r.Children)
}

// deepest returns the segment addressed by the identifier: the last child
// when children exist, otherwise the root resource.
func (r *ResourceID) deepest() (typ, name string) {
	if n := len(r.Children); n > 0 {
		typ, name = r.Children[n-1].Type, r.Children[n-1].Name
		// An empty child type defers to the root type.
		if typ == "" {
			typ = r.Type
		}
		return typ, name
	}
	return r.Type, r.Name
}

// ResourceNamespace returns the provider namespace of the root resource.
// This is deliberately the root namespace even when the deepest child is
// scoped by a different provider.
func (r *ResourceID) ResourceNamespace() string { return r.Namespace }

// ResourceType returns the type of the deepest segment.
func (r *ResourceID) ResourceType() string {
	typ, _ := r.deepest()
	return typ
}

// ResourceName returns the name of the deepest segment.
func (r *ResourceID) ResourceName() string {
	_, name := r.deepest()
	return name
}

// Parent returns the parent path of the deepest segment: every path
// segment strictly above it, each followed by a trailing slash. The
// second return value is false when the identifier has no root resource
// name and therefore no parent.
func (r *ResourceID) Parent() (string, bool) {
	if r.Name == "" || r.Opaque() {
		return "", false
	}
	if len(r.Children) == 0 {
		return r.Type + "/" + r.Name + "/", true
	}
	parents := r.childParents()
	return parents[len(parents)-1], true
}

// ChildParent returns the parent path seen by the child at 1-based level
// i. It includes the child's own provider-namespace segment, when
// present, but not its type/name segment. The second return value is
// false when level i does not exist.
func (r *ResourceID) ChildParent(i int) (string, bool) {
	if i < 1 || i > len(r.Children) {
		return "", false
	}
	return r.childParents()[i-1], true
}

// childParents derives the parent path for every child level with a
// single accumulator pass. The ordering is load-bearing: each level's
// parent is recorded after appending that level's provider-namespace
// segment but before appending its type/name segment.
func (r *ResourceID) childParents() []string {
	parents := make([]string, 0, len(r.Children))
	acc := r.Type + "/" + r.Name + "/"
	for i, c := range r.Children {
		if c.Namespace != "" {
			acc += "providers/" + c.Namespace + "/"
		}
		parents = append(parents, acc)
		if i < len(r.Children)-1 {
			acc += c.Type + "/" + c.Name + "/"
		}
	}
	return parents
}

// Fields flattens the ResourceID into the string mapping contract shared
// with Build: the pattern groups, per-level child keys, last_child_num,
// and the derived resource_* and parent keys. Absent fields are omitted
// rather than emitted empty, with the exception of a root or child type
// that matched the empty string.
func (r *ResourceID) Fields() map[string]string {
	f := make(map[string]string)
	if r.Subscription == "" {
		if r.Name != "" {
			f[FieldName] = r.Name
		}
		return f
	}

	f[FieldSubscription] = r.Subscription
	if r.ResourceGroup != "" {
		f[FieldResourceGroup] = r.ResourceGroup
	}
	if r.Namespace != "" {
		f[FieldNamespace] = r.Namespace
		f[FieldType] = r.Type
		f[FieldName] = r.Name
		f[FieldResourceNamespace] = r.Namespace
		typ, name := r.deepest()
		f[FieldResourceType] = typ
		f[FieldResourceName] = name
	}

	for i, c := range r.Children {
		level := strconv.Itoa(i + 1)
		if c.Namespace != "" {
			f[childNamespacePrefix+level] = c.Namespace
		}
		f[childTypePrefix+level] = c.Type
		f[childNamePrefix+level] = c.Name
	}
	if n := len(r.Children); n > 0 {
		f[FieldLastChildNum] = strconv.Itoa(n)
		for i, parent := range r.childParents() {
			f[childParentPrefix+strconv.Itoa(i+1)] = parent
		}
	}
	if parent, ok := r.Parent(); ok {
		f[FieldResourceParent] = parent
	}
	return f
}
