package arm

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingSubscription is returned when an identifier is composed from
// fields that lack the mandatory subscription.
var ErrMissingSubscription = fmt.Errorf("missing required field %q", FieldSubscription)

// Build composes a canonical ARM resource identifier from a flat field
// mapping, typically one produced by ParseFields. Unknown keys are
// ignored.
//
// Composition proceeds left to right and stops, without error, at the
// first level whose fields are absent: a missing resource_group skips
// only that segment, while a missing namespace or type/name pair
// terminates the identifier at whatever has been built so far. The sole
// hard failure is an absent subscription, reported as
// ErrMissingSubscription. A present provider namespace is appended even
// when the type/name pair that should follow it is absent.
func Build(fields map[string]string) (string, error) {
	sub, ok := fields[FieldSubscription]
	if !ok {
		return "", ErrMissingSubscription
	}

	parts := []string{"/subscriptions/" + sub}
	if rg, ok := fields[FieldResourceGroup]; ok {
		parts = append(parts, "resourceGroups/"+rg)
	}
	done := func() string { return strings.Join(parts, "/") }

	ns, ok := fields[FieldNamespace]
	if !ok {
		return done(), nil
	}
	parts = append(parts, "providers/"+ns)

	typ, typOK := fields[FieldType]
	name, nameOK := fields[FieldName]
	if !typOK || !nameOK {
		return done(), nil
	}
	parts = append(parts, typ+"/"+name)

	for level := 1; ; level++ {
		suffix := strconv.Itoa(level)
		if cns, ok := fields[childNamespacePrefix+suffix]; ok {
			parts = append(parts, "providers/"+cns)
		}
		ct, ctOK := fields[childTypePrefix+suffix]
		cn, cnOK := fields[childNamePrefix+suffix]
		if !ctOK || !cnOK {
			return done(), nil
		}
		parts = append(parts, ct+"/"+cn)
	}
}

// Format composes the canonical identifier string for a structured
// ResourceID under the same truncation rules as Build. It fails only
// when Subscription is empty.
func (r *ResourceID) Format() (string, error) {
	if r.Subscription == "" {
		return "", ErrMissingSubscription
	}

	var b strings.Builder
	b.WriteString("/subscriptions/")
	b.WriteString(r.Subscription)
	if r.ResourceGroup != "" {
		b.WriteString("/resourceGroups/")
		b.WriteString(r.ResourceGroup)
	}
	if r.Namespace == "" {
		return b.String(), nil
	}
	b.WriteString("/providers/")
	b.WriteString(r.Namespace)
	if r.Name == "" {
		return b.String(), nil
	}
	b.WriteString("/")
	b.WriteString(r.Type)
	b.WriteString("/")
	b.WriteString(r.Name)

	for _, c := range r.Children {
		if c.Namespace != "" {
			b.WriteString("/providers/")
			b.WriteString(c.Namespace)
		}
		if c.Name == "" {
			break
		}
		b.WriteString("/")
		b.WriteString(c.Type)
		b.WriteString("/")
		b.WriteString(c.Name)
	}
	return b.String(), nil
}

// String returns the canonical identifier string, or the opaque name for
// a ResourceID that did not match the identifier grammar. The zero
// ResourceID renders as the empty string.
func (r *ResourceID) String() string {
	if r.Subscription == "" {
		return r.Name
	}
	s, _ := r.Format()
	return s
}
