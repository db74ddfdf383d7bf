package policy

import (
	"time"
)

// BuiltinPolicies returns the policies compiled into the engine.
func BuiltinPolicies() []Policy {
	return []Policy{
		subscriptionFormatPolicy(),
		providerNamespacePolicy(),
		resourceGroupRequiredPolicy(),
		nestingDepthPolicy(),
		resourceNameConventionsPolicy(),
	}
}

// subscriptionFormatPolicy flags subscription segments that are not UUIDs.
func subscriptionFormatPolicy() Policy {
	return Policy{
		Name:        "subscription-format",
		Description: "Subscription identifiers should be UUIDs",
		Severity:    SeverityWarning,
		Enabled:     true,
		Tags:        []string{"format", "subscription"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Rego: `package azrid.policies.subscription

import rego.v1

deny contains violation if {
	sub := input.id.subscription
	not regex.match("^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$", sub)
	violation := {
		"message": sprintf("subscription '%s' is not a UUID", [sub]),
		"severity": "warning",
	}
}
`,
	}
}

// providerNamespacePolicy flags provider namespaces without the usual
// Company.Product dotted form.
func providerNamespacePolicy() Policy {
	return Policy{
		Name:        "provider-namespace",
		Description: "Provider namespaces should use the dotted Company.Product form",
		Severity:    SeverityError,
		Enabled:     true,
		Tags:        []string{"format", "provider"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Rego: `package azrid.policies.provider

import rego.v1

deny contains violation if {
	ns := input.id.namespace
	not contains(ns, ".")
	violation := {
		"message": sprintf("provider namespace '%s' is not in Company.Product form", [ns]),
		"severity": "error",
	}
}

deny contains violation if {
	some key, ns in input.id
	startswith(key, "child_namespace_")
	not contains(ns, ".")
	violation := {
		"message": sprintf("child provider namespace '%s' is not in Company.Product form", [ns]),
		"severity": "error",
	}
}
`,
	}
}

// resourceGroupRequiredPolicy flags provider-scoped identifiers that are
// not contained in a resource group.
func resourceGroupRequiredPolicy() Policy {
	return Policy{
		Name:        "resource-group-required",
		Description: "Provider resources should live inside a resource group",
		Severity:    SeverityWarning,
		Enabled:     true,
		Tags:        []string{"scope"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Rego: `package azrid.policies.scope

import rego.v1

deny contains violation if {
	input.id.namespace
	not input.id.resource_group
	violation := {
		"message": "provider resource is not scoped to a resource group",
		"severity": "warning",
	}
}
`,
	}
}

// nestingDepthPolicy flags identifiers with deeply nested child resources.
func nestingDepthPolicy() Policy {
	return Policy{
		Name:        "nesting-depth",
		Description: "Identifiers should not nest child resources more than three levels deep",
		Severity:    SeverityWarning,
		Enabled:     true,
		Tags:        []string{"structure"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Rego: `package azrid.policies.nesting

import rego.v1

deny contains violation if {
	depth := to_number(input.id.last_child_num)
	depth > 3
	violation := {
		"message": sprintf("identifier nests %v child levels deep (limit 3)", [depth]),
		"severity": "warning",
	}
}
`,
	}
}

// resourceNameConventionsPolicy flags leaf resource names that most ARM
// resource types reject or that complicate tooling.
func resourceNameConventionsPolicy() Policy {
	return Policy{
		Name:        "resource-name-conventions",
		Description: "Leaf resource names should be short and free of whitespace",
		Severity:    SeverityWarning,
		Enabled:     true,
		Tags:        []string{"naming", "conventions"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Rego: `package azrid.policies.naming

import rego.v1

deny contains violation if {
	name := input.id.resource_name
	count(name) > 64
	violation := {
		"message": sprintf("resource name '%s' exceeds 64 characters", [name]),
		"severity": "warning",
	}
}

deny contains violation if {
	name := input.id.resource_name
	regex.match("\\s", name)
	violation := {
		"message": sprintf("resource name '%s' contains whitespace", [name]),
		"severity": "warning",
	}
}
`,
	}
}
