// Package policy evaluates Rego policies against parsed Azure resource
// identifiers. Policies receive the flat field mapping of an identifier
// as input and report violations through `deny` rules.
//
// The engine ships with a set of built-in policies covering common ARM
// conventions (subscription format, provider namespaces, nesting depth)
// and loads additional .rego or .json policy files from configured
// paths. The loader can watch those paths and reload policies when they
// change on disk.
//
// Example policy:
//
//	package azrid.policies.example
//
//	import rego.v1
//
//	deny contains violation if {
//		not input.id.resource_group
//		violation := {
//			"message": "identifier has no resource group",
//			"severity": "warning",
//		}
//	}
package policy
