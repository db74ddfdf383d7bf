// Package arm implements parsing, composition and validation of Azure
// Resource Manager (ARM) resource identifiers.
//
// An ARM identifier is a /-delimited path rooted at a subscription:
//
//	/subscriptions/{sub}/resourceGroups/{rg}/providers/{ns}/{type}/{name}
//
// followed by any number of nested child segments, each optionally scoped
// by its own provider namespace. Parse decomposes such a string into a
// ResourceID; Build and ResourceID.Format reconstruct the canonical string.
// Parsing is deliberately permissive: input that does not look like an ARM
// identifier is returned as an opaque name rather than an error, so that
// free-form resource names can flow through the same code paths.
//
// All functions in this package are pure and safe for concurrent use.
package arm
