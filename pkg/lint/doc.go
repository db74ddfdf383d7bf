// Package lint checks files of Azure resource identifiers. It reads
// identifiers from plain-text or YAML files, validates each one by
// round-trip parsing and resource-name rules, evaluates Rego policies
// against the parsed fields, and produces a report. Reports can be
// persisted to a SQLite store and files can be watched for changes so
// every save triggers a fresh run.
package lint
