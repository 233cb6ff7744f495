// Package specsource loads user-authored specifications from storage,
// decodes YAML or JSON, and validates identity, versioning, dimension and
// level structure before any planning happens.
package specsource
