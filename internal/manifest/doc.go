// Package manifest parses pip requirements files (requirements.txt). It
// models individual requirement lines — name, extras, version specifier,
// environment marker — and follows -r/--requirement includes so callers see
// the full flattened dependency set. Resolution and installation are pip's
// job; this package only reads the manifest.
package manifest
