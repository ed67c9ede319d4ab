// Package validation contains the logic for validating
// request data.
//
// Write requests carry a JSON object whose keys must come from a fixed
// attribute set and whose size must fit the operation. The checks are
// count based: they do not compare key names against a per-operation
// schema beyond the accepted set.
package validation
