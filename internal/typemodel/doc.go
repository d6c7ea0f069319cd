// Package typemodel defines the normalized, fully-qualified structural
// description of target-language types that the resolution engine operates on.
//
// Key properties:
//   - Every reference is fully qualified (module path + name); local import
//     aliases are resolved by the caller before a Type is built
//   - Values are immutable after construction and safe to share across
//     concurrent generate calls
//   - The Type sum is closed: the composer dispatches on the concrete shapes
//     defined here and nothing else
package typemodel
