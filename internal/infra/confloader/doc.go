// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader over koanf that merges
// several sources into one typed struct.
//
// Features:
//
//   - Multiple Sources: YAML files, prefixed and legacy environment
//     variables, maps
//   - Permissive Decoding: yes/no/on/off booleans, JSON-array or comma
//     separated lists, durations
//   - Tagged Values: plain or lazily computed values resolved on access
//   - Watch Support: callbacks on config file changes
//
// Priority (highest to lowest):
//
//  1. Prefixed environment variables (REQLOG_SECTION__KEY)
//  2. Legacy environment variables (PROJECT, SERVICE, ...)
//  3. Configuration file
//  4. Values already present in the target struct
package confloader
