// Package stringx provides the string helpers used across the rair shell.
//
// Package: stringx
// Title: String Utilities
// Description: Blank checks, rune-aware padding for table columns and the
//              Levenshtein edit distance that powers command suggestions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Usage:
//   stringx.Levenshtein("mep", "map")        // 1
//   stringx.PadRight("Size", 5, ' ')         // "Size "
//   stringx.IsBlank("  ")                     // true
package stringx
