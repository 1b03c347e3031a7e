// Package symdex provides a local, CLI-based symbol search tool for
// generated documentation sites. It loads the static search indexes that
// documentation generators such as Doxygen emit (html/search/*.js), stores
// them, answers symbol lookups and regenerates the index files.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, doxygen/).
package symdex
