// Package build provides the canonical shell generation pipeline.
//
// Both the build command and the dev server route through Service: load the deck,
// resolve its configuration, assemble the document and, in build mode, write it out.
package build
