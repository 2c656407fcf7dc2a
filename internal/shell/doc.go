// Package shell composes the index.html document served to the presentation client.
//
// The pipeline has four steps:
//
//  1. MergeFragments collects <head> and <body> fragments from each override root's
//     index.html, in root order, rejecting a generated file left in the user root.
//  2. BuildHeadDescription turns deck configuration and headmatter into a structured
//     description of the document head (lang, title, links, meta).
//  3. Assembler.Assemble substitutes the entry, head and body placeholders of the client
//     template.
//  4. A HeadRenderer serializes the head description into the assembled template.
//
// SetupIndexHTML runs the whole pipeline for one deck.
package shell
