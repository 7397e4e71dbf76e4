// Package markdown renders article bodies to HTML and extracts their tables
// of contents. Both work on the same goldmark syntax tree and share
// HeadingID, so every TOC link targets an id the renderer stamps.
package markdown
