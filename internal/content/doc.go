// Package content splits article bodies into headings and paragraphs and
// estimates reading time.
package content
