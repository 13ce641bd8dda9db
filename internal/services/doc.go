// Package services holds the operations the terminal UI performs on the
// contact cache and on card files. ContactService keeps the cache in step
// with the cards directory; CardService drives the card adapter for the
// Create and Edit forms and applies the matching cache mutation.
package services
