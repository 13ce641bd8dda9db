// Package tui is the terminal interface of the shell: a bubbletea model that
// switches between the List, Create, Edit and Query scenes and shows
// blocking notices.
//
// Every message is handled to completion inside Update. Cache and card
// operations run synchronously there, so the cache is only ever touched by
// the UI loop.
package tui
