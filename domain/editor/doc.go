// Package editor implements the editable-region and annotation-overlay
// engine behind the playground and workshop viewer. It parses sentinel
// comments into editable regions, gates edits against them, and maps
// line-keyed annotations onto a live buffer as renderable decorations.
//
// Everything here is synchronous and single-owner: each hosted editor
// instance owns its own Tracker, Guard and Overlay, and all mutation happens
// in response to serialized input events.
package editor
