// Package drawlist records device calls into an immutable command list
// that can be replayed any number of times.
//
// A Recorder implements render.Device. Recording starts with NewRecorder,
// every device call appends a typed command, and Finish closes the scope:
//
//	rec := drawlist.NewRecorder()
//	obj.Render(rec)
//	list, err := rec.Finish()
//	...
//	list.Playback(dev) // every frame
//
// Images are held by reference in a resource pool and deduplicated, so a
// list that draws the same glyph image many times stores it once.
package drawlist
