// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpucanvas presents textgeom drawing in gogpu GPU windows.
//
// Canvas is a render.Device that composes on a CPU image and uploads it
// as one texture when presented:
//
//	text objects (Render) -> Canvas (CPU image) -> GPU texture -> Window
//
// Uploader makes individual images, such as a glyph atlas, resident as
// their own textures.
//
// # Usage
//
//	canvas, err := gpucanvas.New(app.GPUContextProvider(), 800, 600)
//	if err != nil {
//	    return err
//	}
//	defer canvas.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.Clear(render.Transparent)
//	    if err := canvas.Draw(label); err != nil {
//	        log.Print(err)
//	    }
//	    canvas.Present(dc.AsTextureDrawer(), 0, 0)
//	})
//
// # Thread Safety
//
// Canvas and Uploader are NOT safe for concurrent use.
//
// # Integration Without Circular Imports
//
// The package talks to the window through gpucontext interfaces only and
// never imports gogpu.
package gpucanvas
