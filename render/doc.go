// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the drawing surface text geometry is emitted to.
//
// A Device accepts four primitives: a transform stack, textured quads
// (DrawImage), solid rectangles (FillRect) and textured triangle lists
// (DrawTriangles). Images are device-independent bitmap handles; devices
// that keep textures key them by Image.ID.
//
// # Implementations
//
//   - Software: CPU rasterization into an *image.RGBA using golang.org/x/image/draw.
//   - drawlist.Recorder: records calls for later playback.
//   - gpucanvas.Canvas: composes in software and presents through gpucontext.
//
// Devices are looked up by name through a database/sql style registry:
//
//	dev, err := render.NewDevice("software", 640, 480)
package render
