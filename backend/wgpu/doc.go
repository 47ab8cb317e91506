// Package wgpu makes glyph atlases resident on a GPU through gogpu/wgpu.
//
// AtlasUploader implements render.TextureUploader on a hal device and
// queue: each image becomes an RGBA8 texture with a view ready for
// binding. The atlas text shader (shaders/atlas_text.wgsl) draws
// atlas.Geometry vertices, laid out as described by atlas.VertexLayout,
// and is compiled to SPIR-V with naga.
//
//	up := wgpu.NewAtlasUploader(device, queue)
//	defer up.Destroy()
//	if err := font.Upload(up); err != nil {
//	    return err
//	}
//	view, _ := up.View(font.Atlas().Texture())
package wgpu
