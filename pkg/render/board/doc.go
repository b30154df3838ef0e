// Package board renders placements as the fabric grid they live on.
//
// The board view draws one colored cell per site (red CLB, blue DSP,
// green BRAM, yellow IO, gray empty), a dark marker on every occupied
// site, and optionally the net edges between connected nodes. It is the
// primary visualization for judging a placement by eye: short edges mean
// low wirelength.
//
// Coordinates follow screen convention: site (0,0) renders in the top
// left corner and y grows downward.
//
// [RenderSVG] is the core sink; [RenderPNG] and [RenderPDF] convert
// through it and require the external rsvg-convert tool. Per-step
// snapshots from a search can be rendered individually and assembled into
// an animation with render.FramesToGIF or render.FramesToMP4.
package board
