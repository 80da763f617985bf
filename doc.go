// Package ambient renders decorative 2D particle backgrounds with
// [Ebitengine].
//
// Two sketches are provided:
//
//   - [Liquid]: soft radial-gradient discs spawned from pointer motion and an
//     optional autonomous path, drawn over a fading trail.
//   - [Tech]: a circuit-style background of pulsing circles, squares and code
//     glyphs linked by proximity lines, over a hex grid, wavy circuit lines
//     and binary rain.
//
// # Quick start
//
//	stage := ambient.NewStage(1280, 720)
//	ctrl := ambient.NewController(ambient.NewTech(ambient.DefaultTechConfig()))
//	if err := ctrl.Mount(stage); err != nil {
//		log.Fatal(err)
//	}
//	if err := ambient.Run(stage, ambient.RunConfig{Title: "Tech", Resizable: true}); err != nil {
//		log.Fatal(err)
//	}
//
// # Lifecycle
//
// A [Stage] is the host: it implements [ebiten.Game], dispatches pointer and
// resize events, and runs frame callbacks once per tick. A [Controller]
// binds one [Sketch] to a stage between [Controller.Mount] and
// [Controller.Unmount]. Mount acquires a [Canvas]; if that fails the
// controller shows a static gradient instead of animating. Unmount cancels
// the pending frame and removes every subscription, so no callback reaches
// the sketch afterwards.
//
// # Particles
//
// Particles live in a [Store], oldest first. Each frame the store moves
// particles by their velocity, damps the velocity and decays life; dead
// particles are pruned and the population cap evicts the oldest.
//
// # Configuration
//
// Sketch settings and theme colors can be loaded from YAML with
// [LoadConfig]. Theme colors accept hex and HSL strings; anything else
// resolves to [FallbackColor].
//
// [Ebitengine]: https://ebitengine.org
package ambient
