// Package viz provides terminal visualisation for the attractor search.
//
//   - [Canvas]: Braille-based pixel canvas for previews in the terminal
//   - [Preview]: one-call braille rendering of a trajectory
//   - [SearchModel]: Bubble Tea model running a live search
//
// # Key Bindings
//
//	N     - Search for the next attractor when idle
//	Space - Pause or resume the running search
//	A     - Toggle automatic continuation after each find
//	Q     - Quit
package viz
