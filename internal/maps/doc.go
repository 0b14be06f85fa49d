// Package maps provides the discrete maps iterated by the search and the
// renderer.
//
//   - [Trig]: the trigonometric map whose orbits are searched
//   - [Quadratic]: the 12-term polynomial map driving the shadow trajectory
//   - [Clifford]: the four parameter Clifford attractor
//
// Each map implements [Map]; [Lookup] resolves one by name.
package maps
