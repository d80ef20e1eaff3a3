// Package viz renders a running simulation in the terminal.
//
// The live [Model] steps a sim.Simulator from Bubble Tea ticks and draws
// each snapshot onto a Braille [Canvas], two by four dots per cell. The
// [Launcher] wraps it with a preset picker.
//
// # Input
//
//	Click      - Spawn at the pointer (planet or asteroid, see P/A)
//	Pointer    - Moves the attractor when it is enabled (M)
//	Space      - Pause/Resume; clicks still spawn while paused
//	Tab, ↑/↓   - Select and tune a parameter
//	+/-        - Change the asteroid count, which reseeds
//	R          - Reseed now
//	T          - Cycle color themes
//	?          - Show help overlay
package viz
