// Package viz renders a running simulation in the terminal with Bubble Tea.
//
//   - [Model]: live view of one simulator with mouse drag creation
//   - [NewInteractiveApp]: preset menu and physics settings before launch
//   - [Canvas]: braille sub-pixel canvas, composed in colored layers
//   - [Viewport]: world to sub-pixel mapping with pan and zoom
//
// # Key Bindings
//
//	Space - Run/Pause
//	R     - Remove all bodies
//	L     - Reload the starting scene
//	I     - Enter a body as x,y,vx,vy,mass
//	+/-   - Mass for new bodies (mouse wheel too)
//	V     - Toggle velocity and force vectors
//	T     - Cycle color themes
//	?     - Show help overlay
//
// Every change goes through the simulator's command queue, so the view never
// mutates bodies mid-tick.
package viz
