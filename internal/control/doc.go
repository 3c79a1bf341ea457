// Package control turns user input into body-creation commands.
//
// Two creation modes are supported:
//
//   - [Drag]: press to pick the spawn point, drag away, release to launch.
//     The body starts at the press point with velocity opposite to the drag.
//   - [ParseBodySpec]: precise entry of "x,y,vx,vy,mass".
//
// Both feed a [Creator], normally a *sim.Simulator, so creation always goes
// through the command queue.
//
// # Usage
//
//	d := control.NewDrag(control.NewMass(10))
//	d.Press(x0, y0)
//	d.Move(x1, y1)
//	if p, ok := d.Preview(); ok {
//	    // draw p.X, p.Y and the launch vector p.VX, p.VY
//	}
//	id, created, err := d.Release(x1, y1, sim)
package control
