// Package terminal plays the snake game locally in a terminal using tcell.
//
// The Shell owns one engine. Key presses queue a heading that the next tick
// applies once the movement cooldown allows it, so a quick tap is never lost
// to the cooldown window.
//
// Keys:
//   - Arrow keys or WASD: turn
//   - Space or p: pause and resume
//   - + and -: move faster or slower by 0.1s
//   - n: new game on the same board
//   - q, Esc or Ctrl-C: quit
//
// Rendering goes through the Canvas interface so frames can be checked
// without a real terminal.
package terminal
