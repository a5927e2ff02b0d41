// Package terminal implements a text terminal front end for the machine:
// a keypad fed by raw mode key presses and a renderer drawing the display
// with ANSI escape sequences.
package terminal
