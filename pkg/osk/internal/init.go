// Package internal contains the machinery behind the osk engine: pixel
// compositing, the round-rect cache, the keyboard layout builder, text
// editing and measurement, caret feedback, grid navigation, theming and
// logging. Types and functions in this package are not part of the public API.
package internal
