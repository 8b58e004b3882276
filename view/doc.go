// Package view turns engine state into the captions, explanations and
// outlines a front end displays. It does not draw anything itself.
package view
