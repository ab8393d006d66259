// Package ui holds what the page components share.
package ui

// ScrollMargin is the number of rows kept visible around the selection.
const ScrollMargin = 2
