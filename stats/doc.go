/*
Package stats provides the statistical primitives used to score trees and
combine ensemble votes: count-weighted moments over numeric distributions,
distribution merging and bin collapsing, Wilson score confidence and the
chi-squared based error bound of regression predictions.

All functions are pure and safe for concurrent use.
*/
package stats
