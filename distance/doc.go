// Package distance provides the Euclidean distance over coordinate tuples.
//
// The computation rescales by the largest component difference before
// squaring, so coordinates spanning several orders of magnitude neither
// overflow nor underflow. The result is exactly symmetric in its operands.
package distance
