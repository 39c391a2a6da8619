// Package series turns a training log into the (X, Y) series of a chart.
//
// Every line is split into an iteration label and a metric value. Both are kept as the literal
// text found in the file: converting them to numbers is left to the chart package so that the
// series always reflects the input exactly.
package series
