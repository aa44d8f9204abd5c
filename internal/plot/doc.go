// Package plot quantizes time series onto terminal columns and composes them
// into rows of colored glyphs.
//
// A stream fixes its ValueRange from the first fetched Matrix and keeps it for
// every later frame, so the horizontal value axis never moves. Each rendered
// Row draws the segment between two consecutive samples of every series;
// where several series touch a column, the lowest series index wins, and
// axis header labels are drawn over all series.
package plot
