// Package tide turns rows of the combined tide table into Tide Records: month,
// date, time of day and height, plus the derived date string (YMD), clock
// string (SJ) and timestamp. Column order is positional; see Select for the
// optional header check.
package tide
