// Package linestore keeps imported atomic line lists in a local SQLite
// database.
//
// Master line lists are large; selecting the lines for a narrow synthesis
// interval by scanning the text file each time is wasteful. The store indexes
// lines by wavelength so a run can pull exactly the interval it needs and
// export it back to the fixed record format.
package linestore
