// Package fixture recovers match fixtures from the club's fixtures page.
//
// The fixtures page has no per-field markup. Its content panel holds the list as
// flattened text with one match per line and fields separated by "|":
//
//	Sat 12 Jul | 1st XI | Town CC | Home Ground | 13:00
//
// Parsing is positional and count-gated. A line must contain the separator and
// split into at least five parts; the first five become date, team, opponent,
// venue and start time and anything after them is ignored. Every other line is
// dropped without error. A header or footer that happens to contain "|" is
// therefore read as a fixture, and a row using another separator is lost.
package fixture
