// Package idspec parses the compact multisig transaction id notation used by
// the batch commands.
//
// A spec is a comma-separated list of tokens. A token without '-' is a
// single id and is passed through untouched. A token with '-' is split on the
// first '-' into an inclusive range:
//
//	12,14,16-20,22  ->  12 14 16 17 18 19 20 22
//
// Descending ranges ("20-16") expand to nothing. Range tokens with bounds that
// are not base-10 integers expand to nothing as well, unless Options.Strict
// is set, in which case they are reported as *ParseError. Outside strict mode
// anything after a second '-' is ignored, so "1-2-3" is the range 1-2.
package idspec
