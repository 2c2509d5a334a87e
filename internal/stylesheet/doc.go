// Package stylesheet holds the pure text processing of the pipeline: finding
// @import references in a document, parsing @font-face blocks out of a
// fetched stylesheet and naming the resulting font files.
//
// Nothing in this package performs I/O.
package stylesheet
