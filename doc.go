// Package eportfolio manages a personal portfolio of stocks and mutual funds.
//
// The core functionalities include:
//   - Investment accounting: every holding tracks its quantity, its last
//     price and its book value, the accumulated cost basis including fees.
//     Partial sells remove a proportional share of the book value.
//   - Fee policies: stocks are charged a commission on each acquisition and
//     each trade, mutual funds a redemption fee on each trade.
//   - Portfolio management: holdings are kept sorted by symbol for binary
//     search lookup, and indexed by name words for search.
//   - Data persistence: a plain, line based, human-readable record format.
//
// This package serves as the foundational logic for the `epf` command-line
// tool.
package eportfolio
