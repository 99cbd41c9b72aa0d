// Package generator synthesizes e-commerce data from a seeded random source.
//
// Generator walks every calendar day of a date window, draws a seasonal number
// of transactions for the day and hands each record to a sink. Every draw goes
// through one *rand.Rand, so the same seed and options reproduce the same
// output byte for byte.
//
// ProductSalesGenerator builds a product table (price, review score and twelve
// monthly unit counts per product) from the same catalog and seasonal profile,
// which gives the analyzer an input without an external dataset.
package generator
