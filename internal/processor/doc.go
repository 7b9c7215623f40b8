// Package processor orchestrates the card pipeline: raw CSV rows are
// mapped to records, records to domain models, models are enriched with
// media, and the results are assembled into cards and written as a deck.
package processor
