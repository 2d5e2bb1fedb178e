// Package storage writes and reads scrape snapshots.
//
// Each run produces one file, mcc_data_<unix timestamp>.json, holding the full
// result as indented UTF-8 JSON. Snapshots are never updated in place; a run
// within the same second as a previous one overwrites its file.
package storage
