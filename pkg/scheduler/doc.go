// Package scheduler runs the daily suggestion digest: once a day, every
// chat with a pantry gets its best-covered recipes pushed proactively.
package scheduler
