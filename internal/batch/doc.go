// Package batch packages many fonts with a bounded number of concurrent
// pipeline runs.
package batch
