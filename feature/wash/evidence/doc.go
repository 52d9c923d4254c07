// Package evidence stores wash photos in a bucket, a local directory or memory.
package evidence
