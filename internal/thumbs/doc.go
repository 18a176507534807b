// Package thumbs maintains an on-disk thumbnail cache addressed by
// source path digest. Generation is bounded by a shared semaphore so a
// burst of requests cannot decode arbitrarily many full-size images at
// once.
package thumbs
