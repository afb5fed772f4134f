// Package textutil provides text normalization helpers: slugification for
// artifact and directory naming, and tokenization for text classifiers.
package textutil
