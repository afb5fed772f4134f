// Package vision wraps the external face detector command and owns
// confidence filtering and non-maximum suppression over its raw candidate
// boxes.
package vision
