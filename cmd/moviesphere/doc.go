// Command moviesphere is the CLI for the moderation and screen-time
// analysis service. It runs the analysis daemon, submits content through
// moderation, manages strikes, and inspects the performance queue.
package main
