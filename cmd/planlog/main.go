// planlog keeps an ordered task plan inside the commit history of a
// Jujutsu repository: every task is one change description, grouped into a
// plan by a shared 4-character tag.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
