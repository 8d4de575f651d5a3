// Command salesclean cleans the raw sales export and can serve the same
// cleaning over HTTP.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
