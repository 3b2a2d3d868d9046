// Command frontdesk manages a hotel's clients, rooms, and reservations.
package main

import "github.com/mesh-intelligence/frontdesk/internal/cli"

func main() {
	cli.Execute()
}
