// Command fixtures-ics turns a season's fixture list into an iCalendar file.
package main

import "github.com/pfrederiksen/fixtures-ics/internal/cli"

func main() {
	cli.Execute()
}
