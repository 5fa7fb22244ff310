// Command reel browses and searches the TMDB movie catalog.
package main

import "github.com/derickschaefer/reel/cmd"

func main() {
	cmd.Execute()
}
